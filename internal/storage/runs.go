package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/bill-autoreader/internal/common"
	"github.com/Veraticus/bill-autoreader/internal/model"
)

// SaveRun stores a run with all of its case and field results.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.EvaluationRun) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO evaluation_runs (id, dataset, started_at, finished_at, case_count, matched_cases)
			VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, run.Dataset, run.StartedAt.UTC(), run.FinishedAt.UTC(), len(run.Cases), run.MatchedCases())
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}

		caseStmt, err := tx.PrepareContext(ctx, `INSERT INTO run_cases (run_id, position, case_id) VALUES (?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare case statement: %w", err)
		}
		defer func() { _ = caseStmt.Close() }()

		fieldStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO field_results (run_id, case_position, field, matched, error)
			VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare field statement: %w", err)
		}
		defer func() { _ = fieldStmt.Close() }()

		for pos, c := range run.Cases {
			if _, err := caseStmt.ExecContext(ctx, run.ID, pos, c.CaseID); err != nil {
				return fmt.Errorf("failed to save case %s: %w", c.CaseID, err)
			}
			for _, f := range c.Fields {
				if _, err := fieldStmt.ExecContext(ctx, run.ID, pos, f.Field, f.Matched, f.Error); err != nil {
					return fmt.Errorf("failed to save field %s of case %s: %w", f.Field, c.CaseID, err)
				}
			}
		}
		return nil
	})
}

// GetRun loads a run with its results. It returns common.ErrNotFound for
// an unknown ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*model.EvaluationRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	run := &model.EvaluationRun{ID: id}
	err := s.db.QueryRowContext(ctx, `
		SELECT dataset, started_at, finished_at FROM evaluation_runs WHERE id = ?`, id).
		Scan(&run.Dataset, &run.StartedAt, &run.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: run %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	caseRows, err := s.db.QueryContext(ctx, `
		SELECT case_id FROM run_cases WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query cases: %w", err)
	}
	for caseRows.Next() {
		var c model.CaseResult
		if err := caseRows.Scan(&c.CaseID); err != nil {
			_ = caseRows.Close()
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}
		run.Cases = append(run.Cases, c)
	}
	if err := caseRows.Close(); err != nil {
		return nil, err
	}
	if err := caseRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cases: %w", err)
	}

	fieldRows, err := s.db.QueryContext(ctx, `
		SELECT case_position, field, matched, error FROM field_results
		WHERE run_id = ? ORDER BY case_position, id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query field results: %w", err)
	}
	defer func() { _ = fieldRows.Close() }()

	for fieldRows.Next() {
		var (
			pos int
			fr  model.FieldResult
		)
		if err := fieldRows.Scan(&pos, &fr.Field, &fr.Matched, &fr.Error); err != nil {
			return nil, fmt.Errorf("failed to scan field result: %w", err)
		}
		if pos < 0 || pos >= len(run.Cases) {
			return nil, fmt.Errorf("field result for missing case position %d", pos)
		}
		fr.CaseID = run.Cases[pos].CaseID
		run.Cases[pos].Fields = append(run.Cases[pos].Fields, fr)
	}
	if err := fieldRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating field results: %w", err)
	}

	return run, nil
}

// ListRuns returns run headlines, newest first. A non-positive limit
// returns every run.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, dataset, started_at, finished_at, case_count, matched_cases
		FROM evaluation_runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.RunSummary
	for rows.Next() {
		var r model.RunSummary
		if err := rows.Scan(&r.ID, &r.Dataset, &r.StartedAt, &r.FinishedAt, &r.Cases, &r.MatchedCases); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// FieldAccuracy computes per-field match rates of a stored run, sorted by
// field name.
func (s *SQLiteStorage) FieldAccuracy(ctx context.Context, runID string) ([]model.FieldAccuracy, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(runID, "runID"); err != nil {
		return nil, err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM evaluation_runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check run: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: run %s", common.ErrNotFound, runID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT field, COUNT(*), SUM(matched) FROM field_results
		WHERE run_id = ? GROUP BY field ORDER BY field`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query field accuracy: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.FieldAccuracy
	for rows.Next() {
		var acc model.FieldAccuracy
		if err := rows.Scan(&acc.Field, &acc.Total, &acc.Matched); err != nil {
			return nil, fmt.Errorf("failed to scan field accuracy: %w", err)
		}
		if acc.Total > 0 {
			acc.Rate = float64(acc.Matched) / float64(acc.Total)
		}
		out = append(out, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating field accuracy: %w", err)
	}
	return out, nil
}

// DeleteRun removes a run and its results.
func (s *SQLiteStorage) DeleteRun(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM field_results WHERE run_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete field results: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM run_cases WHERE run_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete cases: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM evaluation_runs WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete run: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check deleted rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: run %s", common.ErrNotFound, id)
		}
		return nil
	})
}
