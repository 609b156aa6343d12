// Package testutil provides shared helpers for autoreader tests.
package testutil

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/Veraticus/bill-autoreader/internal/model"
	"github.com/Veraticus/bill-autoreader/internal/storage"
)

// SetupTestDB creates a migrated in-memory database that is closed when the
// test ends.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// RunBuilder assembles evaluation runs for tests.
type RunBuilder struct {
	run model.EvaluationRun
}

// NewRun starts a run with fixed timestamps.
func NewRun(id, dataset string) *RunBuilder {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return &RunBuilder{run: model.EvaluationRun{
		ID:         id,
		Dataset:    dataset,
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
	}}
}

// StartedAt overrides the start time, keeping the run's duration.
func (b *RunBuilder) StartedAt(ts time.Time) *RunBuilder {
	d := b.run.FinishedAt.Sub(b.run.StartedAt)
	b.run.StartedAt = ts
	b.run.FinishedAt = ts.Add(d)
	return b
}

// Case appends a case. fields maps field name to whether it matched.
func (b *RunBuilder) Case(id string, fields map[string]bool) *RunBuilder {
	c := model.CaseResult{CaseID: id}
	for _, name := range sortedKeys(fields) {
		c.Fields = append(c.Fields, model.FieldResult{CaseID: id, Field: name, Matched: fields[name]})
	}
	b.run.Cases = append(b.run.Cases, c)
	return b
}

// FailedCase appends a case whose single field could not be compared.
func (b *RunBuilder) FailedCase(id, field, reason string) *RunBuilder {
	b.run.Cases = append(b.run.Cases, model.CaseResult{
		CaseID: id,
		Fields: []model.FieldResult{{CaseID: id, Field: field, Error: reason}},
	})
	return b
}

// Build returns the run.
func (b *RunBuilder) Build() *model.EvaluationRun {
	run := b.run
	return &run
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
