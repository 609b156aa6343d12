package evaluation

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/bill-autoreader/internal/model"
)

const (
	summarySheet = "Summary"
	resultsSheet = "Results"
)

// ExportXLSX writes a run to a workbook with a per-field summary sheet and
// a sheet with one row per compared field.
func ExportXLSX(run model.EvaluationRun, outputPath string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if _, err := f.NewSheet(resultsSheet); err != nil {
		return fmt.Errorf("failed to create results sheet: %w", err)
	}

	writeRow(f, summarySheet, 1, "run", run.ID)
	writeRow(f, summarySheet, 2, "dataset", run.Dataset)
	writeRow(f, summarySheet, 3, "started_at", run.StartedAt.Format("2006-01-02 15:04:05"))
	writeRow(f, summarySheet, 4, "cases", len(run.Cases))
	writeRow(f, summarySheet, 5, "matched_cases", run.MatchedCases())

	writeRow(f, summarySheet, 7, "field", "total", "matched", "rate")
	for i, acc := range run.Accuracy() {
		writeRow(f, summarySheet, 8+i, acc.Field, acc.Total, acc.Matched, acc.Rate)
	}

	writeRow(f, resultsSheet, 1, "case_id", "field", "matched", "error")
	r := 2
	for _, c := range run.Cases {
		for _, fr := range c.Fields {
			writeRow(f, resultsSheet, r, fr.CaseID, fr.Field, fr.Matched, fr.Error)
			r++
		}
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}
