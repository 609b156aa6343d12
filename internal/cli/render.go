package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/bill-autoreader/internal/model"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return BoldStyle.PaddingRight(1).PaddingLeft(1)
			}
			return TableCellStyle.PaddingLeft(1).PaddingRight(1)
		}).
		Headers(headers...)
}

// RenderAssignments renders labels and their categories in input order.
// Unmatched labels are shown as unclassified.
func RenderAssignments(assignments []model.Assignment) string {
	t := newTable("Label", "Category")
	for _, a := range assignments {
		category := CategoryStyle.Render(a.Category.DisplayName())
		if !a.Category.IsClassified() {
			category = SubtleStyle.Render(a.Category.DisplayName())
		}
		t.Row(a.Label, category)
	}
	return t.String()
}

// RenderPatterns lists a category's rules, numbered in match order.
func RenderPatterns(category model.Category, patterns []string) string {
	var b strings.Builder
	b.WriteString(BoldStyle.Render(category.DisplayName()))
	b.WriteString("\n")
	for i, p := range patterns {
		fmt.Fprintf(&b, "  %2d. %s\n", i+1, p)
	}
	return b.String()
}

// RenderGroup shows a tariff group's categories in priority order.
func RenderGroup(group model.TariffGroup, members []model.Category) string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = string(m)
	}
	return BoldStyle.Render(string(group)) + "\n  " + strings.Join(names, " → ") + "\n"
}

// RenderRun renders a run headline and its per-field accuracy.
func RenderRun(summary model.RunSummary, accuracy []model.FieldAccuracy) string {
	header := fmt.Sprintf("Run %s\nDataset: %s\nStarted: %s (%s)\nBills matched: %d/%d",
		summary.ID,
		summary.Dataset,
		summary.StartedAt.Local().Format("2006-01-02 15:04:05"),
		summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond),
		summary.MatchedCases,
		summary.Cases,
	)

	t := newTable("Field", "Matched", "Total", "Rate")
	for _, acc := range accuracy {
		t.Row(acc.Field, fmt.Sprint(acc.Matched), fmt.Sprint(acc.Total), FormatRate(acc.Rate))
	}

	return RenderBox(ChartIcon+" Evaluation", header) + "\n" + t.String()
}

// RenderFailures lists the fields that did not match, with the reason when
// the comparison itself failed.
func RenderFailures(run model.EvaluationRun) string {
	t := newTable("Bill", "Field", "Error")
	n := 0
	for _, c := range run.Cases {
		for _, f := range c.Fields {
			if f.Matched {
				continue
			}
			t.Row(c.CaseID, f.Field, f.Error)
			n++
		}
	}
	if n == 0 {
		return FormatSuccess("All fields matched")
	}
	return t.String()
}

// RenderRuns lists stored runs.
func RenderRuns(runs []model.RunSummary) string {
	if len(runs) == 0 {
		return FormatInfo("No evaluation runs stored yet")
	}
	t := newTable("ID", "Dataset", "Started", "Bills", "Matched")
	for _, r := range runs {
		t.Row(
			r.ID,
			r.Dataset,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprint(r.Cases),
			fmt.Sprint(r.MatchedCases),
		)
	}
	return t.String()
}
