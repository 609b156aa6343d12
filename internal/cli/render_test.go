package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/bill-autoreader/internal/model"
	"github.com/Veraticus/bill-autoreader/internal/testutil"
)

func TestRenderAssignments(t *testing.T) {
	out := RenderAssignments([]model.Assignment{
		{Label: "Peak Usage", Category: model.Peak},
		{Label: "AEMO Ancillary", Category: model.AEMOAncillary},
		{Label: "Late fee", Category: model.Unclassified},
	})

	assert.Contains(t, out, "Label")
	assert.Contains(t, out, "Peak Usage")
	assert.Contains(t, out, "peak")
	assert.Contains(t, out, "AEMO Ancillary")
	assert.Contains(t, out, "unclassified")
	assert.Less(t, strings.Index(out, "Peak Usage"), strings.Index(out, "Late fee"))
}

func TestRenderPatternsAndGroup(t *testing.T) {
	out := RenderPatterns(model.Shoulder, []string{"Shoulder", "retail - shoulder"})
	assert.Contains(t, out, " 1. Shoulder")
	assert.Contains(t, out, " 2. retail - shoulder")

	out = RenderGroup(model.EnergyConsumption, []model.Category{model.SupplyCharge, model.Peak})
	assert.Contains(t, out, "energy_consumption")
	assert.Contains(t, out, "supply_charge → peak")
}

func TestRenderRun(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	out := RenderRun(model.RunSummary{
		ID:           "run-1",
		Dataset:      "march",
		StartedAt:    start,
		FinishedAt:   start.Add(1500 * time.Millisecond),
		Cases:        4,
		MatchedCases: 3,
	}, []model.FieldAccuracy{
		{Field: "retailer", Total: 4, Matched: 3, Rate: 0.75},
	})

	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "march")
	assert.Contains(t, out, "3/4")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "retailer")
	assert.Contains(t, out, "75.0%")
}

func TestRenderFailures(t *testing.T) {
	run := testutil.NewRun("run-1", "march").
		Case("bill-1", map[string]bool{"retailer": true}).
		FailedCase("bill-2", "additional_label", "shape mismatch").
		Build()

	out := RenderFailures(*run)
	assert.Contains(t, out, "bill-2")
	assert.Contains(t, out, "shape mismatch")
	assert.NotContains(t, out, "bill-1")

	assert.Contains(t, RenderFailures(model.EvaluationRun{}), "All fields matched")
}

func TestRenderRuns(t *testing.T) {
	assert.Contains(t, RenderRuns(nil), "No evaluation runs")

	out := RenderRuns([]model.RunSummary{
		{ID: "run-1", Dataset: "march", Cases: 10, MatchedCases: 9},
	})
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "march")
	assert.Contains(t, out, "10")
}

func TestFormatRate(t *testing.T) {
	assert.Contains(t, FormatRate(1), "100.0%")
	assert.Contains(t, FormatRate(0.8125), "81.2%")
	assert.Contains(t, FormatRate(0), "0.0%")
}

func TestReadLabels(t *testing.T) {
	in := strings.NewReader("Peak Usage\n\n# comment\n  Daily Supply Charge  \n")

	labels, err := ReadLabels(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []string{"Peak Usage", "Daily Supply Charge"}, labels)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ReadLabels(ctx, strings.NewReader("a\nb\n"))
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 3, "Evaluating bills")

	p.Tick()
	p.Tick()
	assert.Equal(t, 2, p.Count())

	p.Tick()
	p.Finish()
	assert.Equal(t, 3, p.Count())

	silent := NewProgress(nil, 1, "quiet")
	silent.Tick()
	assert.Equal(t, 1, silent.Count())
}
