package evaluation

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/bill-autoreader/internal/model"
)

func newTestEvaluator() *Evaluator {
	e := NewEvaluator(NewMatcher(DefaultThresholds()))
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return fixed }
	return e
}

func findField(t *testing.T, r model.CaseResult, field string) model.FieldResult {
	t.Helper()
	for _, f := range r.Fields {
		if f.Field == field {
			return f
		}
	}
	require.Failf(t, "field not evaluated", "%s", field)
	return model.FieldResult{}
}

func TestEvaluator_Fields(t *testing.T) {
	e := newTestEvaluator()
	assert.Equal(t, []string{
		FieldAdditionalLabel,
		FieldAdditionalTariff,
		FieldDivideDemand,
		FieldMonthlyDemandMultiplier,
		FieldRetailer,
		FieldSiteIdentity,
	}, e.Fields())
}

func TestEvaluator_EvaluateCase(t *testing.T) {
	e := newTestEvaluator()

	c := model.EvaluationCase{
		ID: "bill-1",
		Predicted: map[string]any{
			FieldSiteIdentity:            "61021234567",
			FieldRetailer:                "agl sales pty limited",
			FieldAdditionalTariff:        []any{map[string]any{"label": "Supply Charge", "price": 1.1}},
			FieldAdditionalLabel:         []any{"Demand Charge"},
			FieldDivideDemand:            "YES",
			FieldMonthlyDemandMultiplier: []any{[]any{1.02}, nil},
			"unchecked":                  "anything",
		},
		Actual: map[string]any{
			FieldSiteIdentity:            "6102123456",
			FieldRetailer:                "AGL Energy",
			FieldAdditionalTariff:        []any{[]any{"supply charge", 1.1}},
			FieldAdditionalLabel:         []any{"Demand Charge", "Off-Peak Usage"},
			FieldDivideDemand:            true,
			FieldMonthlyDemandMultiplier: []any{[]any{1.02}, []any{}},
			"unchecked":                  "anything",
		},
	}

	r := e.EvaluateCase(c)
	assert.Equal(t, "bill-1", r.CaseID)
	assert.Len(t, r.Fields, 6)

	assert.True(t, findField(t, r, FieldSiteIdentity).Matched)
	assert.True(t, findField(t, r, FieldRetailer).Matched)
	assert.True(t, findField(t, r, FieldAdditionalTariff).Matched)
	assert.True(t, findField(t, r, FieldDivideDemand).Matched)
	assert.True(t, findField(t, r, FieldMonthlyDemandMultiplier).Matched)

	label := findField(t, r, FieldAdditionalLabel)
	assert.False(t, label.Matched)
	assert.Contains(t, label.Error, "shape mismatch")

	assert.False(t, r.Matched())
}

func TestEvaluator_EvaluateCase_WrongTypes(t *testing.T) {
	e := newTestEvaluator()

	r := e.EvaluateCase(model.EvaluationCase{
		ID:        "bill-2",
		Predicted: map[string]any{FieldRetailer: 42, FieldAdditionalLabel: "not a list"},
		Actual:    map[string]any{FieldRetailer: "AGL", FieldAdditionalLabel: []any{"x"}},
	})

	require.Len(t, r.Fields, 2)
	for _, f := range r.Fields {
		assert.False(t, f.Matched)
		assert.NotEmpty(t, f.Error)
	}
}

func TestEvaluator_EvaluateCase_MissingPrediction(t *testing.T) {
	e := newTestEvaluator()

	r := e.EvaluateCase(model.EvaluationCase{
		ID:     "bill-3",
		Actual: map[string]any{FieldRetailer: "AGL Energy", FieldDivideDemand: "no"},
	})

	require.Len(t, r.Fields, 2)
	assert.False(t, findField(t, r, FieldRetailer).Matched)
	assert.Empty(t, findField(t, r, FieldRetailer).Error)
	assert.False(t, findField(t, r, FieldDivideDemand).Matched)
}

func TestEvaluator_Register(t *testing.T) {
	e := newTestEvaluator()
	e.Register("account_number", func(p, a any) (bool, error) {
		return p == a, nil
	})

	r := e.EvaluateCase(model.EvaluationCase{
		Predicted: map[string]any{"account_number": "A1"},
		Actual:    map[string]any{"account_number": "A1"},
	})
	require.Len(t, r.Fields, 1)
	assert.True(t, r.Fields[0].Matched)
}

func TestEvaluator_EvaluateDataset(t *testing.T) {
	e := newTestEvaluator()

	cases := []model.EvaluationCase{
		{
			ID:        "a",
			Predicted: map[string]any{FieldRetailer: "Sumo Power"},
			Actual:    map[string]any{FieldRetailer: "Sumo Energy"},
		},
		{
			Predicted: map[string]any{FieldRetailer: "Mojo Power"},
			Actual:    map[string]any{FieldRetailer: "AGL Energy"},
		},
	}

	calls := 0
	run, err := e.EvaluateDataset(context.Background(), "smoke", cases, func() { calls++ })
	require.NoError(t, err)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "smoke", run.Dataset)
	assert.Equal(t, 2, calls)
	require.Len(t, run.Cases, 2)
	assert.Equal(t, "case-2", run.Cases[1].CaseID)
	assert.Equal(t, 1, run.MatchedCases())

	acc := run.Accuracy()
	require.Len(t, acc, 1)
	assert.Equal(t, model.FieldAccuracy{Field: FieldRetailer, Total: 2, Matched: 1, Rate: 0.5}, acc[0])
}

func TestEvaluator_EvaluateDataset_Cancelled(t *testing.T) {
	e := newTestEvaluator()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run, err := e.EvaluateDataset(ctx, "smoke", []model.EvaluationCase{{ID: "a"}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, run.Cases)
}

func TestParseDataset(t *testing.T) {
	yamlData := []byte(`
name: march
cases:
  - id: bill-1
    retailer: agl
    predicted:
      retailer: AGL Energy
      monthly_demand_multiplier: [[1.02, 1], []]
    actual:
      retailer: agl
      monthly_demand_multiplier: [[1.02, 1.0], null]
  - predicted:
      divide_demand: "yes"
    actual:
      divide_demand: true
`)

	ds, err := ParseDataset(yamlData, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, "march", ds.Name)
	require.Len(t, ds.Cases, 2)
	assert.Equal(t, "bill-1", ds.Cases[0].ID)
	assert.Equal(t, "case-2", ds.Cases[1].ID)

	run, err := newTestEvaluator().EvaluateDataset(context.Background(), ds.Name, ds.Cases, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, run.MatchedCases())

	jsonData := []byte(`{"cases": [{"id": "j1", "predicted": {"site_identity": 6102123456}, "actual": {"site_identity": "6102123456"}}]}`)
	ds, err = ParseDataset(jsonData, ".json")
	require.NoError(t, err)
	require.Len(t, ds.Cases, 1)
	assert.True(t, newTestEvaluator().EvaluateCase(ds.Cases[0]).Matched())

	_, err = ParseDataset([]byte("a,b"), ".csv")
	assert.Error(t, err)
}

func TestLoadDataset_NameFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regression.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cases": []}`), 0o600))

	ds, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, "regression", ds.Name)

	_, err = LoadDataset(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestExportXLSX(t *testing.T) {
	run, err := newTestEvaluator().EvaluateDataset(context.Background(), "smoke", []model.EvaluationCase{
		{
			ID:        "a",
			Predicted: map[string]any{FieldRetailer: "Sumo Power"},
			Actual:    map[string]any{FieldRetailer: "Sumo Energy"},
		},
	}, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "run.xlsx")
	require.NoError(t, ExportXLSX(run, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{summarySheet, resultsSheet}, f.GetSheetList())

	v, err := f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "smoke", v)

	v, err = f.GetCellValue(resultsSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	v, err = f.GetCellValue(resultsSheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "TRUE", v)
}
