package retailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/bill-autoreader/internal/classification"
	"github.com/Veraticus/bill-autoreader/internal/common"
	"github.com/Veraticus/bill-autoreader/internal/model"
	"github.com/Veraticus/bill-autoreader/internal/pattern"
)

func TestAll(t *testing.T) {
	all := All()
	assert.Len(t, all, 28)

	seen := make(map[string]bool)
	for _, table := range all {
		assert.NotEmpty(t, table.Retailer)
		assert.NotEmpty(t, table.Labels, table.Retailer)
		assert.False(t, seen[table.Retailer], "duplicate retailer %s", table.Retailer)
		seen[table.Retailer] = true
	}
}

func TestCollectLabels(t *testing.T) {
	demand := CollectLabels(model.SummerDemand)
	assert.Equal(t, []string{
		"* Flexi Plan (Home) Demand Summer (01/11/2023 - 30/11/2023) ",
		"High Season Demand",
		"Summer Demand (KW/Mth)",
		"Summer Peak Demand",
	}, demand)

	peak := CollectLabels(model.Peak)
	assert.Contains(t, peak, "Peak")
	assert.Contains(t, peak, "Usage Anytime Usage")
	assert.NotContains(t, peak, "Off Peak")

	// "Peak" appears for several retailers but is listed once
	count := 0
	for _, l := range peak {
		if l == "Peak" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	both := CollectLabels(model.Peak, model.OffPeak)
	assert.Contains(t, both, "Off Peak")
	assert.Contains(t, both, "Peak")

	assert.Greater(t, len(CollectLabels()), len(both))
}

func TestAudit(t *testing.T) {
	c := classification.New(pattern.Default())

	report, err := Audit(c, string(model.EnergyConsumption))
	require.NoError(t, err)

	assert.Equal(t, "energy_consumption", report.Group)
	// the unbundled Origin and Next Business Energy labels
	assert.Equal(t, 5, report.Skipped)
	assert.Positive(t, report.Checked)
	assert.Less(t, len(report.Disagreements), report.Checked)

	var offPeak *Disagreement
	for i, d := range report.Disagreements {
		assert.NotEqual(t, d.Expected, d.Got)
		assert.False(t, d.Retailer == "Tango" && d.Label == "Peak", "plain Peak should classify as peak")
		if d.Label == "Usage Off Peak Usage" {
			offPeak = &report.Disagreements[i]
		}
	}

	// the usage rule for peak claims the label before off_peak is tried
	require.NotNil(t, offPeak)
	assert.Equal(t, model.OffPeak, offPeak.Expected)
	assert.Equal(t, model.Peak, offPeak.Got)

	assert.InDelta(t, float64(report.Checked-len(report.Disagreements))/float64(report.Checked), report.Agreement(), 1e-9)
}

func TestAudit_UnknownGroup(t *testing.T) {
	_, err := Audit(classification.New(pattern.Default()), "water")
	assert.ErrorIs(t, err, common.ErrUnknownGroup)
}
