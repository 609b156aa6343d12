package evaluation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/bill-autoreader/internal/common"
	"github.com/Veraticus/bill-autoreader/internal/model"
)

func TestMatcher_MatchRetailer(t *testing.T) {
	m := NewMatcher(DefaultThresholds())

	tests := []struct {
		predicted string
		actual    string
		want      bool
	}{
		{"Energy Australia", "Energy Australia", true},
		{"AGL Energy", "AGL Energy", true},
		{"agl sales pty limited", "AGL Energy", true},
		{"energyaustralia", "Energy Australia", true},
		{"agl energy", "AGL Energy", true},
		{"Energy Australia Pty Ltd", "Energy Australia", true},
		{"AGL Energy Limited", "AGL Energy", true},
		{"Win Energy", "Win Energy", true},
		{"Win Connect", "Win Energy", true},
		{"winconnect", "Win Energy", true},
		{"Winning Power", "Win Energy", false},
		{"Twin Rivers Power", "Win Energy", false},
		{"Mojo Power", "AGL Energy", false},
		{"Elgas", "Energy Australia", false},
		{"Elysian Energy", "ElysianEnergy", true},
		{"Dodo Power & Gas", "Dodo Power and Gas", true},
		{"Dodo Power & Gas Pty Ltd", "Dodo Power and Gas", true},
		{"Nonexistent Energy Co", "Energy Australia", false},
		{"sumo power", "Sumo Energy", true},
		{"momentum energy", "Momentum Energy", true},
		{"lumo energy (sa)", "Lumo Energy", true},
		{"vicinity real estate licence", "Vicinity Centres", true},
		{"", "AGL Energy", false},
		{"Energy", "Mojo Power", false},
	}

	for _, tt := range tests {
		t.Run(tt.predicted+"/"+tt.actual, func(t *testing.T) {
			assert.Equal(t, tt.want, m.MatchRetailer(tt.predicted, tt.actual))
		})
	}
}

func TestStripCompanySuffix(t *testing.T) {
	assert.Equal(t, "australia", StripCompanySuffix("Energy Australia Pty Ltd"))
	assert.Equal(t, "agl pty", StripCompanySuffix("agl sales pty limited"))
	assert.Equal(t, "red", StripCompanySuffix("Red_Energy"))
	assert.Empty(t, StripCompanySuffix("Energy"))
}

func TestMatchSiteIdentity(t *testing.T) {
	tests := []struct {
		name      string
		predicted any
		actual    any
		want      bool
	}{
		{"exact", "1234567890", "1234567890", true},
		{"partial", "1234567890", "12345678901", true},
		{"numeric", 1234567890, 1234567890, true},
		{"numeric partial", 1234567890, 12345678901, true},
		{"numeric partial reversed", 12345678901, 1234567890, true},
		{"decoded json number", float64(1234567890), "1234567890", true},
		{"no match", "1234567890", "abcdefghij", false},
		{"numeric no match", 1234567890, 9876543210, false},
		{"mixed types", 1234567890, "1234567890", true},
		{"mixed types no match", 1234567890, "abcdefghij", false},
		{"missing prediction", nil, "1234567890", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchSiteIdentity(tt.predicted, tt.actual))
		})
	}
}

func TestMatcher_MatchAdditionalLabel(t *testing.T) {
	m := NewMatcher(DefaultThresholds())

	tests := []struct {
		name      string
		predicted []string
		actual    []string
		want      bool
	}{
		{"reordered", []string{"Off-Peak Usage", "Demand Charge"}, []string{"Demand Charge", "Off-Peak Usage"}, true},
		{"case", []string{"Green Energy Surcharge", "Metering Service Fee"}, []string{"metering service fee", "green energy surcharge"}, true},
		{"one differs", []string{"Feed-in Tariff", "Environmental Recovery"}, []string{"Feed-in Tariff", "Demand Charge"}, false},
		{"fewer predicted", []string{"Solar Feed-in Tariff"}, []string{"Solar Feed-in Tariff", "Off-Peak Usage", "Environmental Recovery"}, false},
		{"more predicted", []string{"Feed-in Tariff", "Demand Charge", "Green Energy Surcharge"}, []string{"Green Energy Surcharge", "Feed-in Tariff"}, false},
		{"hyphenated", []string{"Renewable Energy Fee", "Time-of-Use Rate"}, []string{"renewable energy fee", "time-of-use rate"}, true},
		{"upper case", []string{"Service Charge", "Late Payment Fee"}, []string{"LATE PAYMENT FEE", "SERVICE CHARGE"}, true},
		{"fixed vs service", []string{"Network Access Charge", "Service Charge"}, []string{"NETWORK ACCESS CHARGE", "FIXED CHARGE"}, false},
		{"underscores", []string{"Carbon Offset Charge"}, []string{"carbon_offset_charge"}, true},
		{"fixed vs variable", []string{"Fixed Supply Charge"}, []string{"variable supply charge"}, false},
		{"both empty", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.MatchAdditionalLabel(tt.predicted, tt.actual))
		})
	}
}

func TestMatcher_MatchAdditionalTariff(t *testing.T) {
	m := NewMatcher(DefaultThresholds())

	tests := []struct {
		name      string
		predicted []model.TariffLine
		actual    []model.TariffLine
		want      bool
	}{
		{
			name:      "reordered",
			predicted: []model.TariffLine{{Label: "Peak", Price: 0.31}, {Label: "Supply Charge", Price: 1.1}},
			actual:    []model.TariffLine{{Label: "supply charge", Price: 1.1}, {Label: "peak usage", Price: 0.31}},
			want:      true,
		},
		{
			name:      "price differs",
			predicted: []model.TariffLine{{Label: "Peak", Price: 0.31}},
			actual:    []model.TariffLine{{Label: "Peak", Price: 0.32}},
			want:      false,
		},
		{
			name:      "label differs",
			predicted: []model.TariffLine{{Label: "Metering Charge", Price: 0.5}},
			actual:    []model.TariffLine{{Label: "Solar Feed-in", Price: 0.5}},
			want:      false,
		},
		{
			name:      "length differs",
			predicted: []model.TariffLine{{Label: "Peak", Price: 0.31}},
			actual:    nil,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.MatchAdditionalTariff(tt.predicted, tt.actual))
		})
	}
}

func TestMatcher_PairingIgnoresOrder(t *testing.T) {
	m := NewMatcher(DefaultThresholds())

	// "peak usage" fits both actual lines, its longer sibling fits only the
	// exact one, so taking the best score first would strand it.
	predicted := []model.TariffLine{{Label: "peak usage", Price: 1}, {Label: "peak usage zzzzzz", Price: 1}}
	actual := []model.TariffLine{{Label: "peak usage", Price: 1}, {Label: "peak usages", Price: 1}}

	reversed := func(lines []model.TariffLine) []model.TariffLine {
		return []model.TariffLine{lines[1], lines[0]}
	}
	labels := func(lines []model.TariffLine) []string {
		out := make([]string, len(lines))
		for i, l := range lines {
			out[i] = l.Label
		}
		return out
	}

	tests := []struct {
		name      string
		predicted []model.TariffLine
		actual    []model.TariffLine
	}{
		{"as given", predicted, actual},
		{"predicted reversed", reversed(predicted), actual},
		{"actual reversed", predicted, reversed(actual)},
		{"both reversed", reversed(predicted), reversed(actual)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, m.MatchAdditionalTariff(tt.predicted, tt.actual))
			assert.True(t, m.MatchAdditionalLabel(labels(tt.predicted), labels(tt.actual)))
		})
	}

	unmatched := []model.TariffLine{{Label: "peak usage zzzzzz", Price: 1}, {Label: "off peak", Price: 1}}
	assert.False(t, m.MatchAdditionalTariff(unmatched, actual))
	assert.False(t, m.MatchAdditionalTariff(reversed(unmatched), actual))
}

func TestParseBoolish(t *testing.T) {
	for _, v := range []any{"yes", "YES", " true ", "1", true, 1, float64(1)} {
		got, err := ParseBoolish(v)
		require.NoError(t, err, "%v", v)
		assert.True(t, got, "%v", v)
	}
	for _, v := range []any{"no", "False", "0", false, 0} {
		got, err := ParseBoolish(v)
		require.NoError(t, err, "%v", v)
		assert.False(t, got, "%v", v)
	}
	for _, v := range []any{nil, "maybe", "", 2, []any{}} {
		_, err := ParseBoolish(v)
		assert.True(t, errors.Is(err, common.ErrUnrecognizedBoolean), "%v", v)
	}
}

func TestMatchDivideDemand(t *testing.T) {
	assert.True(t, MatchDivideDemand("YES", "true"))
	assert.True(t, MatchDivideDemand("no", false))
	assert.True(t, MatchDivideDemand(" 1 ", "yes"))
	assert.False(t, MatchDivideDemand("yes", "no"))
	assert.False(t, MatchDivideDemand(nil, true))
	assert.False(t, MatchDivideDemand("maybe", "maybe"))
}

func TestMatchMonthlyDemandMultiplier(t *testing.T) {
	assert.True(t, MatchMonthlyDemandMultiplier(nil, [][]float64{}))
	assert.True(t, MatchMonthlyDemandMultiplier([][]float64{nil, {1.2}}, [][]float64{{}, {1.2}}))
	assert.True(t, MatchMonthlyDemandMultiplier([][]float64{{1.02, 0.98}}, [][]float64{{1.02, 0.98}}))
	assert.False(t, MatchMonthlyDemandMultiplier([][]float64{{1.02}}, [][]float64{{1.03}}))
	assert.False(t, MatchMonthlyDemandMultiplier([][]float64{{1.02}}, [][]float64{{1.02}, {}}))
	assert.False(t, MatchMonthlyDemandMultiplier([][]float64{{1.02, 1}}, [][]float64{{1.02}}))
}
