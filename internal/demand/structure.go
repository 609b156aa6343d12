package demand

import (
	"fmt"
	"math"
	"time"

	"github.com/Veraticus/bill-autoreader/internal/common"
	"github.com/Veraticus/bill-autoreader/internal/model"
	"github.com/Veraticus/bill-autoreader/internal/period"
)

// IsMonthlyDemand reports whether a demand series holds one value per
// calendar month of the billing period. Scalars and empty lists are never
// monthly; without both dates any non-empty list is.
func IsMonthlyDemand(demand model.Series, start, end time.Time) bool {
	if !demand.IsList() || demand.Len() == 0 {
		return false
	}
	if start.IsZero() || end.IsZero() {
		return true
	}
	return demand.Len() == period.MonthsBetween(start, end)
}

// triple is one (usage, price, subtotal) reading.
type triple struct {
	usage, price, subtotal float64
}

func triples(r model.DemandRecord) ([]triple, error) {
	if r.IsNone() {
		return nil, nil
	}
	n := r.Usage.Len()
	if r.Price.Len() != n || r.Subtotal.Len() != n {
		return nil, fmt.Errorf("%w: usage, price and subtotal lengths %d, %d, %d differ",
			common.ErrInvalidDemand, n, r.Price.Len(), r.Subtotal.Len())
	}
	u, p, s := r.Usage.Values(), r.Price.Values(), r.Subtotal.Values()
	out := make([]triple, n)
	for i := range out {
		out[i] = triple{usage: u[i], price: p[i], subtotal: s[i]}
	}
	return out, nil
}

// InferStructure combines the summer and non-summer demand records of a
// bill spanning start..end.
//
// Every combined reading is priced with InferUnit (no billing days). When
// the readings disagree the unit stays model.PricePerUsage. The demand is
// monthly when the number of readings equals the number of calendar months
// in the period. Day multipliers, subtotal / (usage * price) rounded to two
// places, are only produced for monthly per-day demand.
func InferStructure(summer, nonsummer model.DemandRecord, start, end time.Time, opts ...UnitOption) (model.DemandStructure, error) {
	summerReadings, err := triples(summer)
	if err != nil {
		return model.DemandStructure{}, fmt.Errorf("summer demand: %w", err)
	}
	nonsummerReadings, err := triples(nonsummer)
	if err != nil {
		return model.DemandStructure{}, fmt.Errorf("nonsummer demand: %w", err)
	}

	cfg := newUnitConfig(opts)
	// billing days never apply to the combined readings
	cfg.billingDays = 0
	unitOpts := []UnitOption{WithLossFactor(cfg.lossFactor), WithTolerance(cfg.tolerance)}

	all := append(append([]triple{}, summerReadings...), nonsummerReadings...)
	structure := model.DemandStructure{
		PriceUnit:     agreedUnit(all, unitOpts),
		MonthlyDemand: IsMonthlyDemand(model.Concat(summer.Usage, nonsummer.Usage), start, end),
	}

	if structure.MonthlyDemand && structure.PriceUnit == model.PricePerUsagePerDay {
		s, err := multipliers(summerReadings)
		if err != nil {
			return model.DemandStructure{}, fmt.Errorf("summer demand: %w", err)
		}
		ns, err := multipliers(nonsummerReadings)
		if err != nil {
			return model.DemandStructure{}, fmt.Errorf("nonsummer demand: %w", err)
		}
		structure.Multipliers = &model.Multipliers{Summer: s, NonSummer: ns}
	}

	return structure, nil
}

func agreedUnit(readings []triple, opts []UnitOption) model.PriceUnit {
	if len(readings) == 0 {
		return model.PricePerUsage
	}
	first := InferUnit(readings[0].usage, readings[0].price, readings[0].subtotal, opts...)
	for _, r := range readings[1:] {
		if InferUnit(r.usage, r.price, r.subtotal, opts...) != first {
			return model.PricePerUsage
		}
	}
	return first
}

func multipliers(readings []triple) ([]float64, error) {
	out := make([]float64, 0, len(readings))
	for _, r := range readings {
		rate := r.usage * r.price
		if rate == 0 {
			return nil, fmt.Errorf("%w: zero usage or price with subtotal %v", common.ErrInvalidDemand, r.subtotal)
		}
		out = append(out, math.Round(r.subtotal/rate*100)/100)
	}
	return out, nil
}
