// Package demand infers how demand charges on a bill are priced.
package demand

import (
	"math"

	"github.com/Veraticus/bill-autoreader/internal/model"
)

// Defaults for unit inference.
const (
	DefaultLossFactor = 1.0
	DefaultTolerance  = 0.01
)

type unitConfig struct {
	billingDays int
	lossFactor  float64
	tolerance   float64
}

// UnitOption tunes InferUnit.
type UnitOption func(*unitConfig)

// WithBillingDays supplies the number of days in the billing period.
// Zero means not supplied.
func WithBillingDays(days int) UnitOption {
	return func(c *unitConfig) { c.billingDays = days }
}

// WithLossFactor scales metered usage for network losses.
func WithLossFactor(f float64) UnitOption {
	return func(c *unitConfig) { c.lossFactor = f }
}

// WithTolerance sets the absolute tolerance used when comparing subtotals.
func WithTolerance(tol float64) UnitOption {
	return func(c *unitConfig) { c.tolerance = tol }
}

func newUnitConfig(opts []UnitOption) unitConfig {
	cfg := unitConfig{lossFactor: DefaultLossFactor, tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// InferUnit decides whether price is quoted per unit of usage or per unit
// of usage per day by checking which reading reproduces subtotal.
//
// Without billing days the answer is always one of the two per-usage units:
// anything that is not per usage is taken to be per day. With billing days,
// a subtotal matching neither reading yields model.PriceUnitUnknown.
func InferUnit(usage, price, subtotal float64, opts ...UnitOption) model.PriceUnit {
	cfg := newUnitConfig(opts)

	p := usage * price * cfg.lossFactor
	perUsage := closeTo(p, subtotal, cfg.tolerance)

	if cfg.billingDays == 0 {
		if perUsage {
			return model.PricePerUsage
		}
		return model.PricePerUsagePerDay
	}

	switch {
	case perUsage:
		return model.PricePerUsage
	case closeTo(p*float64(cfg.billingDays), subtotal, cfg.tolerance):
		return model.PricePerUsagePerDay
	default:
		return model.PriceUnitUnknown
	}
}

// closeTo compares with an absolute tolerance only.
func closeTo(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
