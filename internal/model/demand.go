package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// PriceUnit describes how a demand price is quoted.
type PriceUnit string

// Demand price units.
const (
	PricePerUsage       PriceUnit = "price/usage"
	PricePerUsagePerDay PriceUnit = "price/(usage*day)"
	PriceUnitUnknown    PriceUnit = "unknown"
)

// Series is a demand field: absent, a single scalar, or one value per
// billing sub-period. The zero value is absent.
type Series struct {
	values []float64
	list   bool
	set    bool
}

// Scalar returns a single-value series.
func Scalar(v float64) Series {
	return Series{values: []float64{v}, set: true}
}

// List returns a per-period series. List() with no values is an empty list, not absent.
func List(vs ...float64) Series {
	return Series{values: append([]float64{}, vs...), list: true, set: true}
}

// IsNone reports whether the series carries no data.
func (s Series) IsNone() bool { return !s.set }

// IsList reports whether the series was given as a sequence.
func (s Series) IsList() bool { return s.list }

// Len returns the number of values the series contributes.
func (s Series) Len() int { return len(s.values) }

// Values returns the series flattened to a slice; absent yields an empty slice.
func (s Series) Values() []float64 {
	return append([]float64{}, s.values...)
}

// Concat flattens two series into one list, skipping absent ones.
func Concat(a, b Series) Series {
	out := make([]float64, 0, a.Len()+b.Len())
	out = append(out, a.values...)
	out = append(out, b.values...)
	return List(out...)
}

// MarshalJSON encodes absent as null, scalars as numbers and lists as arrays.
func (s Series) MarshalJSON() ([]byte, error) {
	switch {
	case !s.set:
		return []byte("null"), nil
	case s.list:
		return json.Marshal(s.values)
	default:
		return json.Marshal(s.values[0])
	}
}

// UnmarshalJSON accepts null, a number, or an array of numbers.
func (s *Series) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = Series{}
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var vs []float64
		if err := json.Unmarshal(data, &vs); err != nil {
			return fmt.Errorf("demand series: %w", err)
		}
		*s = List(vs...)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("demand series: %w", err)
	}
	*s = Scalar(v)
	return nil
}

// UnmarshalYAML accepts null, a number, or a sequence of numbers.
func (s *Series) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var vs []float64
		if err := node.Decode(&vs); err != nil {
			return fmt.Errorf("demand series: %w", err)
		}
		*s = List(vs...)
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*s = Series{}
			return nil
		}
		var v float64
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("demand series: %w", err)
		}
		*s = Scalar(v)
	default:
		return fmt.Errorf("demand series: unexpected yaml node kind %d", node.Kind)
	}
	return nil
}

// DemandRecord holds the usage, price and subtotal of one demand charge.
// All three are absent together when the bill has no such charge.
type DemandRecord struct {
	Usage    Series `json:"usage" yaml:"usage"`
	Price    Series `json:"price" yaml:"price"`
	Subtotal Series `json:"subtotal" yaml:"subtotal"`
}

// IsNone reports whether the record carries no data.
func (r DemandRecord) IsNone() bool {
	return r.Usage.IsNone() && r.Price.IsNone() && r.Subtotal.IsNone()
}

// Multipliers are the per-period day multipliers of a per-day priced demand.
type Multipliers struct {
	Summer    []float64 `json:"summer" yaml:"summer"`
	NonSummer []float64 `json:"nonsummer" yaml:"nonsummer"`
}

// DemandStructure summarises how a bill's demand charges are laid out.
type DemandStructure struct {
	Multipliers   *Multipliers `json:"multipliers" yaml:"multipliers"`
	PriceUnit     PriceUnit    `json:"price_unit" yaml:"price_unit"`
	MonthlyDemand bool         `json:"monthly_demand" yaml:"monthly_demand"`
}
