package evaluation

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/bill-autoreader/internal/common"
	"github.com/Veraticus/bill-autoreader/internal/model"
)

// Dataset values arrive as decoded JSON or YAML (any, []any, map[string]any);
// these helpers turn them into typed values or report ErrShapeMismatch.

func asOptionalString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	default:
		return "", fmt.Errorf("%w: want string, got %T", common.ErrShapeMismatch, v)
	}
}

// AsStrings converts a list of strings; nil is an empty list.
func AsStrings(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: item %d is %T, want string", common.ErrShapeMismatch, i, item)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: want list of strings, got %T", common.ErrShapeMismatch, v)
	}
}

// AsTariffLines converts a list of {label, price} objects or [label, price]
// pairs; nil is an empty list.
func AsTariffLines(v any) ([]model.TariffLine, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []model.TariffLine:
		return t, nil
	case []any:
		out := make([]model.TariffLine, len(t))
		for i, item := range t {
			line, err := asTariffLine(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			out[i] = line
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: want list of tariff lines, got %T", common.ErrShapeMismatch, v)
	}
}

func asTariffLine(v any) (model.TariffLine, error) {
	switch t := v.(type) {
	case map[string]any:
		label, ok := t["label"].(string)
		if !ok {
			return model.TariffLine{}, fmt.Errorf("%w: tariff line without label", common.ErrShapeMismatch)
		}
		price, err := asFloat(t["price"])
		if err != nil {
			return model.TariffLine{}, err
		}
		return model.TariffLine{Label: label, Price: price}, nil
	case []any:
		if len(t) != 2 {
			return model.TariffLine{}, fmt.Errorf("%w: tariff pair has %d items", common.ErrShapeMismatch, len(t))
		}
		label, ok := t[0].(string)
		if !ok {
			return model.TariffLine{}, fmt.Errorf("%w: tariff label is %T", common.ErrShapeMismatch, t[0])
		}
		price, err := asFloat(t[1])
		if err != nil {
			return model.TariffLine{}, err
		}
		return model.TariffLine{Label: label, Price: price}, nil
	default:
		return model.TariffLine{}, fmt.Errorf("%w: tariff line is %T", common.ErrShapeMismatch, v)
	}
}

// AsNestedFloats converts a list of lists of numbers. nil at either level
// becomes an empty list.
func AsNestedFloats(v any) ([][]float64, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case [][]float64:
		return t, nil
	case []any:
		out := make([][]float64, len(t))
		for i, inner := range t {
			row, err := asFloats(inner)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			out[i] = row
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: want nested list, got %T", common.ErrShapeMismatch, v)
	}
}

func asFloats(v any) ([]float64, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []float64:
		return t, nil
	case []any:
		out := make([]float64, len(t))
		for i, item := range t {
			f, err := asFloat(item)
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: want list of numbers, got %T", common.ErrShapeMismatch, v)
	}
}

func asFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	default:
		return 0, fmt.Errorf("%w: want number, got %T", common.ErrShapeMismatch, v)
	}
}
