package classification

import (
	"context"
	"fmt"

	"github.com/Veraticus/bill-autoreader/internal/model"
)

// Bill is the set of tariff labels read from one bill.
type Bill struct {
	ID     string   `json:"id" yaml:"id"`
	Labels []string `json:"labels" yaml:"labels"`
}

// BillResult is the classification of one bill. Err is set when that bill
// alone failed; other bills are unaffected.
type BillResult struct {
	Err         error
	Mapping     model.Mapping
	BillID      string
	Assignments []model.Assignment
}

// ClassifyBatch classifies many bills independently against one group.
// An unknown group fails the whole batch before any bill is processed;
// a failure inside a bill is recorded on that bill's result.
func (c *Classifier) ClassifyBatch(ctx context.Context, bills []Bill, group string) ([]BillResult, error) {
	if _, err := c.registry.Group(group); err != nil {
		return nil, err
	}

	results := make([]BillResult, 0, len(bills))
	for _, bill := range bills {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		res := BillResult{BillID: bill.ID}
		assignments, err := c.Assign(bill.Labels, group)
		if err != nil {
			res.Err = fmt.Errorf("bill %s: %w", bill.ID, err)
		} else {
			res.Assignments = assignments
			res.Mapping = make(model.Mapping, len(assignments))
			for _, a := range assignments {
				res.Mapping[a.Label] = a.Category
			}
		}
		results = append(results, res)
	}

	return results, nil
}
