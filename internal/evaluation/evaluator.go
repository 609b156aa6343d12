package evaluation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/bill-autoreader/internal/common"
	"github.com/Veraticus/bill-autoreader/internal/model"
)

// Evaluated field names.
const (
	FieldSiteIdentity            = "site_identity"
	FieldRetailer                = "retailer"
	FieldAdditionalTariff        = "additional_tariff"
	FieldAdditionalLabel         = "additional_label"
	FieldDivideDemand            = "divide_demand"
	FieldMonthlyDemandMultiplier = "monthly_demand_multiplier"
)

// FieldFunc compares one loosely typed field. An error means the values
// could not be compared at all; the field then counts as not matched.
type FieldFunc func(predicted, actual any) (bool, error)

// Evaluator runs field comparators over bills.
type Evaluator struct {
	fields map[string]FieldFunc
	now    func() time.Time
}

// NewEvaluator registers the standard comparators backed by m.
func NewEvaluator(m *Matcher) *Evaluator {
	e := &Evaluator{fields: make(map[string]FieldFunc), now: time.Now}

	e.Register(FieldSiteIdentity, func(p, a any) (bool, error) {
		return MatchSiteIdentity(p, a), nil
	})
	e.Register(FieldRetailer, func(p, a any) (bool, error) {
		ps, err := asOptionalString(p)
		if err != nil {
			return false, err
		}
		as, err := asOptionalString(a)
		if err != nil {
			return false, err
		}
		return m.MatchRetailer(ps, as), nil
	})
	e.Register(FieldAdditionalTariff, func(p, a any) (bool, error) {
		pl, err := AsTariffLines(p)
		if err != nil {
			return false, err
		}
		al, err := AsTariffLines(a)
		if err != nil {
			return false, err
		}
		if err := sameLength(len(pl), len(al)); err != nil {
			return false, err
		}
		return m.MatchAdditionalTariff(pl, al), nil
	})
	e.Register(FieldAdditionalLabel, func(p, a any) (bool, error) {
		pl, err := AsStrings(p)
		if err != nil {
			return false, err
		}
		al, err := AsStrings(a)
		if err != nil {
			return false, err
		}
		if err := sameLength(len(pl), len(al)); err != nil {
			return false, err
		}
		return m.MatchAdditionalLabel(pl, al), nil
	})
	e.Register(FieldDivideDemand, func(p, a any) (bool, error) {
		return MatchDivideDemand(p, a), nil
	})
	e.Register(FieldMonthlyDemandMultiplier, func(p, a any) (bool, error) {
		pm, err := AsNestedFloats(p)
		if err != nil {
			return false, err
		}
		am, err := AsNestedFloats(a)
		if err != nil {
			return false, err
		}
		return MatchMonthlyDemandMultiplier(pm, am), nil
	})

	return e
}

// Register adds or replaces the comparator for a field.
func (e *Evaluator) Register(field string, fn FieldFunc) {
	e.fields[field] = fn
}

// Fields lists the fields with a comparator, sorted.
func (e *Evaluator) Fields() []string {
	out := make([]string, 0, len(e.fields))
	for f := range e.fields {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// EvaluateCase compares every ground-truth field of one bill that has a
// comparator. A field that cannot be compared is recorded as not matched
// with its error; it never stops the other fields.
func (e *Evaluator) EvaluateCase(c model.EvaluationCase) model.CaseResult {
	fields := make([]string, 0, len(c.Actual))
	for f := range c.Actual {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	result := model.CaseResult{CaseID: c.ID}
	for _, field := range fields {
		fn, ok := e.fields[field]
		if !ok {
			common.LogDebug("no comparator for field", common.Fields{"case": c.ID, "field": field})
			continue
		}

		fr := model.FieldResult{CaseID: c.ID, Field: field}
		matched, err := fn(c.Predicted[field], c.Actual[field])
		if err != nil {
			fr.Error = err.Error()
		} else {
			fr.Matched = matched
		}
		result.Fields = append(result.Fields, fr)
	}
	return result
}

// EvaluateDataset evaluates every case of a dataset. progress, if non-nil, is called
// after each case. Cancellation stops the run and returns what was done.
func (e *Evaluator) EvaluateDataset(ctx context.Context, dataset string, cases []model.EvaluationCase, progress func()) (model.EvaluationRun, error) {
	run := model.EvaluationRun{
		ID:        uuid.NewString(),
		Dataset:   dataset,
		StartedAt: e.now().UTC(),
		Cases:     make([]model.CaseResult, 0, len(cases)),
	}

	for i, c := range cases {
		select {
		case <-ctx.Done():
			run.FinishedAt = e.now().UTC()
			return run, ctx.Err()
		default:
		}

		if c.ID == "" {
			c.ID = fmt.Sprintf("case-%d", i+1)
		}
		run.Cases = append(run.Cases, e.EvaluateCase(c))
		if progress != nil {
			progress()
		}
	}

	run.FinishedAt = e.now().UTC()

	common.LogDebug("evaluation run finished", common.Fields{
		"run":     run.ID,
		"cases":   len(run.Cases),
		"matched": run.MatchedCases(),
	})

	return run, nil
}

func sameLength(p, a int) error {
	if p != a {
		return fmt.Errorf("%w: predicted has %d items, actual has %d", common.ErrShapeMismatch, p, a)
	}
	return nil
}
