package model

import "time"

// TariffLine is an additional tariff extracted from a bill: a label and its price.
type TariffLine struct {
	Label string  `json:"label" yaml:"label"`
	Price float64 `json:"price" yaml:"price"`
}

// EvaluationCase is one bill: what the reader extracted and the ground truth.
type EvaluationCase struct {
	Predicted map[string]any `json:"predicted" yaml:"predicted"`
	Actual    map[string]any `json:"actual" yaml:"actual"`
	ID        string         `json:"id" yaml:"id"`
	Retailer  string         `json:"retailer" yaml:"retailer"`
}

// FieldResult is the outcome of comparing one field of one bill.
type FieldResult struct {
	CaseID  string `json:"case_id"`
	Field   string `json:"field"`
	Error   string `json:"error,omitempty"`
	Matched bool   `json:"matched"`
}

// CaseResult collects the field results of one bill.
type CaseResult struct {
	CaseID string        `json:"case_id"`
	Fields []FieldResult `json:"fields"`
}

// Matched reports whether every evaluated field matched.
func (c CaseResult) Matched() bool {
	for _, f := range c.Fields {
		if !f.Matched {
			return false
		}
	}
	return true
}

// EvaluationRun is a full regression pass over a dataset.
type EvaluationRun struct {
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	ID         string       `json:"id"`
	Dataset    string       `json:"dataset"`
	Cases      []CaseResult `json:"cases"`
}

// FieldAccuracy is the match rate of one field across a run.
type FieldAccuracy struct {
	Field   string  `json:"field"`
	Total   int     `json:"total"`
	Matched int     `json:"matched"`
	Rate    float64 `json:"rate"`
}

// Accuracy computes per-field match rates in first-seen field order.
func (r EvaluationRun) Accuracy() []FieldAccuracy {
	index := make(map[string]int)
	var out []FieldAccuracy
	for _, c := range r.Cases {
		for _, f := range c.Fields {
			i, ok := index[f.Field]
			if !ok {
				i = len(out)
				index[f.Field] = i
				out = append(out, FieldAccuracy{Field: f.Field})
			}
			out[i].Total++
			if f.Matched {
				out[i].Matched++
			}
		}
	}
	for i := range out {
		out[i].Rate = float64(out[i].Matched) / float64(out[i].Total)
	}
	return out
}

// MatchedCases counts bills where every field matched.
func (r EvaluationRun) MatchedCases() int {
	n := 0
	for _, c := range r.Cases {
		if c.Matched() {
			n++
		}
	}
	return n
}

// RunSummary is the stored headline of an evaluation run.
type RunSummary struct {
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	ID           string    `json:"id"`
	Dataset      string    `json:"dataset"`
	Cases        int       `json:"cases"`
	MatchedCases int       `json:"matched_cases"`
}

// Summary returns the headline of the run.
func (r EvaluationRun) Summary() RunSummary {
	return RunSummary{
		ID:           r.ID,
		Dataset:      r.Dataset,
		StartedAt:    r.StartedAt,
		FinishedAt:   r.FinishedAt,
		Cases:        len(r.Cases),
		MatchedCases: r.MatchedCases(),
	}
}
