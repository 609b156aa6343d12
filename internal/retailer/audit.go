package retailer

import (
	"fmt"
	"sort"

	"github.com/Veraticus/bill-autoreader/internal/classification"
	"github.com/Veraticus/bill-autoreader/internal/model"
)

// Disagreement is a retailer label the classifier puts in a different
// category than the retailer table.
type Disagreement struct {
	Retailer string
	Label    string
	Expected model.Category
	Got      model.Category
}

// AuditReport summarises how well a rule set reproduces the retailer tables.
type AuditReport struct {
	Group         string
	Disagreements []Disagreement
	Checked       int
	// Skipped counts labels whose expected category is outside the group.
	Skipped int
}

// Agreement is the share of checked labels classified as expected.
func (r AuditReport) Agreement() float64 {
	if r.Checked == 0 {
		return 1
	}
	return float64(r.Checked-len(r.Disagreements)) / float64(r.Checked)
}

// Audit classifies every retailer label with group and reports the labels
// that land somewhere other than the table says.
func Audit(c *classification.Classifier, group string) (AuditReport, error) {
	members, err := c.Registry().Group(group)
	if err != nil {
		return AuditReport{}, err
	}
	inGroup := make(map[model.Category]bool, len(members))
	for _, m := range members {
		inGroup[m] = true
	}

	report := AuditReport{Group: group}
	for _, t := range tables {
		labels := make([]string, 0, len(t.Labels))
		for label, expected := range t.Labels {
			if !inGroup[expected] {
				report.Skipped++
				continue
			}
			labels = append(labels, label)
		}
		sort.Strings(labels)

		mapping, err := c.Classify(labels, group)
		if err != nil {
			return AuditReport{}, fmt.Errorf("failed to classify %s labels: %w", t.Retailer, err)
		}

		for _, label := range labels {
			report.Checked++
			if got := mapping[label]; got != t.Labels[label] {
				report.Disagreements = append(report.Disagreements, Disagreement{
					Retailer: t.Retailer,
					Label:    label,
					Expected: t.Labels[label],
					Got:      got,
				})
			}
		}
	}

	return report, nil
}
