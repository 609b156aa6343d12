// Package classification maps free-text bill labels onto canonical tariff
// categories using a pattern registry.
package classification

import (
	"fmt"

	"github.com/Veraticus/bill-autoreader/internal/common"
	"github.com/Veraticus/bill-autoreader/internal/model"
	"github.com/Veraticus/bill-autoreader/internal/normalize"
	"github.com/Veraticus/bill-autoreader/internal/pattern"
)

// Classifier standardises tariff labels. It holds no mutable state and is
// safe for concurrent use.
type Classifier struct {
	registry *pattern.Registry
}

// New creates a classifier over the given registry.
func New(registry *pattern.Registry) *Classifier {
	return &Classifier{registry: registry}
}

// Registry returns the registry the classifier matches against.
func (c *Classifier) Registry() *pattern.Registry {
	return c.registry
}

// label is an input label with its normalised form computed once.
type label struct {
	raw        string
	normalized string
}

// step is one category of a group with its rules.
type step struct {
	category model.Category
	rules    []pattern.Rule
}

// Identify returns the labels matching any rule of category, in input
// order with duplicates kept. Categories are not exclusive here.
func (c *Classifier) Identify(labels []string, category string) ([]string, error) {
	rules, err := c.registry.Rules(category)
	if err != nil {
		return nil, err
	}

	matched, _, err := partition(prepare(labels), rules)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(matched))
	for _, l := range matched {
		out = append(out, l.raw)
	}
	return out, nil
}

// Assign classifies every label against group and returns one assignment
// per input label, in input order, duplicates kept. Categories are tried in
// the group's priority order and a label claimed by one category is
// removed before the next is tried.
func (c *Classifier) Assign(labels []string, group string) ([]model.Assignment, error) {
	steps, err := c.steps(group)
	if err != nil {
		return nil, err
	}

	assigned := make(map[string]model.Category, len(labels))
	remaining, err := fold(prepare(labels), steps, func(l label, cat model.Category) {
		assigned[l.raw] = cat
	})
	if err != nil {
		return nil, fmt.Errorf("classify group %s: %w", group, err)
	}

	common.LogDebug("classified tariff labels", common.Fields{
		"group":        group,
		"labels":       len(labels),
		"unclassified": len(remaining),
	})

	out := make([]model.Assignment, len(labels))
	for i, raw := range labels {
		out[i] = model.Assignment{Label: raw, Category: assigned[raw]}
	}
	return out, nil
}

// Classify maps each distinct label to its category or model.Unclassified.
// A label's category depends only on its text, so repeated labels collapse
// to one key without losing information; use Assign to keep duplicates.
func (c *Classifier) Classify(labels []string, group string) (model.Mapping, error) {
	assignments, err := c.Assign(labels, group)
	if err != nil {
		return nil, err
	}

	out := make(model.Mapping, len(assignments))
	for _, a := range assignments {
		out[a.Label] = a.Category
	}
	return out, nil
}

func (c *Classifier) steps(group string) ([]step, error) {
	members, err := c.registry.Group(group)
	if err != nil {
		return nil, err
	}

	steps := make([]step, 0, len(members))
	for _, cat := range members {
		rules, err := c.registry.Rules(string(cat))
		if err != nil {
			return nil, err
		}
		steps = append(steps, step{category: cat, rules: rules})
	}
	return steps, nil
}

// fold threads the pool of unclaimed labels through the steps in order,
// reporting each claim, and returns what is left.
func fold(remaining []label, steps []step, claim func(label, model.Category)) ([]label, error) {
	for _, s := range steps {
		matched, rest, err := partition(remaining, s.rules)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", s.category, err)
		}
		for _, l := range matched {
			claim(l, s.category)
		}
		remaining = rest
	}
	return remaining, nil
}

// partition splits labels into those any rule matches and the rest,
// preserving order in both.
func partition(labels []label, rules []pattern.Rule) (matched, rest []label, err error) {
	for _, l := range labels {
		ok, err := pattern.MatchAny(rules, l.normalized)
		if err != nil {
			return nil, nil, fmt.Errorf("label %q: %w", l.raw, err)
		}
		if ok {
			matched = append(matched, l)
		} else {
			rest = append(rest, l)
		}
	}
	return matched, rest, nil
}

func prepare(labels []string) []label {
	out := make([]label, len(labels))
	for i, raw := range labels {
		out[i] = label{raw: raw, normalized: normalize.String(raw)}
	}
	return out
}
