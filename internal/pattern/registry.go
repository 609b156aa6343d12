// Package pattern holds the tariff pattern registry: match rules per
// canonical category and the priority order of each tariff group.
package pattern

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"

	"github.com/Veraticus/bill-autoreader/internal/common"
	"github.com/Veraticus/bill-autoreader/internal/model"
	"github.com/Veraticus/bill-autoreader/internal/normalize"
)

// Rule is one compiled match rule.
type Rule struct {
	re     *regexp2.Regexp
	Source string
}

// Match reports whether the rule finds a match anywhere in an already
// normalised label.
func (r Rule) Match(label string) (bool, error) {
	ok, err := r.re.MatchString(label)
	if err != nil {
		return false, fmt.Errorf("rule %q: %w", r.Source, err)
	}
	return ok, nil
}

// Registry is an immutable, validated set of rules and tariff groups.
// It is safe for concurrent use.
type Registry struct {
	rules      map[string][]Rule
	categories map[string]model.Category
	groups     map[string][]model.Category
	groupIDs   map[string]model.TariffGroup
}

// NewRegistry compiles every rule of rs and checks every group member
// against the category set.
func NewRegistry(rs model.RuleSet) (*Registry, error) {
	if err := Validate(rs); err != nil {
		return nil, err
	}

	r := &Registry{
		rules:      make(map[string][]Rule, len(rs.Rules)),
		categories: make(map[string]model.Category, len(rs.Rules)),
		groups:     make(map[string][]model.Category, len(rs.Groups)),
		groupIDs:   make(map[string]model.TariffGroup, len(rs.Groups)),
	}

	for category, sources := range rs.Rules {
		compiled := make([]Rule, 0, len(sources))
		for _, src := range sources {
			re, err := common.CompileRule(src)
			if err != nil {
				return nil, fmt.Errorf("category %s: %w", category, err)
			}
			compiled = append(compiled, Rule{Source: src, re: re})
		}
		r.rules[category.Key()] = compiled
		r.categories[category.Key()] = category
	}

	for id, members := range rs.Groups {
		key := strings.ToLower(string(id))
		r.groups[key] = append([]model.Category(nil), members...)
		r.groupIDs[key] = id
	}

	common.LogDebug("pattern registry built", common.Fields{
		"categories": len(r.rules),
		"groups":     len(r.groups),
	})

	return r, nil
}

var defaultRegistry = sync.OnceValues(func() (*Registry, error) {
	return NewRegistry(DefaultRuleSet())
})

// Default returns the built-in registry. It is built on first use and
// shared afterwards.
func Default() *Registry {
	r, err := defaultRegistry()
	if err != nil {
		panic(fmt.Sprintf("built-in rule set is invalid: %v", err))
	}
	return r
}

// Category resolves a category name case-insensitively.
func (r *Registry) Category(name string) (model.Category, error) {
	c, ok := r.categories[strings.ToLower(name)]
	if !ok {
		return model.Unclassified, fmt.Errorf("%w: %q", common.ErrUnknownCategory, name)
	}
	return c, nil
}

// PatternsFor returns the rule strings of a category.
func (r *Registry) PatternsFor(name string) ([]string, error) {
	rules, ok := r.rules[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownCategory, name)
	}
	out := make([]string, len(rules))
	for i, rule := range rules {
		out[i] = rule.Source
	}
	return out, nil
}

// Rules returns the compiled rules of a category.
func (r *Registry) Rules(name string) ([]Rule, error) {
	rules, ok := r.rules[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownCategory, name)
	}
	return rules, nil
}

// Group returns the categories of a tariff group in priority order.
func (r *Registry) Group(name string) ([]model.Category, error) {
	members, ok := r.groups[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownGroup, name)
	}
	return append([]model.Category(nil), members...), nil
}

// Matches reports whether label satisfies any rule of category.
// The label is normalised first.
func (r *Registry) Matches(category, label string) (bool, error) {
	rules, err := r.Rules(category)
	if err != nil {
		return false, err
	}
	return MatchAny(rules, normalize.String(label))
}

// MatchAny reports whether any rule matches the normalised label.
func MatchAny(rules []Rule, normalized string) (bool, error) {
	for _, rule := range rules {
		ok, err := rule.Match(normalized)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Categories lists every category with rules, sorted by name.
func (r *Registry) Categories() []model.Category {
	out := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Groups lists the tariff groups, sorted by name.
func (r *Registry) Groups() []model.TariffGroup {
	out := make([]model.TariffGroup, 0, len(r.groupIDs))
	for _, g := range r.groupIDs {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// GroupOf returns the first group (by name) containing category.
func (r *Registry) GroupOf(category model.Category) (model.TariffGroup, bool) {
	for _, g := range r.Groups() {
		for _, c := range r.groups[strings.ToLower(string(g))] {
			if c.Key() == category.Key() {
				return g, true
			}
		}
	}
	return "", false
}
