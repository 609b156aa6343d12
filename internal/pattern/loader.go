package pattern

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/bill-autoreader/internal/model"
)

// LoadRuleSet decodes a YAML rule set:
//
//	rules:
//	  peak: ["general usage", "^peak$"]
//	groups:
//	  energy_consumption: [supply_charge, peak]
func LoadRuleSet(r io.Reader) (model.RuleSet, error) {
	var rs model.RuleSet
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rs); err != nil {
		if err == io.EOF {
			return model.RuleSet{}, nil
		}
		return model.RuleSet{}, fmt.Errorf("failed to decode rule set: %w", err)
	}
	return rs, nil
}

// LoadRuleSetFile reads a YAML rule set from disk.
func LoadRuleSetFile(path string) (model.RuleSet, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from user config
	if err != nil {
		return model.RuleSet{}, fmt.Errorf("failed to open rule set: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadRuleSet(f)
}

// Merge overlays override onto base. A category present in override
// replaces that category's rules (names compare case-insensitively); a group present in override replaces
// that group's order. Neither input is modified.
func Merge(base, override model.RuleSet) model.RuleSet {
	out := base.Clone()
	canonical := make(map[string]model.Category, len(out.Rules))
	for c := range out.Rules {
		canonical[c.Key()] = c
	}
	for c, rules := range override.Rules {
		if existing, ok := canonical[c.Key()]; ok {
			c = existing
		}
		out.Rules[c] = append([]string(nil), rules...)
	}
	groups := make(map[string]model.TariffGroup, len(out.Groups))
	for g := range out.Groups {
		groups[strings.ToLower(string(g))] = g
	}
	for g, members := range override.Groups {
		if existing, ok := groups[strings.ToLower(string(g))]; ok {
			g = existing
		}
		out.Groups[g] = append([]model.Category(nil), members...)
	}
	return out
}

// NewRegistryFromFile builds a registry from the built-in rules overlaid
// with a YAML file. An empty path yields the built-in registry.
func NewRegistryFromFile(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	override, err := LoadRuleSetFile(path)
	if err != nil {
		return nil, err
	}
	return NewRegistry(Merge(DefaultRuleSet(), override))
}
