package model

// RuleSet is the declarative form of a pattern registry: rule strings per
// category and the priority order of every tariff group.
type RuleSet struct {
	Rules  map[Category][]string      `json:"rules" yaml:"rules"`
	Groups map[TariffGroup][]Category `json:"groups" yaml:"groups"`
}

// Clone returns a deep copy so callers can extend a rule set without
// touching the original.
func (rs RuleSet) Clone() RuleSet {
	out := RuleSet{
		Rules:  make(map[Category][]string, len(rs.Rules)),
		Groups: make(map[TariffGroup][]Category, len(rs.Groups)),
	}
	for c, rules := range rs.Rules {
		out.Rules[c] = append([]string(nil), rules...)
	}
	for g, cats := range rs.Groups {
		out.Groups[g] = append([]Category(nil), cats...)
	}
	return out
}
