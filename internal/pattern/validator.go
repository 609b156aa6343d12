package pattern

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/bill-autoreader/internal/common"
	"github.com/Veraticus/bill-autoreader/internal/model"
)

// Validate checks a rule set before it is compiled: every group member must
// name a category with rules, no group may repeat a category, and rule
// strings must be non-empty. Category names must be unique ignoring case.
func Validate(rs model.RuleSet) error {
	var errs []error

	seen := make(map[string]model.Category, len(rs.Rules))
	for category, rules := range rs.Rules {
		if strings.TrimSpace(string(category)) == "" {
			errs = append(errs, fmt.Errorf("%w: empty category name", common.ErrInvalidRule))
			continue
		}
		if prev, ok := seen[category.Key()]; ok {
			errs = append(errs, fmt.Errorf("%w: categories %q and %q differ only in case",
				common.ErrInvalidRule, prev, category))
		}
		seen[category.Key()] = category

		if len(rules) == 0 {
			errs = append(errs, fmt.Errorf("%w: category %s has no rules", common.ErrInvalidRule, category))
		}
		for i, rule := range rules {
			if rule == "" {
				errs = append(errs, fmt.Errorf("%w: category %s rule %d is empty", common.ErrInvalidRule, category, i))
			}
		}
	}

	for group, members := range rs.Groups {
		if len(members) == 0 {
			errs = append(errs, fmt.Errorf("%w: group %s is empty", common.ErrUnknownGroup, group))
			continue
		}
		inGroup := make(map[string]bool, len(members))
		for _, c := range members {
			if _, ok := seen[c.Key()]; !ok {
				errs = append(errs, fmt.Errorf("%w: %q in group %s", common.ErrUnknownCategory, c, group))
			}
			if inGroup[c.Key()] {
				errs = append(errs, fmt.Errorf("%w: %q listed twice in group %s", common.ErrInvalidRule, c, group))
			}
			inGroup[c.Key()] = true
		}
	}

	return errors.Join(errs...)
}
