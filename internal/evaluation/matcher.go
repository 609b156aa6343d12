// Package evaluation compares what the bill reader extracted against
// ground truth, field by field, for regression testing of the reader.
package evaluation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/bill-autoreader/internal/common"
	"github.com/Veraticus/bill-autoreader/internal/model"
	"github.com/Veraticus/bill-autoreader/internal/normalize"
)

// companySuffixes are stripped from retailer names before comparison.
// "energy" is in nearly every retailer name and identifies none of them.
var companySuffixes = []string{
	"pty ltd",
	"ltd",
	"inc",
	"corporation",
	"limited",
	"real estate",
	"license",
	"centres",
	"sales",
	"group",
	"energy",
}

// retailerAliases maps trading names the reader prints onto the name used
// in ground truth.
var retailerAliases = map[string]string{
	"winconnect": "win energy",
}

// Thresholds configures fuzzy comparisons.
type Thresholds struct {
	// Name is the token-set score a retailer name needs.
	Name float64
	// MaxDistance is the edit distance under which retailer names match.
	MaxDistance int
	// TariffLabel is the token-set score an additional tariff label needs.
	TariffLabel float64
	// Label is the token-set score a bare additional label needs.
	Label float64
}

// DefaultThresholds are the thresholds used by the regression suite.
func DefaultThresholds() Thresholds {
	return Thresholds{Name: 95, MaxDistance: 3, TariffLabel: 80, Label: 90}
}

// Matcher holds the field comparators.
type Matcher struct {
	thresholds Thresholds
}

// NewMatcher creates a matcher with the given thresholds.
func NewMatcher(t Thresholds) *Matcher {
	return &Matcher{thresholds: t}
}

// StripCompanySuffix lowercases a company name, turns underscores into
// spaces and removes corporate suffixes.
func StripCompanySuffix(value string) string {
	v := normalize.Simplify(value)
	for _, suffix := range companySuffixes {
		v = strings.TrimSpace(strings.ReplaceAll(v, suffix, ""))
	}
	return strings.Join(strings.Fields(v), " ")
}

// MatchSiteIdentity compares the first ten characters of both values'
// string forms (NMI/MIRN checksums differ in trailing digits).
func MatchSiteIdentity(predicted, actual any) bool {
	return prefix(stringify(predicted), 10) == prefix(stringify(actual), 10)
}

// MatchRetailer reports whether two retailer names refer to the same retailer.
// An empty prediction never matches.
func (m *Matcher) MatchRetailer(predicted, actual string) bool {
	if strings.TrimSpace(predicted) == "" {
		return false
	}
	if alias, ok := retailerAliases[strings.ToLower(strings.TrimSpace(predicted))]; ok {
		predicted = alias
	}

	p, a := StripCompanySuffix(predicted), StripCompanySuffix(actual)

	if IsNameMatch(p, a, m.thresholds.Name) || IsWithinDistance(p, a, m.thresholds.MaxDistance) {
		return true
	}

	if strings.EqualFold(strings.TrimSpace(actual), "win energy") {
		return m.MatchRetailer(predicted, "Win Connect")
	}

	return p != "" && a != "" && (strings.Contains(a, p) || strings.Contains(p, a))
}

// MatchAdditionalTariff pairs predicted and actual tariff lines regardless
// of order. Each pair needs an identical price and similar labels; the
// lists must have the same length.
func (m *Matcher) MatchAdditionalTariff(predicted, actual []model.TariffLine) bool {
	if len(predicted) != len(actual) {
		return false
	}
	return pairUp(len(predicted), len(actual), func(i, j int) float64 {
		if predicted[i].Price != actual[j].Price {
			return -1
		}
		return TokenSetRatio(normalize.Simplify(predicted[i].Label), normalize.Simplify(actual[j].Label))
	}, m.thresholds.TariffLabel)
}

// MatchAdditionalLabel pairs two label lists regardless of order and case.
func (m *Matcher) MatchAdditionalLabel(predicted, actual []string) bool {
	if len(predicted) != len(actual) {
		return false
	}
	return pairUp(len(predicted), len(actual), func(i, j int) float64 {
		return TokenSetRatio(normalize.Simplify(predicted[i]), normalize.Simplify(actual[j]))
	}, m.thresholds.Label)
}

// pairUp reports whether every left item can be paired with a distinct
// right item scoring at least threshold. It finds a maximum bipartite
// matching with augmenting paths, so the answer does not depend on the
// order of either list.
func pairUp(left, right int, score func(i, j int) float64, threshold float64) bool {
	ok := make([][]bool, left)
	for i := range ok {
		ok[i] = make([]bool, right)
		for j := range ok[i] {
			ok[i][j] = score(i, j) >= threshold
		}
	}

	owner := make([]int, right)
	for j := range owner {
		owner[j] = -1
	}

	var augment func(i int, seen []bool) bool
	augment = func(i int, seen []bool) bool {
		for j := 0; j < right; j++ {
			if !ok[i][j] || seen[j] {
				continue
			}
			seen[j] = true
			if owner[j] < 0 || augment(owner[j], seen) {
				owner[j] = i
				return true
			}
		}
		return false
	}

	matched := 0
	for i := 0; i < left; i++ {
		if augment(i, make([]bool, right)) {
			matched++
		}
	}
	return matched == left
}

// ParseBoolish reads yes/no, true/false and 1/0 in any case, and real bools.
func ParseBoolish(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "true", "1":
			return true, nil
		case "no", "false", "0":
			return false, nil
		}
	case int:
		if t == 0 || t == 1 {
			return t == 1, nil
		}
	case float64:
		if t == 0 || t == 1 {
			return t == 1, nil
		}
	}
	return false, fmt.Errorf("%w: %v", common.ErrUnrecognizedBoolean, v)
}

// MatchDivideDemand compares two boolean-ish values. Anything unreadable,
// including nil, does not match.
func MatchDivideDemand(predicted, actual any) bool {
	p, err := ParseBoolish(predicted)
	if err != nil {
		return false
	}
	a, err := ParseBoolish(actual)
	if err != nil {
		return false
	}
	return p == a
}

// MatchMonthlyDemandMultiplier compares nested multiplier lists; nil lists
// at either level equal empty ones.
func MatchMonthlyDemandMultiplier(predicted, actual [][]float64) bool {
	if len(predicted) != len(actual) {
		return false
	}
	for i := range predicted {
		if len(predicted[i]) != len(actual[i]) {
			return false
		}
		for j := range predicted[i] {
			if predicted[i][j] != actual[i][j] {
				return false
			}
		}
	}
	return true
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
