package common

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// RuleMatchTimeout bounds a single rule evaluation. Rules with nested
// lookaheads backtrack, so a pathological label must not stall a bill.
const RuleMatchTimeout = 250 * time.Millisecond

// CompileRule compiles a match rule as a case-insensitive search pattern.
// Plain literals compile to substring searches; lookaheads are supported.
func CompileRule(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRule, pattern, err)
	}
	re.MatchTimeout = RuleMatchTimeout
	return re, nil
}
