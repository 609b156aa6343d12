package evaluation

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Distance is the Levenshtein edit distance between a and b.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// IsWithinDistance reports whether a and b are at most maxDistance edits apart.
func IsWithinDistance(a, b string, maxDistance int) bool {
	return Distance(a, b) <= maxDistance
}

// IsNameMatch reports whether the token-set similarity of a and b reaches threshold.
func IsNameMatch(a, b string, threshold float64) bool {
	return TokenSetRatio(a, b) >= threshold
}

// Ratio is the indel similarity of a and b in [0,100]: 100 * (1 - d/(len(a)+len(b)))
// where d counts insertions and deletions.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	return normalized(indel(ra, rb), total)
}

// TokenSetRatio compares the whitespace-separated token sets of a and b,
// scoring the shared tokens against each side's leftovers. Word order and
// repeated words do not matter; a string whose tokens are a subset of the
// other's scores 100. Either side empty scores 0.
func TokenSetRatio(a, b string) float64 {
	tokensA, tokensB := tokenSet(a), tokenSet(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	var sect, diffAB, diffBA []string
	for t := range tokensA {
		if tokensB[t] {
			sect = append(sect, t)
		} else {
			diffAB = append(diffAB, t)
		}
	}
	for t := range tokensB {
		if !tokensA[t] {
			diffBA = append(diffBA, t)
		}
	}

	if len(sect) > 0 && (len(diffAB) == 0 || len(diffBA) == 0) {
		return 100
	}

	sectStr, abStr, baStr := join(sect), join(diffAB), join(diffBA)
	sectLen := len([]rune(sectStr))
	abLen := len([]rune(abStr))
	baLen := len([]rune(baStr))

	sep := 0
	if sectLen > 0 {
		sep = 1
	}
	sectABLen := sectLen + sep + abLen
	sectBALen := sectLen + sep + baLen

	best := normalized(indel([]rune(abStr), []rune(baStr)), sectABLen+sectBALen)
	if sectLen == 0 {
		return best
	}

	// the intersection is a common prefix of both sides, so only the
	// separator and leftovers count as edits
	if r := normalized(sep+abLen, sectLen+sectABLen); r > best {
		best = r
	}
	if r := normalized(sep+baLen, sectLen+sectBALen); r > best {
		best = r
	}
	return best
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range strings.Fields(s) {
		set[t] = true
	}
	return set
}

func join(tokens []string) string {
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func normalized(dist, total int) float64 {
	if total == 0 {
		return 100
	}
	return 100 * (1 - float64(dist)/float64(total))
}

// indel is the insertion/deletion distance: len(a)+len(b)-2*LCS(a,b).
func indel(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return len(a) + len(b) - 2*prev[len(b)]
}
