// Package normalize canonicalises bill text before pattern matching and
// fuzzy comparison.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// String strips combining diacritical marks, leaving base letters, digits
// and punctuation untouched: "Café Émigré" becomes "Cafe Emigre".
// Case and spacing are preserved. String is idempotent.
func String(s string) string {
	if s == "" {
		return s
	}
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(stripAccents, s)
	if err != nil {
		return s
	}
	return result
}

// Simplify lowercases, strips accents, turns underscores into spaces and
// collapses runs of whitespace. Used for name and label comparison.
func Simplify(s string) string {
	s = strings.ReplaceAll(strings.ToLower(String(s)), "_", " ")
	return strings.Join(strings.Fields(s), " ")
}
