package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"win connect", "win", 100},
		{"agl pty", "agl", 100},
		{"peak usage", "usage peak", 100},
		{"mojo power", "agl", 0},
		{"", "agl", 0},
		{"dodo power & gas", "dodo power and gas", 100 * (1 - 2.0/30)},
		{"fixed supply charge", "variable supply charge", 81.25},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.want, TokenSetRatio(tt.a, tt.b), 0.001)
			assert.InDelta(t, tt.want, TokenSetRatio(tt.b, tt.a), 0.001)
		})
	}
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 100, Ratio("", ""), 0.001)
	assert.InDelta(t, 100, Ratio("abc", "abc"), 0.001)
	// lcs("abcd", "abxd") = 3, indel = 2, total 8
	assert.InDelta(t, 75, Ratio("abcd", "abxd"), 0.001)
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, Distance("sumo", "sumo"))
	assert.Equal(t, 3, Distance("dodo power & gas", "dodo power and gas"))
	assert.True(t, IsWithinDistance("kitten", "sitting", 3))
	assert.False(t, IsWithinDistance("kitten", "sitting", 2))
}
