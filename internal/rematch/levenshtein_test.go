package rematch

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"flaw", "lawn", 2},
		{"日本", "日本語", 1},
		{"héllo", "hello", 1},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "Levenshtein(%q, %q)", tt.a, tt.b)
	}
}

func TestStringDistance(t *testing.T) {
	require.Equal(t, 0.0, StringDistance("", ""))
	require.Equal(t, 0.0, StringDistance("same", "same"))
	require.Equal(t, 1.0, StringDistance("", "abc"))
	require.Equal(t, 1.0, StringDistance("abc", "xyz"))
	require.InDelta(t, 4.0/11.0, StringDistance("hello world", "hello earth"), 1e-9)
}

func TestProperty_LevenshteinMetric(t *testing.T) {
	gen := rapid.StringMatching(`[a-zA-Z0-9 ]{0,15}`)
	rapid.Check(t, func(rt *rapid.T) {
		a := gen.Draw(rt, "a")
		b := gen.Draw(rt, "b")

		// Symmetry and identity.
		require.Equal(rt, Levenshtein(a, b), Levenshtein(b, a))
		require.Equal(rt, 0, Levenshtein(a, a))

		// The distance is bounded by the longer string's length.
		d := Levenshtein(a, b)
		maxLen := len([]rune(a))
		if l := len([]rune(b)); l > maxLen {
			maxLen = l
		}
		require.LessOrEqual(rt, d, maxLen)
	})
}

func TestProperty_StringDistanceNormalized(t *testing.T) {
	gen := rapid.StringMatching(`[a-z ]{0,20}`)
	rapid.Check(t, func(rt *rapid.T) {
		a := gen.Draw(rt, "a")
		b := gen.Draw(rt, "b")
		d := StringDistance(a, b)
		require.GreaterOrEqual(rt, d, 0.0)
		require.LessOrEqual(rt, d, 1.0)
	})
}
