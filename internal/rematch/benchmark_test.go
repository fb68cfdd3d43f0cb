package rematch

import (
	"fmt"
	"testing"
)

// generateLines builds n lines that differ from each other only in a numeric
// suffix, forcing the matcher to compare real content.
func generateLines(n int, prefix string) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("%s value assignment number %d", prefix, i)
	}
	return lines
}

func BenchmarkLevenshtein(b *testing.B) {
	a := "the quick brown fox jumps over the lazy dog"
	c := "the quick brown cat jumps over the lazy dog"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Levenshtein(a, c)
	}
}

func BenchmarkStringDistance(b *testing.B) {
	a := "func (m *matcher) pairDistance(i, j int) float64 {"
	c := "func (m *matcher) pairScore(i, j int) float64 {"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		StringDistance(a, c)
	}
}

func BenchmarkMatchLines(b *testing.B) {
	for _, size := range []int{5, 20, 50} {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			deleted := generateLines(size, "old")
			inserted := generateLines(size, "new")
			cfg := DefaultConfig()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				MatchLines(deleted, inserted, StringDistance, cfg)
			}
		})
	}
}

func BenchmarkMatchLines_BudgetExhausted(b *testing.B) {
	deleted := generateLines(100, "old")
	inserted := generateLines(100, "new")
	cfg := DefaultConfig()
	cfg.MaxComparisons = 500
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		MatchLines(deleted, inserted, StringDistance, cfg)
	}
}
