// Package rematch pairs up similar deleted and inserted lines so that
// renderers can align them and highlight sub-line changes. Similarity is
// measured by normalized Levenshtein distance, and the search runs under a
// hard comparison budget so pathological diffs degrade to no matching
// instead of stalling.
package rematch

// Levenshtein returns the minimum number of single-character edits
// (insertions, deletions, or substitutions) required to change a into b.
// It operates on runes and uses the two-row formulation, so memory is
// O(min(len(a), len(b))) and time is O(len(a) * len(b)).
func Levenshtein(a, b string) int {
	if a == "" {
		return len([]rune(b))
	}
	if b == "" {
		return len([]rune(a))
	}

	ar := []rune(a)
	br := []rune(b)
	// Iterate over the longer string so the rows track the shorter one.
	if len(ar) > len(br) {
		ar, br = br, ar
	}

	v0 := make([]int, len(ar)+1)
	v1 := make([]int, len(ar)+1)
	for j := range v0 {
		v0[j] = j
	}

	for i, bc := range br {
		v1[0] = i + 1
		for j, ac := range ar {
			deletionCost := v0[j+1] + 1
			insertionCost := v1[j] + 1
			substitutionCost := v0[j]
			if bc != ac {
				substitutionCost++
			}
			v1[j+1] = min(deletionCost, insertionCost, substitutionCost)
		}
		v0, v1 = v1, v0
	}

	return v0[len(ar)]
}

// StringDistance returns the normalized Levenshtein distance between a and b:
// the raw distance divided by the length of the longer string, in [0, 1].
// Two empty strings have distance 0.
func StringDistance(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	longest := max(la, lb)
	if longest == 0 {
		return 0
	}
	return float64(Levenshtein(a, b)) / float64(longest)
}
