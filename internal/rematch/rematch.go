package rematch

import "fmt"

// DistanceFunc computes a normalized dissimilarity score in [0, 1] between
// two lines. 0 means identical. The package ships StringDistance as the
// default; callers may substitute their own.
type DistanceFunc func(a, b string) float64

// Kind classifies a match group.
type Kind int

const (
	// KindUnmatchedDelete is a run of deleted lines with no insert partner.
	KindUnmatchedDelete Kind = iota
	// KindUnmatchedInsert is a run of inserted lines with no delete partner.
	KindUnmatchedInsert
	// KindPair is one deleted line matched with one inserted line.
	KindPair
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindUnmatchedDelete:
		return "unmatched-delete"
	case KindUnmatchedInsert:
		return "unmatched-insert"
	case KindPair:
		return "pair"
	default:
		return "unknown"
	}
}

// Group is an ordered run of matcher output. For KindPair, Deleted and
// Inserted each hold exactly one line and Score carries the pair's distance.
type Group struct {
	Kind     Kind
	Deleted  []string
	Inserted []string
	Score    float64
}

// Config bounds the matching search.
type Config struct {
	// MaxComparisons caps the number of distance evaluations per MatchLines
	// call. When the budget would be exceeded, remaining lines are emitted
	// unmatched.
	MaxComparisons int
	// MaxLineLength excludes lines longer than this (in bytes) from
	// matching; they always come out unmatched.
	MaxLineLength int
	// Threshold is the largest distance still considered a match, in [0, 1].
	Threshold float64
}

// DefaultConfig returns the limits used by the CLI.
func DefaultConfig() Config {
	return Config{
		MaxComparisons: 2500,
		MaxLineLength:  200,
		Threshold:      1.0,
	}
}

// Validate reports invalid limits or an out-of-range threshold.
func (c Config) Validate() error {
	if c.MaxComparisons < 0 {
		return fmt.Errorf("max comparisons must not be negative, got %d", c.MaxComparisons)
	}
	if c.MaxLineLength < 0 {
		return fmt.Errorf("max line length must not be negative, got %d", c.MaxLineLength)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold must be in [0, 1], got %g", c.Threshold)
	}
	return nil
}

// matcher holds the per-invocation search state: the input slices, the
// remaining comparison budget, and a distance cache keyed by global line
// indices so recursive re-scans of a subrange cost nothing.
type matcher struct {
	deleted  []string
	inserted []string
	distance DistanceFunc
	cfg      Config

	budget int
	cache  map[int]float64
}

// MatchLines pairs semantically similar lines between deleted and inserted
// using a greedy divide-and-conquer search: find the globally closest pair,
// split both lists around it, and recurse on each side. Every input line
// appears in exactly one group, in original order. The function never fails;
// when the comparison budget runs out the remaining lines are emitted
// unmatched.
func MatchLines(deleted, inserted []string, distance DistanceFunc, cfg Config) []Group {
	m := &matcher{
		deleted:  deleted,
		inserted: inserted,
		distance: distance,
		cfg:      cfg,
		budget:   cfg.MaxComparisons,
		cache:    make(map[int]float64),
	}
	return coalesce(m.match(0, len(deleted), 0, len(inserted)))
}

// cacheKey maps a (deleted, inserted) index pair to a flat key.
func (m *matcher) cacheKey(i, j int) int {
	return i*len(m.inserted) + j
}

// eligible reports whether a line takes part in matching at all.
func (m *matcher) eligible(line string) bool {
	return m.cfg.MaxLineLength == 0 || len(line) <= m.cfg.MaxLineLength
}

// pairDistance returns the cached or freshly computed distance between
// deleted[i] and inserted[j]. New computations count against the budget.
func (m *matcher) pairDistance(i, j int) float64 {
	key := m.cacheKey(i, j)
	if d, ok := m.cache[key]; ok {
		return d
	}
	d := m.distance(m.deleted[i], m.inserted[j])
	m.cache[key] = d
	m.budget--
	return d
}

// pendingComparisons counts the distance evaluations a full scan of the
// given ranges would add: eligible pairs not already cached.
func (m *matcher) pendingComparisons(dLo, dHi, iLo, iHi int) int {
	pending := 0
	for i := dLo; i < dHi; i++ {
		if !m.eligible(m.deleted[i]) {
			continue
		}
		for j := iLo; j < iHi; j++ {
			if !m.eligible(m.inserted[j]) {
				continue
			}
			if _, ok := m.cache[m.cacheKey(i, j)]; !ok {
				pending++
			}
		}
	}
	return pending
}

// match recursively pairs up deleted[dLo:dHi] against inserted[iLo:iHi].
func (m *matcher) match(dLo, dHi, iLo, iHi int) []Group {
	if dLo == dHi && iLo == iHi {
		return nil
	}
	if dLo == dHi || iLo == iHi {
		return m.unmatched(dLo, dHi, iLo, iHi)
	}
	if m.pendingComparisons(dLo, dHi, iLo, iHi) > m.budget {
		return m.unmatched(dLo, dHi, iLo, iHi)
	}

	// Scan every eligible pair for the global minimum. Ties go to the
	// earliest pair in original order: deleted index outer, inserted inner,
	// strict less-than.
	bestD, bestI := -1, -1
	bestDist := 0.0
	for i := dLo; i < dHi; i++ {
		if !m.eligible(m.deleted[i]) {
			continue
		}
		for j := iLo; j < iHi; j++ {
			if !m.eligible(m.inserted[j]) {
				continue
			}
			d := m.pairDistance(i, j)
			if bestD < 0 || d < bestDist {
				bestD, bestI = i, j
				bestDist = d
			}
		}
	}

	if bestD < 0 || bestDist > m.cfg.Threshold {
		return m.unmatched(dLo, dHi, iLo, iHi)
	}

	var groups []Group
	groups = append(groups, m.match(dLo, bestD, iLo, bestI)...)
	groups = append(groups, Group{
		Kind:     KindPair,
		Deleted:  []string{m.deleted[bestD]},
		Inserted: []string{m.inserted[bestI]},
		Score:    bestDist,
	})
	groups = append(groups, m.match(bestD+1, dHi, bestI+1, iHi)...)
	return groups
}

// unmatched emits the remaining delete run followed by the remaining insert
// run.
func (m *matcher) unmatched(dLo, dHi, iLo, iHi int) []Group {
	var groups []Group
	if dHi > dLo {
		groups = append(groups, Group{
			Kind:    KindUnmatchedDelete,
			Deleted: append([]string{}, m.deleted[dLo:dHi]...),
		})
	}
	if iHi > iLo {
		groups = append(groups, Group{
			Kind:     KindUnmatchedInsert,
			Inserted: append([]string{}, m.inserted[iLo:iHi]...),
		})
	}
	return groups
}

// coalesce merges adjacent unmatched groups of the same kind.
func coalesce(groups []Group) []Group {
	if len(groups) < 2 {
		return groups
	}
	out := groups[:1]
	for _, g := range groups[1:] {
		last := &out[len(out)-1]
		if g.Kind == last.Kind && g.Kind == KindUnmatchedDelete {
			last.Deleted = append(last.Deleted, g.Deleted...)
			continue
		}
		if g.Kind == last.Kind && g.Kind == KindUnmatchedInsert {
			last.Inserted = append(last.Inserted, g.Inserted...)
			continue
		}
		out = append(out, g)
	}
	return out
}
