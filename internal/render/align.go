// Package render turns the parsed diff model into output: stable JSON for
// tooling, or colorized terminal text in unified and side-by-side layouts.
package render

import (
	"github.com/tdryer/diff2html-go/internal/diff"
	"github.com/tdryer/diff2html-go/internal/rematch"
)

// row is one display row in a side-by-side layout. Left is the old side,
// Right the new side; either may be nil for an unpaired line. Matched marks
// rows produced by a similarity pair, which are eligible for sub-line
// highlighting.
type row struct {
	Left    *diff.DiffLine
	Right   *diff.DiffLine
	Matched bool
	Score   float64
}

// alignBlock converts a hunk's lines into side-by-side rows. Context lines
// occupy both columns. Each contiguous run of deletes followed by inserts is
// handed to the matcher, and its groups decide which rows pair up.
func alignBlock(block diff.DiffBlock, distance rematch.DistanceFunc, cfg rematch.Config) []row {
	var rows []row

	lines := block.Lines
	i := 0
	for i < len(lines) {
		switch lines[i].Type {
		case diff.LineContext:
			rows = append(rows, row{Left: &lines[i], Right: &lines[i]})
			i++
		case diff.LineDelete:
			deletes := collectRun(lines, i, diff.LineDelete)
			inserts := collectRun(lines, i+len(deletes), diff.LineInsert)
			rows = append(rows, alignRun(lines, deletes, inserts, distance, cfg)...)
			i += len(deletes) + len(inserts)
		case diff.LineInsert:
			rows = append(rows, row{Right: &lines[i]})
			i++
		default:
			i++
		}
	}

	return rows
}

// collectRun returns indices of consecutive lines of the given type starting
// at startIdx.
func collectRun(lines []diff.DiffLine, startIdx int, lineType diff.LineType) []int {
	var indices []int
	for i := startIdx; i < len(lines) && lines[i].Type == lineType; i++ {
		indices = append(indices, i)
	}
	return indices
}

// alignRun matches one delete run against the insert run that follows it and
// lays the result out as rows. Pairs share a row; unmatched runs stack on
// their own side.
func alignRun(lines []diff.DiffLine, deletes, inserts []int, distance rematch.DistanceFunc, cfg rematch.Config) []row {
	deleted := make([]string, len(deletes))
	for k, idx := range deletes {
		deleted[k] = lines[idx].Content
	}
	inserted := make([]string, len(inserts))
	for k, idx := range inserts {
		inserted[k] = lines[idx].Content
	}

	groups := rematch.MatchLines(deleted, inserted, distance, cfg)

	// Groups partition both runs in order, so two cursors recover the
	// original line indices.
	var rows []row
	di, ii := 0, 0
	for _, g := range groups {
		switch g.Kind {
		case rematch.KindPair:
			rows = append(rows, row{
				Left:    &lines[deletes[di]],
				Right:   &lines[inserts[ii]],
				Matched: true,
				Score:   g.Score,
			})
			di++
			ii++
		case rematch.KindUnmatchedDelete:
			for range g.Deleted {
				rows = append(rows, row{Left: &lines[deletes[di]]})
				di++
			}
		case rematch.KindUnmatchedInsert:
			for range g.Inserted {
				rows = append(rows, row{Right: &lines[inserts[ii]]})
				ii++
			}
		}
	}

	return rows
}
