package render

import (
	"strings"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// segmentType indicates whether a segment of a matched line is unchanged,
// added, or deleted.
type segmentType int

const (
	segmentUnchanged segmentType = iota
	segmentAdded
	segmentDeleted
)

// segment is a run of text within a matched line, tagged with its diff
// status.
type segment struct {
	Type segmentType
	Text string
}

// wordDiff holds sub-line highlight segments for one matched delete/insert
// pair.
type wordDiff struct {
	OldSegments []segment
	NewSegments []segment
}

// tokenize splits a line into words, punctuation, and whitespace tokens.
// "foo.bar()" becomes ["foo", ".", "bar", "(", ")"].
func tokenize(line string) []string {
	if line == "" {
		return nil
	}

	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range line {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			flush()
			tokens = append(tokens, string(r))
		} else {
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}

// computeWordDiff computes word-level segments for a matched pair of lines.
func computeWordDiff(oldLine, newLine string) wordDiff {
	if oldLine == "" && newLine == "" {
		return wordDiff{}
	}
	if oldLine == "" {
		return wordDiff{NewSegments: []segment{{Type: segmentAdded, Text: newLine}}}
	}
	if newLine == "" {
		return wordDiff{OldSegments: []segment{{Type: segmentDeleted, Text: oldLine}}}
	}

	// Diff at token granularity by joining tokens with a delimiter that
	// cannot appear in line content.
	oldText := strings.Join(tokenize(oldLine), "\x00")
	newText := strings.Join(tokenize(newLine), "\x00")

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var result wordDiff
	for _, d := range diffs {
		text := strings.ReplaceAll(d.Text, "\x00", "")
		if text == "" {
			continue
		}

		switch d.Type {
		case diffmatchpatch.DiffEqual:
			result.OldSegments = append(result.OldSegments, segment{Type: segmentUnchanged, Text: text})
			result.NewSegments = append(result.NewSegments, segment{Type: segmentUnchanged, Text: text})
		case diffmatchpatch.DiffDelete:
			result.OldSegments = append(result.OldSegments, segment{Type: segmentDeleted, Text: text})
		case diffmatchpatch.DiffInsert:
			result.NewSegments = append(result.NewSegments, segment{Type: segmentAdded, Text: text})
		}
	}

	return result
}
