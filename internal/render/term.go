package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tdryer/diff2html-go/internal/diff"
	"github.com/tdryer/diff2html-go/internal/log"
	"github.com/tdryer/diff2html-go/internal/rematch"
)

// gutterWidth is the width reserved for one line-number column.
const gutterWidth = 4

// Options configures terminal rendering.
type Options struct {
	// Width is the total output width in cells. 0 disables truncation.
	Width int
	// SideBySide lays old and new versions out in parallel columns.
	SideBySide bool
	// Matching pairs similar delete/insert lines and highlights sub-line
	// changes on matched pairs.
	Matching bool
	// MatchConfig bounds the matching search.
	MatchConfig rematch.Config
	// Distance overrides the similarity metric. Defaults to
	// rematch.StringDistance.
	Distance rematch.DistanceFunc
}

// Term renders parsed diff files as colorized terminal text.
type Term struct {
	opts Options

	fileStyle    lipgloss.Style
	metaStyle    lipgloss.Style
	hunkStyle    lipgloss.Style
	contextStyle lipgloss.Style
	insertStyle  lipgloss.Style
	deleteStyle  lipgloss.Style
	insertEmph   lipgloss.Style
	deleteEmph   lipgloss.Style
	gutterStyle  lipgloss.Style
}

// NewTerm creates a terminal renderer.
func NewTerm(opts Options) *Term {
	if opts.Distance == nil {
		opts.Distance = rematch.StringDistance
	}
	if opts.MatchConfig == (rematch.Config{}) {
		opts.MatchConfig = rematch.DefaultConfig()
	}

	return &Term{
		opts:         opts,
		fileStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		metaStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		hunkStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		contextStyle: lipgloss.NewStyle(),
		insertStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		deleteStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		insertEmph:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Reverse(true),
		deleteEmph:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Reverse(true),
		gutterStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Render produces the full output for a list of parsed files.
func (t *Term) Render(files []*diff.DiffFile) string {
	var b strings.Builder
	for i, file := range files {
		if i > 0 {
			b.WriteString("\n")
		}
		t.renderFile(&b, file)
	}
	return b.String()
}

func (t *Term) renderFile(b *strings.Builder, file *diff.DiffFile) {
	b.WriteString(t.fileStyle.Render(fileLabel(file)))
	b.WriteString("\n")

	if note := fileNote(file); note != "" {
		b.WriteString(t.metaStyle.Render(note))
		b.WriteString("\n")
		if file.IsBinary {
			return
		}
	}

	for _, block := range file.Blocks {
		b.WriteString(t.hunkStyle.Render(block.Header))
		b.WriteString("\n")

		if t.opts.SideBySide {
			t.renderSideBySide(b, block)
		} else {
			t.renderUnified(b, block)
		}
	}
}

// fileLabel formats the file heading with its change counts.
func fileLabel(file *diff.DiffFile) string {
	name := file.NewName
	if file.IsDeleted || name == "/dev/null" {
		name = file.OldName
	}
	if file.IsRename || file.IsCopy {
		name = fmt.Sprintf("%s → %s", file.OldName, file.NewName)
	}
	return fmt.Sprintf("%s (+%d -%d)", name, file.AddedLines, file.DeletedLines)
}

// fileNote returns a one-line annotation for special file states.
func fileNote(file *diff.DiffFile) string {
	switch {
	case file.IsBinary:
		return "binary file"
	case file.IsTooBig:
		return "diff truncated"
	case file.IsNew:
		return "new file"
	case file.IsDeleted:
		return "deleted file"
	default:
		return ""
	}
}

// renderUnified prints a hunk as a single column. When matching is enabled,
// paired delete/insert lines are emitted adjacently with their changed
// segments emphasized.
func (t *Term) renderUnified(b *strings.Builder, block diff.DiffBlock) {
	rows := t.blockRows(block)
	for _, r := range rows {
		if r.Left != nil && r.Left.Type == diff.LineContext {
			t.writeLine(b, r.Left, nil)
			continue
		}
		var wd wordDiff
		if r.Matched {
			wd = computeWordDiff(r.Left.Content, r.Right.Content)
		}
		if r.Left != nil {
			t.writeLine(b, r.Left, wd.OldSegments)
		}
		if r.Right != nil {
			t.writeLine(b, r.Right, wd.NewSegments)
		}
	}
}

// renderSideBySide prints a hunk as two columns separated by a bar.
func (t *Term) renderSideBySide(b *strings.Builder, block diff.DiffBlock) {
	colWidth := 0
	if t.opts.Width > 0 {
		colWidth = (t.opts.Width - 3) / 2
	}

	rows := t.blockRows(block)
	for _, r := range rows {
		var wd wordDiff
		if r.Matched {
			wd = computeWordDiff(r.Left.Content, r.Right.Content)
		}

		left := t.cell(r.Left, wd.OldSegments, colWidth, true)
		right := t.cell(r.Right, wd.NewSegments, colWidth, false)
		b.WriteString(left)
		b.WriteString(" │ ")
		b.WriteString(right)
		b.WriteString("\n")
	}
}

// blockRows aligns a hunk, with matching enabled or reduced to positional
// rows depending on options.
func (t *Term) blockRows(block diff.DiffBlock) []row {
	cfg := t.opts.MatchConfig
	if !t.opts.Matching {
		// A zero comparison budget makes the matcher emit everything
		// unmatched, reducing alignment to pure run stacking.
		cfg.MaxComparisons = 0
	}
	rows := alignBlock(block, t.opts.Distance, cfg)
	if t.opts.Matching {
		matched := 0
		for _, r := range rows {
			if r.Matched {
				matched++
			}
		}
		log.Debug(log.CatRender, "aligned hunk", "rows", len(rows), "matched", matched)
	}
	return rows
}

// writeLine prints one full-width line with marker, gutter, and content.
func (t *Term) writeLine(b *strings.Builder, line *diff.DiffLine, segments []segment) {
	marker, style := t.lineStyle(line)
	text := marker + " " + t.gutter(line) + " " + t.content(line, segments, style)
	if t.opts.Width > 0 {
		text = ansi.Truncate(text, t.opts.Width, "…")
	}
	b.WriteString(text)
	b.WriteString("\n")
}

// cell renders one side-by-side column cell, padded or truncated to width.
func (t *Term) cell(line *diff.DiffLine, segments []segment, width int, isOld bool) string {
	if line == nil {
		if width > 0 {
			return strings.Repeat(" ", width)
		}
		return ""
	}

	marker, style := t.lineStyle(line)
	number := ""
	if isOld && line.OldNumber != nil {
		number = fmt.Sprintf("%*d", gutterWidth, *line.OldNumber)
	} else if !isOld && line.NewNumber != nil {
		number = fmt.Sprintf("%*d", gutterWidth, *line.NewNumber)
	} else {
		number = strings.Repeat(" ", gutterWidth)
	}

	text := marker + " " + t.gutterStyle.Render(number) + " " + t.content(line, segments, style)
	if width <= 0 {
		return text
	}
	if lipgloss.Width(text) > width {
		return ansi.Truncate(text, width, "…")
	}
	return text + strings.Repeat(" ", width-lipgloss.Width(text))
}

// lineStyle returns the marker character and base style for a line type.
func (t *Term) lineStyle(line *diff.DiffLine) (string, lipgloss.Style) {
	switch line.Type {
	case diff.LineInsert:
		return "+", t.insertStyle
	case diff.LineDelete:
		return "-", t.deleteStyle
	default:
		return " ", t.contextStyle
	}
}

// gutter formats the old/new line number columns.
func (t *Term) gutter(line *diff.DiffLine) string {
	oldCol := strings.Repeat(" ", gutterWidth)
	if line.OldNumber != nil {
		oldCol = fmt.Sprintf("%*d", gutterWidth, *line.OldNumber)
	}
	newCol := strings.Repeat(" ", gutterWidth)
	if line.NewNumber != nil {
		newCol = fmt.Sprintf("%*d", gutterWidth, *line.NewNumber)
	}
	return t.gutterStyle.Render(oldCol + " " + newCol)
}

// content renders line content, emphasizing changed segments on matched
// lines.
func (t *Term) content(line *diff.DiffLine, segments []segment, base lipgloss.Style) string {
	if len(segments) == 0 {
		return base.Render(line.Content)
	}

	emph := t.insertEmph
	if line.Type == diff.LineDelete {
		emph = t.deleteEmph
	}

	var b strings.Builder
	for _, s := range segments {
		if s.Type == segmentUnchanged {
			b.WriteString(base.Render(s.Text))
		} else {
			b.WriteString(emph.Render(s.Text))
		}
	}
	return b.String()
}
