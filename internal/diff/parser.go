package diff

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tdryer/diff2html-go/internal/log"
)

var (
	// Git metadata line patterns.
	oldModeRegex         = regexp.MustCompile(`^old mode (\d{6})`)
	newModeRegex         = regexp.MustCompile(`^new mode (\d{6})`)
	deletedFileModeRegex = regexp.MustCompile(`^deleted file mode (\d{6})`)
	newFileModeRegex     = regexp.MustCompile(`^new file mode (\d{6})`)
	copyFromRegex        = regexp.MustCompile(`^copy from "?(.+)"?`)
	copyToRegex          = regexp.MustCompile(`^copy to "?(.+)"?`)
	renameFromRegex      = regexp.MustCompile(`^rename from "?(.+)"?`)
	renameToRegex        = regexp.MustCompile(`^rename to "?(.+)"?`)
	similarityRegex      = regexp.MustCompile(`^similarity index (\d+)%`)
	dissimilarityRegex   = regexp.MustCompile(`^dissimilarity index (\d+)%`)
	indexRegex           = regexp.MustCompile(`^index ([\da-z]+)\.\.([\da-z]+)\s*(\d{6})?`)
	binaryFilesRegex     = regexp.MustCompile(`^Binary files (.*) and (.*) differ`)
	binaryDiffRegex      = regexp.MustCompile(`^GIT binary patch`)

	// Combined (merge) diff metadata patterns.
	combinedIndexRegex       = regexp.MustCompile(`^index ([\da-z]+),([\da-z]+)\.\.([\da-z]+)`)
	combinedModeRegex        = regexp.MustCompile(`^mode (\d{6}),(\d{6})\.\.(\d{6})`)
	combinedDeletedFileRegex = regexp.MustCompile(`^deleted file mode (\d{6}),(\d{6})`)

	// Hunk header patterns.
	hunkHeaderRegex         = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@.*`)
	combinedHunkHeaderRegex = regexp.MustCompile(`^@@@ -(\d+)(?:,\d+)? -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@@.*`)

	// File boundary patterns.
	gitDiffStartRegex    = regexp.MustCompile(`^diff --git "?([a-ciow]/.+)"? "?([a-ciow]/.+)"?`)
	unixDiffBinaryRegex  = regexp.MustCompile(`^Binary files "?([a-ciow]/.+)"? and "?([a-ciow]/.+)"? differ`)
)

const (
	oldFileNameHeader = "--- "
	newFileNameHeader = "+++ "
	hunkHeaderPrefix  = "@@"
	devNullName       = "/dev/null"
)

// Line marker sets. The combined format carries one marker column per merge
// parent; a line counts as inserted only when no parent deletes it, and as
// deleted only when no parent inserts it. Anything else is context.
var (
	unifiedAddedPrefixes    = []string{"+"}
	unifiedDeletedPrefixes  = []string{"-"}
	combinedAddedPrefixes   = []string{"+ ", " +", "++"}
	combinedDeletedPrefixes = []string{"- ", " -", "--"}
)

// parser accumulates files while scanning the diff line by line.
type parser struct {
	cfg ParserConfig

	files        []*DiffFile
	currentFile  *DiffFile
	currentBlock *DiffBlock

	oldLine  int
	oldLine2 *int
	newLine  int

	possibleOldName string
	possibleNewName string

	droppedFiles int
}

// Parse converts a complete unified diff into an ordered list of files.
//
// The parser never fails: unrecognized lines outside a hunk are treated as
// diff noise and skipped, and partial structure is preferred over aborting.
// A file that never resolves a new name is dropped from the result.
func Parse(input string, cfg ParserConfig) []*DiffFile {
	p := &parser{cfg: cfg}

	normalized := strings.ReplaceAll(input, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	lines := strings.Split(normalized, "\n")

	for i, line := range lines {
		// Empty lines and unmerged-path markers carry no structure.
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}

		var prevLine, nextLine, afterNextLine string
		if i > 0 {
			prevLine = lines[i-1]
		}
		if i+1 < len(lines) {
			nextLine = lines[i+1]
		}
		if i+2 < len(lines) {
			afterNextLine = lines[i+2]
		}

		if strings.HasPrefix(line, "diff --git") || strings.HasPrefix(line, "diff --combined") {
			p.startFile()
			if m := gitDiffStartRegex.FindStringSubmatch(line); m != nil {
				p.possibleOldName = parseFilename(m[1], "", cfg.DstPrefix)
				p.possibleNewName = parseFilename(m[2], "", cfg.SrcPrefix)
			}
			p.currentFile.IsGitDiff = true
			continue
		}

		// Plain `diff` reports binary files without any git framing.
		if strings.HasPrefix(line, "Binary files") && (p.currentFile == nil || !p.currentFile.IsGitDiff) {
			p.startFile()
			if m := unixDiffBinaryRegex.FindStringSubmatch(line); m != nil {
				p.possibleOldName = parseFilename(m[1], "", cfg.DstPrefix)
				p.possibleNewName = parseFilename(m[2], "", cfg.SrcPrefix)
			}
			p.currentFile.IsBinary = true
			continue
		}

		// A non-git diff starts a new file at a ---/+++/@@ triplet.
		if p.currentFile == nil ||
			(!p.currentFile.IsGitDiff &&
				strings.HasPrefix(line, oldFileNameHeader) &&
				strings.HasPrefix(nextLine, newFileNameHeader) &&
				strings.HasPrefix(afterNextLine, hunkHeaderPrefix)) {
			p.startFile()
		}

		// Once a file is too big the rest of its diff is skipped.
		if p.currentFile.IsTooBig {
			continue
		}

		if p.cfg.DiffMaxChanges > 0 &&
			p.currentFile.AddedLines+p.currentFile.DeletedLines > p.cfg.DiffMaxChanges {
			p.markTooBig()
			continue
		}

		// File name headers. A bare "--- " line only names a file when its
		// "+++ " companion is adjacent; otherwise it is hunk content.
		isOldHeader := strings.HasPrefix(line, oldFileNameHeader)
		isNewHeader := strings.HasPrefix(line, newFileNameHeader)
		if (isOldHeader && strings.HasPrefix(nextLine, newFileNameHeader)) ||
			(isNewHeader && strings.HasPrefix(prevLine, oldFileNameHeader)) {
			if p.currentFile.OldName == "" && isOldHeader {
				name := srcFilename(line, cfg.SrcPrefix)
				if name == devNullName {
					// An old path of /dev/null means the file is new; it has
					// no old name.
					p.currentFile.IsNew = true
				} else {
					p.currentFile.OldName = name
					p.currentFile.Language = fileExtension(name, p.currentFile.Language)
				}
				continue
			}
			if p.currentFile.NewName == "" && isNewHeader {
				name := dstFilename(line, cfg.DstPrefix)
				if name == devNullName {
					p.currentFile.IsDeleted = true
				}
				p.currentFile.NewName = name
				if name != devNullName {
					p.currentFile.Language = fileExtension(name, p.currentFile.Language)
				}
				continue
			}
		}

		isHunkHeader := strings.HasPrefix(line, hunkHeaderPrefix)
		shouldStartBlock := p.currentFile.IsGitDiff &&
			p.currentFile.OldName != "" && p.currentFile.NewName != "" &&
			p.currentBlock == nil
		if isHunkHeader || shouldStartBlock {
			p.startBlock(line)
			continue
		}

		if p.currentBlock != nil {
			if strings.HasPrefix(line, `\`) {
				// "\ No newline at end of file" annotates the previous line.
				if n := len(p.currentBlock.Lines); n > 0 {
					p.currentBlock.Lines[n-1].NoTrailingNewline = true
				}
				continue
			}
			if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, " ") {
				p.createLine(line)
				continue
			}
		}

		p.parseMetadata(line, lines, i)
	}

	p.saveBlock()
	p.saveFile()

	if p.droppedFiles > 0 {
		log.Debug(log.CatParse, "dropped files with unresolved new name", "count", p.droppedFiles)
	}

	return p.files
}

// startFile finalizes the current file and opens a fresh one.
func (p *parser) startFile() {
	p.saveBlock()
	p.saveFile()
	p.currentFile = &DiffFile{}
}

// saveFile appends the current file to the output, falling back to names
// captured from the "diff --git" line when the ---/+++ headers never named
// the file. Files with no resolved new name are silently dropped.
func (p *parser) saveFile() {
	if p.currentFile != nil {
		if p.currentFile.OldName == "" && !p.currentFile.IsNew {
			p.currentFile.OldName = p.possibleOldName
		}
		if p.currentFile.NewName == "" {
			p.currentFile.NewName = p.possibleNewName
		}
		if p.currentFile.NewName != "" {
			p.files = append(p.files, p.currentFile)
		} else {
			p.droppedFiles++
		}
		p.currentFile = nil
	}
	p.possibleOldName = ""
	p.possibleNewName = ""
}

// saveBlock pushes the current block onto the current file.
func (p *parser) saveBlock() {
	if p.currentBlock != nil && p.currentFile != nil {
		p.currentFile.Blocks = append(p.currentFile.Blocks, *p.currentBlock)
	}
	p.currentBlock = nil
}

// startBlock parses a hunk header and opens a new block. Headers that fail
// to parse start the block at line 0 rather than aborting.
func (p *parser) startBlock(line string) {
	p.saveBlock()

	if m := hunkHeaderRegex.FindStringSubmatch(line); m != nil {
		p.currentFile.IsCombined = false
		p.oldLine = atoiOr(m[1], 0)
		p.newLine = atoiOr(m[2], 0)
		p.oldLine2 = nil
	} else if m := combinedHunkHeaderRegex.FindStringSubmatch(line); m != nil {
		p.currentFile.IsCombined = true
		p.oldLine = atoiOr(m[1], 0)
		old2 := atoiOr(m[2], 0)
		p.oldLine2 = &old2
		p.newLine = atoiOr(m[3], 0)
	} else {
		if strings.HasPrefix(line, hunkHeaderPrefix) {
			log.Warn(log.CatParse, "failed to parse hunk header, starting at 0", "header", line)
		}
		p.oldLine = 0
		p.newLine = 0
		p.oldLine2 = nil
		p.currentFile.IsCombined = false
	}

	p.currentBlock = &DiffBlock{
		OldStartLine:  p.oldLine,
		OldStartLine2: p.oldLine2,
		NewStartLine:  p.newLine,
		Header:        line,
	}
}

// createLine classifies a hunk line by its marker prefix, assigns line
// numbers, and stores the content with the marker stripped.
func (p *parser) createLine(line string) {
	addedPrefixes, deletedPrefixes := unifiedAddedPrefixes, unifiedDeletedPrefixes
	markerWidth := 1
	if p.currentFile.IsCombined {
		addedPrefixes, deletedPrefixes = combinedAddedPrefixes, combinedDeletedPrefixes
		markerWidth = 2
	}

	content := ""
	if len(line) > markerWidth {
		content = line[markerWidth:]
	}
	if p.cfg.DiffMaxLineLength > 0 {
		content = truncateRunes(content, p.cfg.DiffMaxLineLength)
	}

	var dl DiffLine
	switch {
	case hasAnyPrefix(line, addedPrefixes):
		p.currentFile.AddedLines++
		dl = DiffLine{Type: LineInsert, Content: content, NewNumber: intPtr(p.newLine)}
		p.newLine++
	case hasAnyPrefix(line, deletedPrefixes):
		p.currentFile.DeletedLines++
		dl = DiffLine{Type: LineDelete, Content: content, OldNumber: intPtr(p.oldLine)}
		p.oldLine++
	default:
		dl = DiffLine{Type: LineContext, Content: content, OldNumber: intPtr(p.oldLine), NewNumber: intPtr(p.newLine)}
		p.oldLine++
		p.newLine++
	}

	p.currentBlock.Lines = append(p.currentBlock.Lines, dl)
}

// markTooBig flags the current file, keeps the blocks parsed so far, and
// appends a block carrying the explanatory message. The rest of the file's
// diff is skipped.
func (p *parser) markTooBig() {
	p.currentFile.IsTooBig = true
	p.saveBlock()
	p.currentFile.Blocks = append(p.currentFile.Blocks, DiffBlock{
		Header: p.cfg.tooBigMessage(),
	})
	log.Debug(log.CatParse, "file exceeds max changes, truncating",
		"file", p.currentFile.NewName,
		"changes", p.currentFile.AddedLines+p.currentFile.DeletedLines,
		"max", p.cfg.DiffMaxChanges)
}

// parseMetadata recognizes git metadata lines between file headers. Lines
// matching no pattern are diff noise and ignored.
func (p *parser) parseMetadata(line string, lines []string, idx int) {
	file := p.currentFile

	switch {
	case oldModeRegex.MatchString(line):
		m := oldModeRegex.FindStringSubmatch(line)
		file.OldMode = &FileMode{Values: []string{m[1]}}
	case newModeRegex.MatchString(line):
		m := newModeRegex.FindStringSubmatch(line)
		file.NewMode = m[1]
	case combinedDeletedFileRegex.MatchString(line):
		m := combinedDeletedFileRegex.FindStringSubmatch(line)
		file.DeletedFileMode = m[1]
		file.IsDeleted = true
	case deletedFileModeRegex.MatchString(line):
		m := deletedFileModeRegex.FindStringSubmatch(line)
		file.DeletedFileMode = m[1]
		file.IsDeleted = true
	case newFileModeRegex.MatchString(line):
		m := newFileModeRegex.FindStringSubmatch(line)
		file.NewFileMode = m[1]
		file.IsNew = true
	case copyFromRegex.MatchString(line):
		if !existsHunkHeader(lines, idx) {
			file.OldName = copyFromRegex.FindStringSubmatch(line)[1]
		}
		file.IsCopy = true
	case copyToRegex.MatchString(line):
		if !existsHunkHeader(lines, idx) {
			file.NewName = copyToRegex.FindStringSubmatch(line)[1]
		}
		file.IsCopy = true
	case renameFromRegex.MatchString(line):
		if !existsHunkHeader(lines, idx) {
			file.OldName = renameFromRegex.FindStringSubmatch(line)[1]
		}
		file.IsRename = true
	case renameToRegex.MatchString(line):
		if !existsHunkHeader(lines, idx) {
			file.NewName = renameToRegex.FindStringSubmatch(line)[1]
		}
		file.IsRename = true
	case binaryFilesRegex.MatchString(line):
		m := binaryFilesRegex.FindStringSubmatch(line)
		file.IsBinary = true
		file.OldName = parseFilename(m[1], "", p.cfg.SrcPrefix)
		file.NewName = parseFilename(m[2], "", p.cfg.DstPrefix)
		p.startBlock("Binary file")
	case binaryDiffRegex.MatchString(line):
		file.IsBinary = true
		p.startBlock(line)
	case similarityRegex.MatchString(line):
		m := similarityRegex.FindStringSubmatch(line)
		file.UnchangedPercentage = intPtr(atoiOr(m[1], 0))
	case dissimilarityRegex.MatchString(line):
		m := dissimilarityRegex.FindStringSubmatch(line)
		file.ChangedPercentage = intPtr(atoiOr(m[1], 0))
	case combinedIndexRegex.MatchString(line):
		m := combinedIndexRegex.FindStringSubmatch(line)
		file.ChecksumBefore = &Checksum{Values: []string{m[1], m[2]}}
		file.ChecksumAfter = m[3]
	case indexRegex.MatchString(line):
		m := indexRegex.FindStringSubmatch(line)
		file.ChecksumBefore = &Checksum{Values: []string{m[1]}}
		file.ChecksumAfter = m[2]
		file.Mode = m[3]
	case combinedModeRegex.MatchString(line):
		m := combinedModeRegex.FindStringSubmatch(line)
		file.OldMode = &FileMode{Values: []string{m[2], m[3]}}
		file.NewMode = m[1]
	}
}

// existsHunkHeader reports whether a ---/+++/@@ triplet appears before the
// next "diff" boundary. Copy and rename names only apply when the file body
// carries no hunks of its own.
func existsHunkHeader(lines []string, startIdx int) bool {
	for idx := startIdx; idx+3 <= len(lines); idx++ {
		if strings.HasPrefix(lines[idx], "diff") {
			return false
		}
		if strings.HasPrefix(lines[idx], oldFileNameHeader) &&
			strings.HasPrefix(lines[idx+1], newFileNameHeader) &&
			strings.HasPrefix(lines[idx+2], hunkHeaderPrefix) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// truncateRunes cuts s to at most n runes without splitting a character.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func atoiOr(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func intPtr(v int) *int {
	return &v
}
