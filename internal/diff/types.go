// Package diff parses unified diff text into a structured, renderer-agnostic
// model. It understands plain `diff -u` output, `git diff` output, and git's
// combined diff format for merge commits.
package diff

import (
	"encoding/json"
	"fmt"
)

// LineType classifies a single diff line.
type LineType string

const (
	LineContext LineType = "context" // line present in both versions
	LineInsert  LineType = "insert"  // line added in the new version
	LineDelete  LineType = "delete"  // line removed from the old version
)

// DiffLine is a single line inside a hunk. Content excludes the leading
// marker prefix (one character for unified diffs, one per merge parent for
// combined diffs). OldNumber is set for context and delete lines, NewNumber
// for context and insert lines.
type DiffLine struct {
	Type              LineType `json:"type"`
	Content           string   `json:"content"`
	OldNumber         *int     `json:"oldNumber,omitempty"`
	NewNumber         *int     `json:"newNumber,omitempty"`
	NoTrailingNewline bool     `json:"noTrailingNewline,omitempty"`
}

// DiffBlock is one hunk: a contiguous run of lines bounded by an @@ header.
// OldStartLine2 is only set for combined diffs, which carry one old start
// line per merge parent.
type DiffBlock struct {
	OldStartLine  int        `json:"oldStartLine"`
	OldStartLine2 *int       `json:"oldStartLine2,omitempty"`
	NewStartLine  int        `json:"newStartLine"`
	Header        string     `json:"header"`
	Lines         []DiffLine `json:"lines"`
}

// FileMode is a file mode that is a single value for regular diffs or one
// value per merge parent for combined diffs. It marshals as a bare string
// when single and as an array otherwise.
type FileMode struct {
	Values []string
}

// MarshalJSON implements json.Marshaler.
func (m FileMode) MarshalJSON() ([]byte, error) {
	if len(m.Values) == 1 {
		return json.Marshal(m.Values[0])
	}
	return json.Marshal(m.Values)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *FileMode) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		m.Values = []string{single}
		return nil
	}
	var multiple []string
	if err := json.Unmarshal(data, &multiple); err != nil {
		return fmt.Errorf("file mode must be a string or array of strings: %w", err)
	}
	m.Values = multiple
	return nil
}

// Checksum is a blob checksum with the same single-or-multiple shape as
// FileMode.
type Checksum struct {
	Values []string
}

// MarshalJSON implements json.Marshaler.
func (c Checksum) MarshalJSON() ([]byte, error) {
	if len(c.Values) == 1 {
		return json.Marshal(c.Values[0])
	}
	return json.Marshal(c.Values)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Checksum) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		c.Values = []string{single}
		return nil
	}
	var multiple []string
	if err := json.Unmarshal(data, &multiple); err != nil {
		return fmt.Errorf("checksum must be a string or array of strings: %w", err)
	}
	c.Values = multiple
	return nil
}

// DiffFile is one logical file in a diff. AddedLines and DeletedLines always
// equal the number of insert and delete lines across Blocks.
type DiffFile struct {
	OldName      string      `json:"oldName"`
	NewName      string      `json:"newName"`
	AddedLines   int         `json:"addedLines"`
	DeletedLines int         `json:"deletedLines"`
	IsCombined   bool        `json:"isCombined"`
	IsGitDiff    bool        `json:"isGitDiff"`
	Language     string      `json:"language"`
	Blocks       []DiffBlock `json:"blocks"`

	OldMode             *FileMode `json:"oldMode,omitempty"`
	NewMode             string    `json:"newMode,omitempty"`
	DeletedFileMode     string    `json:"deletedFileMode,omitempty"`
	NewFileMode         string    `json:"newFileMode,omitempty"`
	IsDeleted           bool      `json:"isDeleted,omitempty"`
	IsNew               bool      `json:"isNew,omitempty"`
	IsCopy              bool      `json:"isCopy,omitempty"`
	IsRename            bool      `json:"isRename,omitempty"`
	IsBinary            bool      `json:"isBinary,omitempty"`
	IsTooBig            bool      `json:"isTooBig,omitempty"`
	UnchangedPercentage *int      `json:"unchangedPercentage,omitempty"`
	ChangedPercentage   *int      `json:"changedPercentage,omitempty"`
	ChecksumBefore      *Checksum `json:"checksumBefore,omitempty"`
	ChecksumAfter       string    `json:"checksumAfter,omitempty"`
	Mode                string    `json:"mode,omitempty"`
}

// ParserConfig controls Parse behavior. The zero value is valid: no extra
// prefixes, no size limits.
type ParserConfig struct {
	// SrcPrefix is an extra prefix stripped from old file paths, on top of
	// the standard a/ b/ i/ w/ c/ o/ set.
	SrcPrefix string
	// DstPrefix is an extra prefix stripped from new file paths.
	DstPrefix string
	// DiffMaxChanges marks a file too big once its added+deleted line count
	// exceeds this. 0 means unlimited.
	DiffMaxChanges int
	// DiffMaxLineLength truncates stored line content to this many runes.
	// 0 means unlimited. Line numbering is unaffected.
	DiffMaxLineLength int
	// DiffTooBigMessage replaces the default explanatory text attached to
	// files that exceed DiffMaxChanges.
	DiffTooBigMessage string
}

// DefaultTooBigMessage is attached to too-big files when no custom message
// is configured.
const DefaultTooBigMessage = "Diff too big to be displayed"

// Validate reports invalid limits. Parse does not call this; callers that
// accept untrusted configuration should.
func (c ParserConfig) Validate() error {
	if c.DiffMaxChanges < 0 {
		return fmt.Errorf("diff max changes must not be negative, got %d", c.DiffMaxChanges)
	}
	if c.DiffMaxLineLength < 0 {
		return fmt.Errorf("diff max line length must not be negative, got %d", c.DiffMaxLineLength)
	}
	return nil
}

// tooBigMessage returns the configured or default too-big text.
func (c ParserConfig) tooBigMessage() string {
	if c.DiffTooBigMessage != "" {
		return c.DiffTooBigMessage
	}
	return DefaultTooBigMessage
}
