// Package config provides configuration types and defaults for diff2html.
package config

import (
	"fmt"

	"github.com/tdryer/diff2html-go/internal/diff"
	"github.com/tdryer/diff2html-go/internal/rematch"
)

// Output formats.
const (
	FormatTerm = "term"
	FormatJSON = "json"
)

// Config holds all configuration options for diff2html.
type Config struct {
	Format     string `mapstructure:"format"`       // "term" (default) or "json"
	SideBySide bool   `mapstructure:"side_by_side"` // two-column layout for term output
	Width      int    `mapstructure:"width"`        // output width, 0 = no truncation

	Matching            bool    `mapstructure:"matching"`              // pair similar delete/insert lines
	MatchThreshold      float64 `mapstructure:"match_threshold"`       // max distance still considered a match
	MatchMaxComparisons int     `mapstructure:"match_max_comparisons"` // distance evaluation budget per hunk run
	MatchMaxLineLength  int     `mapstructure:"match_max_line_length"` // lines longer than this never match

	SrcPrefix         string `mapstructure:"src_prefix"`           // extra prefix stripped from old paths
	DstPrefix         string `mapstructure:"dst_prefix"`           // extra prefix stripped from new paths
	DiffMaxChanges    int    `mapstructure:"diff_max_changes"`     // mark files too big past this many changes
	DiffMaxLineLength int    `mapstructure:"diff_max_line_length"` // truncate stored lines to this many runes
	DiffTooBigMessage string `mapstructure:"diff_too_big_message"` // custom too-big explanation

	Ignore []string `mapstructure:"ignore"` // pathspecs excluded from git diff input
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	match := rematch.DefaultConfig()
	return Config{
		Format:              FormatTerm,
		Matching:            true,
		MatchThreshold:      match.Threshold,
		MatchMaxComparisons: match.MaxComparisons,
		MatchMaxLineLength:  match.MaxLineLength,
	}
}

// Validate rejects invalid option combinations up front.
func (c Config) Validate() error {
	if c.Format != FormatTerm && c.Format != FormatJSON {
		return fmt.Errorf("format must be %q or %q, got %q", FormatTerm, FormatJSON, c.Format)
	}
	if c.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", c.Width)
	}
	if err := c.ParserConfig().Validate(); err != nil {
		return fmt.Errorf("parser config: %w", err)
	}
	if err := c.MatchConfig().Validate(); err != nil {
		return fmt.Errorf("match config: %w", err)
	}
	return nil
}

// ParserConfig maps the user configuration onto the parser's options.
func (c Config) ParserConfig() diff.ParserConfig {
	return diff.ParserConfig{
		SrcPrefix:         c.SrcPrefix,
		DstPrefix:         c.DstPrefix,
		DiffMaxChanges:    c.DiffMaxChanges,
		DiffMaxLineLength: c.DiffMaxLineLength,
		DiffTooBigMessage: c.DiffTooBigMessage,
	}
}

// MatchConfig maps the user configuration onto the matcher's options.
func (c Config) MatchConfig() rematch.Config {
	return rematch.Config{
		MaxComparisons: c.MatchMaxComparisons,
		MaxLineLength:  c.MatchMaxLineLength,
		Threshold:      c.MatchThreshold,
	}
}
