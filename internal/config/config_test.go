package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tdryer/diff2html-go/internal/rematch"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.Equal(t, FormatTerm, cfg.Format)
	require.True(t, cfg.Matching)

	want := rematch.DefaultConfig()
	require.Equal(t, want.Threshold, cfg.MatchThreshold)
	require.Equal(t, want.MaxComparisons, cfg.MatchMaxComparisons)
	require.Equal(t, want.MaxLineLength, cfg.MatchMaxLineLength)

	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown format", func(c *Config) { c.Format = "html" }},
		{"negative width", func(c *Config) { c.Width = -1 }},
		{"threshold above one", func(c *Config) { c.MatchThreshold = 1.5 }},
		{"negative comparisons", func(c *Config) { c.MatchMaxComparisons = -1 }},
		{"negative diff max changes", func(c *Config) { c.DiffMaxChanges = -1 }},
		{"negative diff line length", func(c *Config) { c.DiffMaxLineLength = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_ParserConfig(t *testing.T) {
	cfg := Defaults()
	cfg.SrcPrefix = "left/"
	cfg.DstPrefix = "right/"
	cfg.DiffMaxChanges = 500
	cfg.DiffMaxLineLength = 1000
	cfg.DiffTooBigMessage = "nope"

	pc := cfg.ParserConfig()
	require.Equal(t, "left/", pc.SrcPrefix)
	require.Equal(t, "right/", pc.DstPrefix)
	require.Equal(t, 500, pc.DiffMaxChanges)
	require.Equal(t, 1000, pc.DiffMaxLineLength)
	require.Equal(t, "nope", pc.DiffTooBigMessage)
}

func TestConfig_MatchConfig(t *testing.T) {
	cfg := Defaults()
	cfg.MatchThreshold = 0.5
	cfg.MatchMaxComparisons = 100
	cfg.MatchMaxLineLength = 80

	mc := cfg.MatchConfig()
	require.Equal(t, 0.5, mc.Threshold)
	require.Equal(t, 100, mc.MaxComparisons)
	require.Equal(t, 80, mc.MaxLineLength)
}
