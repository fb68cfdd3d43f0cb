package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) func() {
	prev := defaultLogger
	defaultLogger = &Logger{writer: buf, enabled: true, minLevel: LevelDebug}
	return func() { defaultLogger = prev }
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "INFO", LevelInfo.String())
	require.Equal(t, "WARN", LevelWarn.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
}

func TestLog_EntryFormat(t *testing.T) {
	var buf bytes.Buffer
	restore := newTestLogger(&buf)
	defer restore()

	Warn(CatParse, "failed to parse hunk header", "header", "@@ bogus @@")

	out := buf.String()
	require.Contains(t, out, "[WARN]")
	require.Contains(t, out, "[parse]")
	require.Contains(t, out, "failed to parse hunk header")
	require.Contains(t, out, "header=@@ bogus @@")
}

func TestLog_MinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	restore := newTestLogger(&buf)
	defer restore()
	defaultLogger.minLevel = LevelWarn

	Debug(CatRender, "hidden")
	Info(CatRender, "also hidden")
	Error(CatRender, "visible")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "visible")
}

func TestLog_DisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	restore := newTestLogger(&buf)
	defer restore()
	defaultLogger.enabled = false

	Error(CatInput, "dropped")
	require.Empty(t, buf.String())
}

func TestLog_OddFieldCount(t *testing.T) {
	var buf bytes.Buffer
	restore := newTestLogger(&buf)
	defer restore()

	Info(CatConfig, "loaded", "path")
	require.Contains(t, buf.String(), "path=<missing>")
}

func TestLog_NilLoggerIsNoOp(t *testing.T) {
	prev := defaultLogger
	defaultLogger = nil
	defer func() { defaultLogger = prev }()

	require.NotPanics(t, func() {
		Debug(CatMatch, "no logger yet")
		ErrorErr(CatMatch, "still fine", nil)
	})
}
