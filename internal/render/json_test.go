package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tdryer/diff2html-go/internal/diff"
)

func TestJSON_NilFiles(t *testing.T) {
	out, err := JSON(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", out)
}

func TestJSON_ParsedDiff(t *testing.T) {
	files := diff.Parse("--- a/f.txt\n+++ b/f.txt\n@@ -1 +1 @@\n-old line\n+new line\n", diff.ParserConfig{})
	require.Len(t, files, 1)

	out, err := JSON(files)
	require.NoError(t, err)

	require.Contains(t, out, `"oldName": "f.txt"`)
	require.Contains(t, out, `"newName": "f.txt"`)
	require.Contains(t, out, `"type": "delete"`)
	require.Contains(t, out, `"type": "insert"`)
	require.Contains(t, out, `"addedLines": 1`)

	// Output must round-trip through the wire model.
	var back []diff.DiffFile
	require.NoError(t, json.Unmarshal([]byte(out), &back))
	require.Len(t, back, 1)
	require.Equal(t, *files[0], back[0])
}
