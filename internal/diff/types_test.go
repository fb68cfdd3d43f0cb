package diff

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffFile_JSONFieldNames(t *testing.T) {
	f := DiffFile{
		OldName:      "old.txt",
		NewName:      "new.txt",
		AddedLines:   1,
		DeletedLines: 2,
		IsGitDiff:    true,
		Language:     "txt",
		Blocks: []DiffBlock{{
			OldStartLine: 1,
			NewStartLine: 1,
			Header:       "@@ -1 +1 @@",
			Lines: []DiffLine{
				{Type: LineDelete, Content: "gone", OldNumber: intPtr(1)},
			},
		}},
	}

	data, err := json.Marshal(f)
	require.NoError(t, err)

	out := string(data)
	for _, key := range []string{
		`"oldName"`, `"newName"`, `"addedLines"`, `"deletedLines"`,
		`"isCombined"`, `"isGitDiff"`, `"language"`, `"blocks"`,
		`"oldStartLine"`, `"newStartLine"`, `"header"`, `"lines"`,
		`"type"`, `"content"`, `"oldNumber"`,
	} {
		require.Contains(t, out, key)
	}
	require.Contains(t, out, `"type":"delete"`)
}

func TestDiffFile_JSONOmitsUnsetOptionals(t *testing.T) {
	data, err := json.Marshal(DiffFile{NewName: "f.txt"})
	require.NoError(t, err)

	out := string(data)
	for _, key := range []string{
		"isDeleted", "isNew", "isCopy", "isRename", "isBinary", "isTooBig",
		"oldMode", "newMode", "deletedFileMode", "newFileMode",
		"unchangedPercentage", "changedPercentage",
		"checksumBefore", "checksumAfter", "mode",
	} {
		require.NotContains(t, out, key)
	}
}

func TestDiffLine_JSONOmitsAbsentNumbers(t *testing.T) {
	data, err := json.Marshal(DiffLine{Type: LineInsert, Content: "x", NewNumber: intPtr(5)})
	require.NoError(t, err)
	require.NotContains(t, string(data), "oldNumber")
	require.Contains(t, string(data), `"newNumber":5`)
	require.NotContains(t, string(data), "noTrailingNewline")
}

func TestChecksum_JSONRoundTrip(t *testing.T) {
	single := Checksum{Values: []string{"1234567"}}
	data, err := json.Marshal(single)
	require.NoError(t, err)
	require.Equal(t, `"1234567"`, string(data))

	var back Checksum
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, single, back)

	multiple := Checksum{Values: []string{"abc123", "def456"}}
	data, err = json.Marshal(multiple)
	require.NoError(t, err)
	require.Equal(t, `["abc123","def456"]`, string(data))

	back = Checksum{}
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, multiple, back)

	require.Error(t, json.Unmarshal([]byte(`42`), &back))
}

func TestFileMode_JSONRoundTrip(t *testing.T) {
	single := FileMode{Values: []string{"100644"}}
	data, err := json.Marshal(single)
	require.NoError(t, err)
	require.Equal(t, `"100644"`, string(data))

	var back FileMode
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, single, back)

	multiple := FileMode{Values: []string{"100644", "100755"}}
	data, err = json.Marshal(multiple)
	require.NoError(t, err)
	require.Equal(t, `["100644","100755"]`, string(data))

	back = FileMode{}
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, multiple, back)

	require.Error(t, json.Unmarshal([]byte(`{}`), &back))
}

func TestParsedFile_JSONRoundTrip(t *testing.T) {
	input := `diff --git a/test.txt b/test.txt
index 1234567..abcdefg 100644
--- a/test.txt
+++ b/test.txt
@@ -1,3 +1,4 @@
 line1
-line2
+line2 modified
+new line
 line3
`

	files := Parse(input, ParserConfig{})
	require.Len(t, files, 1)

	data, err := json.Marshal(files[0])
	require.NoError(t, err)

	var back DiffFile
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, *files[0], back)
}
