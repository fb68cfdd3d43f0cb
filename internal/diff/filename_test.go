package diff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		linePrefix  string
		extraPrefix string
		want        string
	}{
		{"plain", "--- a/src/main.go", "---", "", "src/main.go"},
		{"new side", "+++ b/src/main.go", "+++", "", "src/main.go"},
		{"no path prefix", "--- main.go", "---", "", "main.go"},
		{"dev null", "--- /dev/null", "---", "", "/dev/null"},
		{"index prefix", "--- i/staged.txt", "---", "", "staged.txt"},
		{"worktree prefix", "+++ w/dirty.txt", "+++", "", "dirty.txt"},
		{"quoted", `--- "a/with space.txt"`, "---", "", "with space.txt"},
		{"timestamp", "--- a/test.txt\t2024-01-01 00:00:00.000000000 +0000", "---", "", "test.txt"},
		{"timestamp no fraction", "--- a/test.txt 2016-10-25 11:37:14 +0200", "---", "", "test.txt"},
		{"extra prefix", "--- left/f.txt", "---", "left/", "f.txt"},
		{"embedded name", "a/image.png", "", "", "image.png"},
		{"wrong marker", "+++ b/f.txt", "---", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, parseFilename(tt.line, tt.linePrefix, tt.extraPrefix))
		})
	}
}

func TestFileExtension(t *testing.T) {
	require.Equal(t, "go", fileExtension("main.go", ""))
	require.Equal(t, "txt", fileExtension("dir.d/file.txt", ""))
	require.Equal(t, "gz", fileExtension("archive.tar.gz", ""))
	require.Equal(t, "fallback", fileExtension("Makefile", "fallback"))
	require.Equal(t, "", fileExtension("README", ""))
}
