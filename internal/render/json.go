package render

import (
	"encoding/json"
	"fmt"

	"github.com/tdryer/diff2html-go/internal/diff"
)

// JSON serializes parsed files in the stable wire form consumed by external
// tooling: camelCase fields, optional fields omitted.
func JSON(files []*diff.DiffFile) (string, error) {
	if files == nil {
		files = []*diff.DiffFile{}
	}
	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling diff files: %w", err)
	}
	return string(data), nil
}
