package diff

import (
	"regexp"
	"strings"
)

// baseFilenamePrefixes are the path prefixes git and related tools prepend
// to file names in diff headers.
var baseFilenamePrefixes = []string{"a/", "b/", "i/", "w/", "c/", "o/"}

// timestampSuffixRegex matches the trailing timestamp `diff -u` appends to
// file header lines, e.g. "2016-10-25 11:37:14.000000000 +0200".
var timestampSuffixRegex = regexp.MustCompile(`\s+\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:\.\d+)? [+-]\d{4}.*$`)

// parseFilename extracts a file name from a diff header line. linePrefix is
// the header marker to strip ("---" or "+++", empty for names embedded in
// other lines). extraPrefix is an additional path prefix to recognize on top
// of the standard set.
func parseFilename(line, linePrefix, extraPrefix string) string {
	name := line
	if linePrefix != "" {
		if !strings.HasPrefix(name, linePrefix+" ") {
			return ""
		}
		name = name[len(linePrefix)+1:]
	}

	// Names may be wrapped in quotes when they contain special characters.
	name = strings.TrimPrefix(name, `"`)
	name = strings.TrimSuffix(name, `"`)

	prefixes := baseFilenamePrefixes
	if extraPrefix != "" {
		prefixes = append(append([]string{}, baseFilenamePrefixes...), extraPrefix)
	}
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			name = name[len(p):]
			break
		}
	}

	return timestampSuffixRegex.ReplaceAllString(name, "")
}

// srcFilename extracts the old file name from a "--- " header line.
func srcFilename(line, srcPrefix string) string {
	return parseFilename(line, "---", srcPrefix)
}

// dstFilename extracts the new file name from a "+++ " header line.
func dstFilename(line, dstPrefix string) string {
	return parseFilename(line, "+++", dstPrefix)
}

// fileExtension returns the extension of filename, or fallback when the name
// has none. Used to carry a language hint for downstream highlighting.
func fileExtension(filename, fallback string) string {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 {
		return fallback
	}
	return filename[idx+1:]
}
