// Package input acquires diff text from a file, standard input, or a git
// subprocess.
package input

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/tdryer/diff2html-go/internal/log"
)

// Source selects where diff text comes from.
type Source string

const (
	SourceStdin   Source = "stdin"
	SourceFile    Source = "file"
	SourceCommand Source = "command"
)

// defaultGitArgs are used when the caller provides no git diff arguments.
var defaultGitArgs = []string{"-M", "-C", "HEAD"}

// Get reads diff text from the given source. For SourceFile the first extra
// argument is the path; for SourceCommand the extra arguments are passed to
// `git diff` and ignore patterns become pathspec excludes.
func Get(ctx context.Context, source Source, extraArgs, ignore []string) (string, error) {
	switch source {
	case SourceFile:
		return readFile(extraArgs)
	case SourceStdin:
		return readStdin()
	case SourceCommand:
		return runGitDiff(ctx, extraArgs, ignore)
	default:
		return "", fmt.Errorf("unknown input source %q", source)
	}
}

func readFile(extraArgs []string) (string, error) {
	if len(extraArgs) == 0 {
		return "", fmt.Errorf("no file path provided, use: diff2html -i file -- <path>")
	}
	path := extraArgs[0]
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is user-provided input
	if err != nil {
		return "", fmt.Errorf("reading file %s: %w", path, err)
	}
	return string(data), nil
}

func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading from stdin: %w", err)
	}
	return string(data), nil
}

func runGitDiff(ctx context.Context, extraArgs, ignore []string) (string, error) {
	args := gitDiffArgs(extraArgs, ignore)
	log.Debug(log.CatInput, "running git", "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, "git", args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("git diff failed: %s", msg)
		}
		return "", fmt.Errorf("running git diff: %w", err)
	}
	return string(out), nil
}

// gitDiffArgs builds the argument list for the git subprocess. Color is
// always stripped, default arguments apply when none are given, and ignore
// patterns become `:(exclude)` pathspecs after a `--` separator.
func gitDiffArgs(extraArgs, ignore []string) []string {
	args := []string{"diff"}

	if !slices.Contains(extraArgs, "--no-color") {
		args = append(args, "--no-color")
	}

	if len(extraArgs) == 0 {
		args = append(args, defaultGitArgs...)
	} else {
		args = append(args, extraArgs...)
	}

	if len(ignore) > 0 {
		if !slices.Contains(extraArgs, "--") {
			args = append(args, "--")
		}
		for _, path := range ignore {
			args = append(args, ":(exclude)"+path)
		}
	}

	return args
}
