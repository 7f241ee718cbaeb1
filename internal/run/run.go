package run

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// We funnel every git/gh/gt invocation through here so that failures carry
// the tool's own stderr and a missing binary is reported with install help.

// Result holds the captured output of a finished subprocess.
type Result struct {
	Stdout string
	Stderr string
}

// ToolNotFoundError reports a missing external binary.
type ToolNotFoundError struct {
	Tool string
	Hint string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("'%s' not found on PATH. %s", e.Tool, e.Hint)
}

// ExternalToolFailure reports a subprocess that exited non-zero. Stderr is
// the tool's captured error text, verbatim.
type ExternalToolFailure struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ExternalToolFailure) Error() string {
	return fmt.Sprintf("%s failed: %v\n%s", e.Command, e.Err, e.Stderr)
}

func (e *ExternalToolFailure) Unwrap() error { return e.Err }

var installHints = map[string]string{
	"git": "Install git from https://git-scm.com/downloads",
	"gh":  "Install the GitHub CLI: https://cli.github.com",
	"gt":  "Install Graphite: npm install -g @withgraphite/graphite-cli",
}

// Command runs name with args in dir (empty dir means the current directory)
// and captures stdout/stderr separately.
func Command(dir, name string, args ...string) (Result, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			hint := installHints[name]
			if hint == "" {
				hint = "Install it and retry."
			}
			return Result{}, &ToolNotFoundError{Tool: name, Hint: hint}
		}
		return Result{Stdout: stdout.String(), Stderr: stderr.String()}, &ExternalToolFailure{
			Command: name + " " + strings.Join(args, " "),
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return Result{Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

// Output runs the command and returns trimmed stdout, for one-line queries.
func Output(dir, name string, args ...string) (string, error) {
	res, err := Command(dir, name, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}
