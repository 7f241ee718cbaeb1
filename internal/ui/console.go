package ui

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/fatih/color"
)

var (
	successStyle = color.New(color.FgGreen).SprintfFunc()
	warnStyle    = color.New(color.FgYellow).SprintfFunc()
	errorStyle   = color.New(color.FgRed, color.Bold).SprintfFunc()
	commandStyle = color.New(color.FgCyan).SprintfFunc()
	dimStyle     = color.New(color.Faint).SprintfFunc()
)

// Console routes user-facing narration. In normal mode everything goes to
// stdout; in script mode narration moves to stderr so stdout carries only
// the activation-script path for the shell wrapper to source.
type Console struct {
	stdout io.Writer
	stderr io.Writer
	script bool
}

// NewConsole returns a Console writing to the process streams.
func NewConsole(scriptMode bool) *Console {
	return &Console{stdout: os.Stdout, stderr: os.Stderr, script: scriptMode}
}

// NewConsoleWriters is the test constructor.
func NewConsoleWriters(stdout, stderr io.Writer, scriptMode bool) *Console {
	return &Console{stdout: stdout, stderr: stderr, script: scriptMode}
}

// ScriptMode reports whether narration is routed to stderr.
func (c *Console) ScriptMode() bool { return c.script }

// narration returns the stream narration belongs on in the current mode.
func (c *Console) narration() io.Writer {
	if c.script {
		return c.stderr
	}
	return c.stdout
}

// Say prints a plain narration line.
func (c *Console) Say(format string, v ...interface{}) {
	fmt.Fprintf(c.narration(), format+"\n", v...)
}

// Success prints a green narration line.
func (c *Console) Success(format string, v ...interface{}) {
	fmt.Fprintln(c.narration(), successStyle(format, v...))
}

// Warn prints a yellow narration line.
func (c *Console) Warn(format string, v ...interface{}) {
	fmt.Fprintln(c.narration(), warnStyle("Warning: "+format, v...))
}

// Error prints a red line, always on stderr.
func (c *Console) Error(format string, v ...interface{}) {
	fmt.Fprintln(c.stderr, errorStyle(format, v...))
}

// Command narrates an external command about to run, rendered the way the
// operator would type it.
func (c *Console) Command(cmdline string) {
	fmt.Fprintln(c.narration(), commandStyle("$ %s", cmdline))
}

// DryRun narrates a suppressed action in dry-run mode.
func (c *Console) DryRun(description string) {
	fmt.Fprintln(c.narration(), dimStyle("(dry run) Would: %s", description))
}

// Result prints to stdout regardless of mode. Script mode uses this for the
// activation-script path, the single machine-parseable output line.
func (c *Console) Result(line string) {
	fmt.Fprintln(c.stdout, line)
}

var headingRe = regexp.MustCompile(`(?m)^(Usage|Aliases|Examples|Available Commands|Flags|Global Flags|Additional Commands):`)

// ColorHeadings colorizes the section headings of a cobra usage template.
func ColorHeadings(tmpl string) string {
	bold := color.New(color.Bold).SprintFunc()
	return headingRe.ReplaceAllStringFunc(tmpl, func(s string) string {
		return bold(s)
	})
}
