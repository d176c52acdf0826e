// Package ui provides terminal output and confirmation prompts for the CLI.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Color definitions for consistent UI
var (
	// Gray color for secondary detail
	grayColor = color.New(color.FgWhite, color.Faint)

	// Red for errors
	errorColor = color.New(color.FgRed)

	// Yellow for warnings
	warnColor = color.New(color.FgYellow)

	// Diff line colors
	diffAddColor = color.New(color.FgGreen)
	diffDelColor = color.New(color.FgRed)
	diffHdrColor = color.New(color.FgCyan)
)

// Writer provides formatted output with consistent prefixes and optional colors.
// Diagnostics go to stderr so stdout stays clean for file content and diffs.
type Writer struct {
	quiet  bool
	stderr io.Writer
	stdout io.Writer
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{
		stderr: os.Stderr,
		stdout: os.Stdout,
	}
}

// SetQuiet enables or disables quiet mode (suppresses everything except
// errors and primary output).
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// Info prints an info message with [info] prefix in gray.
func (w *Writer) Info(msg string) {
	if w.quiet {
		return
	}
	grayColor.Fprintf(w.stderr, "[info] %s\n", msg)
}

// Warn prints a warning message with [warn] prefix in yellow.
func (w *Writer) Warn(msg string) {
	if w.quiet {
		return
	}
	warnColor.Fprintf(w.stderr, "[warn] %s\n", msg)
}

// Error prints an error message with [error] prefix in red.
// Not suppressed by quiet mode.
func (w *Writer) Error(msg string) {
	errorColor.Fprintf(w.stderr, "[error] %s\n", msg)
}

// Print writes primary output (tagged file listings, apply summaries) to stdout.
func (w *Writer) Print(msg string) {
	fmt.Fprintln(w.stdout, msg)
}

// Diff prints a unified diff with colored +/- lines.
func (w *Writer) Diff(diff string) {
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---"):
			diffHdrColor.Fprintln(w.stdout, line)
		case strings.HasPrefix(line, "@@"):
			diffHdrColor.Fprintln(w.stdout, line)
		case strings.HasPrefix(line, "+"):
			diffAddColor.Fprintln(w.stdout, line)
		case strings.HasPrefix(line, "-"):
			diffDelColor.Fprintln(w.stdout, line)
		default:
			fmt.Fprintln(w.stdout, line)
		}
	}
}
