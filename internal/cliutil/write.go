// Package cliutil provides output helpers for the apiformat CLI.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Printer writes diagnostic lines. Colors are used only on terminals and
// when NO_COLOR is unset.
type Printer struct {
	w         io.Writer
	verbosity int
	quiet     bool

	success func(string, ...any) string
	warn    func(string, ...any) string
	fail    func(string, ...any) string
	faint   func(string, ...any) string
	added   func(string, ...any) string
	removed func(string, ...any) string
	hunk    func(string, ...any) string
}

// NewPrinter creates a Printer on w. verbosity enables Infof at 1 or more;
// quiet suppresses everything except errors.
func NewPrinter(w io.Writer, verbosity int, quiet bool) *Printer {
	colorize := IsTerminal(w) && os.Getenv("NO_COLOR") == ""
	return &Printer{
		w:         w,
		verbosity: verbosity,
		quiet:     quiet,
		success:   sprintf(colorize, color.FgGreen),
		warn:      sprintf(colorize, color.FgYellow),
		fail:      sprintf(colorize, color.FgRed, color.Bold),
		faint:     sprintf(colorize, color.Faint),
		added:     sprintf(colorize, color.FgGreen),
		removed:   sprintf(colorize, color.FgRed),
		hunk:      sprintf(colorize, color.FgCyan),
	}
}

func sprintf(colorize bool, attrs ...color.Attribute) func(string, ...any) string {
	c := color.New(attrs...)
	if colorize {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintfFunc()
}

// Verbosity returns the configured verbosity.
func (p *Printer) Verbosity() int {
	return p.verbosity
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Infof writes a line when verbose output is enabled.
func (p *Printer) Infof(format string, args ...any) {
	if p.quiet || p.verbosity < 1 {
		return
	}
	Writef(p.w, "%s\n", p.faint(format, args...))
}

// Successf writes a line prefixed with a check mark.
func (p *Printer) Successf(format string, args ...any) {
	if p.quiet {
		return
	}
	Writef(p.w, "%s\n", p.success("✓ "+format, args...))
}

// Warnf writes a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	if p.quiet {
		return
	}
	Writef(p.w, "%s\n", p.warn("Warning: "+format, args...))
}

// Errorf writes an error line. It is never suppressed.
func (p *Printer) Errorf(format string, args ...any) {
	Writef(p.w, "%s\n", p.fail("Error: "+format, args...))
}

// Diff writes a unified diff, coloring added, removed and hunk lines.
func (p *Printer) Diff(w io.Writer, diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			text = p.faint("%s", text)
		case strings.HasPrefix(text, "@@"):
			text = p.hunk("%s", text)
		case strings.HasPrefix(text, "+"):
			text = p.added("%s", text)
		case strings.HasPrefix(text, "-"):
			text = p.removed("%s", text)
		}
		Writef(w, "%s\n", text)
	}
}
