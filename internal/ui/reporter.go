// Package ui prints user-facing progress and guidance.
package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Reporter writes human-readable messages. Colors and the spinner are only
// used when the destination is a terminal.
type Reporter struct {
	out   io.Writer
	tty   bool
	color bool
}

// NewReporter returns a Reporter on w. noColor forces plain output.
func NewReporter(w io.Writer, noColor bool) *Reporter {
	tty := false
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		tty = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return &Reporter{
		out:   w,
		tty:   tty,
		color: tty && !noColor && !color.NoColor,
	}
}

func (r *Reporter) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Println prints plain text.
func (r *Reporter) Println(a ...any) { fmt.Fprintln(r.out, a...) }

// Printf prints formatted plain text.
func (r *Reporter) Printf(format string, a ...any) { fmt.Fprintf(r.out, format, a...) }

// Raw prints s unchanged, adding a trailing newline when missing.
func (r *Reporter) Raw(s string) {
	if s == "" {
		return
	}
	fmt.Fprint(r.out, s)
	if s[len(s)-1] != '\n' {
		fmt.Fprintln(r.out)
	}
}

// Header prints a banner line followed by a blank line.
func (r *Reporter) Header(title string) {
	r.style(color.FgCyan, color.Bold).Fprintf(r.out, "=== %s ===\n\n", title)
}

// Step announces an action about to happen.
func (r *Reporter) Step(format string, a ...any) {
	r.style(color.FgCyan).Fprintf(r.out, format+"\n", a...)
}

// Success prints a confirmation.
func (r *Reporter) Success(format string, a ...any) {
	r.style(color.FgGreen).Fprintf(r.out, format+"\n", a...)
}

// Warn prints a non-fatal problem.
func (r *Reporter) Warn(format string, a ...any) {
	r.style(color.FgYellow).Fprintf(r.out, format+"\n", a...)
}

// Error prints a failure.
func (r *Reporter) Error(format string, a ...any) {
	r.style(color.FgRed, color.Bold).Fprintf(r.out, format+"\n", a...)
}

// Bullet prints an indented "• cmd → description" line with cmd padded to width.
func (r *Reporter) Bullet(width int, cmd, description string) {
	bullet := r.style(color.FgGreen).Sprint("•")
	fmt.Fprintf(r.out, "  %s %-*s → %s\n", bullet, width, cmd, description)
}

// Spin shows a spinner with msg until the returned function is called.
// It is a no-op when the output is not a terminal.
func (r *Reporter) Spin(msg string) (stop func()) {
	if !r.tty {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(r.out))
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}
