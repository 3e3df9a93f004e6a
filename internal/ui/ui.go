package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color modes understood by New.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Printer writes styled output to an out and an err stream.
type Printer struct {
	out    io.Writer
	errOut io.Writer

	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	accent  lipgloss.Style
	muted   lipgloss.Style
}

// New returns a Printer. colorMode is one of ColorAuto, ColorAlways or
// ColorNever; auto enables color only when out is a terminal and NO_COLOR is
// unset.
func New(out, errOut io.Writer, colorMode string) *Printer {
	r := lipgloss.NewRenderer(out)
	switch {
	case colorMode == ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case colorMode == ColorNever, os.Getenv("NO_COLOR") != "", !IsTerminal(out):
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		out:     out,
		errOut:  errOut,
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")),
		accent:  r.NewStyle().Foreground(lipgloss.Color("6")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Out returns the standard output writer.
func (p *Printer) Out() io.Writer { return p.out }

// Err returns the error output writer.
func (p *Printer) Err() io.Writer { return p.errOut }

// Println writes an unstyled line to out.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Printf writes unstyled formatted text to out.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Success writes a green line to out.
func (p *Printer) Success(format string, a ...any) {
	fmt.Fprintln(p.out, p.success.Render(fmt.Sprintf(format, a...)))
}

// Warn writes a yellow line to out.
func (p *Printer) Warn(format string, a ...any) {
	fmt.Fprintln(p.out, p.warning.Render(fmt.Sprintf(format, a...)))
}

// Error writes a red line to err.
func (p *Printer) Error(format string, a ...any) {
	fmt.Fprintln(p.errOut, p.failure.Render(fmt.Sprintf(format, a...)))
}

// Accent styles text in cyan.
func (p *Printer) Accent(text string) string { return p.accent.Render(text) }

// Muted styles text in gray.
func (p *Printer) Muted(text string) string { return p.muted.Render(text) }

// Highlight styles text in green.
func (p *Printer) Highlight(text string) string { return p.success.Render(text) }

// Wrap word-wraps text at width columns. Non-positive widths return text as is.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// IsTerminal reports whether w is a file descriptor attached to a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of w, or fallback when it cannot be
// determined.
func Width(w io.Writer, fallback int) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
