package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// RenderFunc turns markdown into terminal output.
type RenderFunc func(markdown string) (string, error)

// NewRenderer returns a function that renders markdown using glamour, wrapped to the
// terminal width when stdout is a terminal.
func NewRenderer() RenderFunc {
	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		opts = append(opts, glamour.WithWordWrap(w-4))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return Plain
	}
	return r.Render
}

// Plain returns markdown unchanged. Used when output is not a terminal.
func Plain(markdown string) (string, error) {
	return markdown, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Auto picks glamour for terminals and plain markdown otherwise.
func Auto(out *os.File) RenderFunc {
	if IsTerminal(out) {
		return NewRenderer()
	}
	return Plain
}
