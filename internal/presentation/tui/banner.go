package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the intake banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  _       _        _        ", "#f59e0b"},
		{" (_)_ __ | |_ __ _| | _____ ", "#f97316"},
		{" | | '_ \\| __/ _` | |/ / _ \\", "#ef4444"},
		{" | | | | | || (_| |   <  __/", "#e11d48"},
		{" |_|_| |_|\\__\\__,_|_|\\_\\___|", "#be123c"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  "+version).Faint())
	fmt.Fprintln(w)
}
