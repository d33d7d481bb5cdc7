package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// DefaultWidth is the wrap width used when the terminal size is unknown.
const DefaultWidth = 100

// NewRenderer returns a function that renders markdown using glamour.
// A width of zero wraps at the terminal width, or DefaultWidth when there is none.
func NewRenderer(width int) func(string) (string, error) {
	if width <= 0 {
		width = TerminalWidth(os.Stdout)
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the column count of f, or DefaultWidth.
func TerminalWidth(f *os.File) int {
	if !IsTerminal(f) {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}
