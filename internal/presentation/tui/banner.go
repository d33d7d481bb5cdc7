package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"  _____     _            _   ____                  _   ", "#38bdf8"},
	{" |_   _|_ _| | ___ _ __ | |_/ ___|  ___ ___  _   _| |_ ", "#22d3ee"},
	{"   | |/ _` | |/ _ \\ '_ \\| __\\___ \\ / __/ _ \\| | | | __|", "#2dd4bf"},
	{"   | | (_| | |  __/ | | | |_ ___) | (_| (_) | |_| | |_ ", "#34d399"},
	{"   |_|\\__,_|_|\\___|_| |_|\\__|____/ \\___\\___/ \\__,_|\\__|", "#4ade80"},
}

// PrintBanner writes the TalentScout banner to w, colored when w supports it.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(out.Color(line.color)))
	}
	fmt.Fprintln(w, out.String("  AI Hiring Assistant "+version).Faint())
	fmt.Fprintln(w)
}
