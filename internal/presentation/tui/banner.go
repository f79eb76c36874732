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
	{`            _                  _ `, "#818cf8"},
	{` __ __ __ (_) ___ __ _  _ _  __| |`, "#a78bfa"},
	{` \ V  V / | ||_ // _' || '_|/ _' |`, "#c084fc"},
	{`  \_/\_/  |_|/__|\__,_||_|  \__,_|`, "#e879f9"},
}

// PrintBanner writes the colored banner to w. Colors degrade to the
// terminal's profile, so non-terminals get plain text.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}
