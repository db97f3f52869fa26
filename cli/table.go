package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// renderTable writes a plain column-aligned table. Widths are measured
// with runewidth so double-width characters line up, and the last column
// is truncated when the terminal is narrower than the natural width.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}

	natural := len(widths) * 2
	for _, width := range widths {
		natural += width
	}
	if max := terminalWidth(); natural > max && len(widths) > 0 {
		last := len(widths) - 1
		overflow := natural - max
		if widths[last] > overflow+3 {
			widths[last] -= overflow
		}
	}

	writeRow := func(cells []string, style func(string) string) {
		var b strings.Builder
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			cell = runewidth.Truncate(cell, widths[i], "…")
			b.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		line := strings.TrimRight(b.String(), " ")
		if style != nil {
			line = style(line)
		}
		_, _ = fmt.Fprintln(w, line)
	}

	writeRow(headers, func(s string) string { return dimStyle.Render(s) })
	for _, row := range rows {
		writeRow(row, nil)
	}
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}
