package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// renderGrid writes rows as a boxed grid:
//
//	+------+-------------+
//	|   id | file_name   |
//	+======+=============+
//	|    1 | notes.txt   |
//	+------+-------------+
//
// Columns flagged in right are right-aligned, header included.
func renderGrid(w io.Writer, headers []string, rows [][]string, right []bool) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	rule := func(fill string) string {
		var b strings.Builder
		b.WriteString("+")
		for _, width := range widths {
			b.WriteString(strings.Repeat(fill, width+2))
			b.WriteString("+")
		}
		return b.String()
	}

	line := func(cells []string) string {
		var b strings.Builder
		b.WriteString("|")
		for i, width := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", width-utf8.RuneCountInString(cell))
			if i < len(right) && right[i] {
				b.WriteString(" " + pad + cell + " |")
			} else {
				b.WriteString(" " + cell + pad + " |")
			}
		}
		return b.String()
	}

	fmt.Fprintln(w, rule("-"))
	fmt.Fprintln(w, line(headers))
	fmt.Fprintln(w, rule("="))
	for _, row := range rows {
		fmt.Fprintln(w, line(row))
		fmt.Fprintln(w, rule("-"))
	}
}
