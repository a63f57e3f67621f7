// Package report renders persisted state for the command line.
package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const columnGap = "  "

// FormatTable aligns rows under headers. Cells are padded by display width so
// wide runes line up; trailing padding is trimmed.
func FormatTable(headers []string, rows [][]string) []string {
	all := make([][]string, 0, len(rows)+1)
	if len(headers) > 0 {
		all = append(all, headers)
	}
	all = append(all, rows...)

	var widths []int
	for _, row := range all {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	if len(widths) == 0 {
		return nil
	}

	lines := make([]string, 0, len(all))
	var b strings.Builder
	for _, row := range all {
		b.Reset()
		for i, width := range widths {
			if i > 0 {
				b.WriteString(columnGap)
			}
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(runewidth.FillRight(cell, width))
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}
