package tui

import (
	"strings"

	"github.com/verte-zerg/countdown/internal/model"
)

// 3x5 block font. Each '#' is one glyph pixel.
var digitFont = map[rune][5]string{
	'0': {"###", "# #", "# #", "# #", "###"},
	'1': {" # ", "## ", " # ", " # ", "###"},
	'2': {"###", "  #", "###", "#  ", "###"},
	'3': {"###", "  #", "###", "  #", "###"},
	'4': {"# #", "# #", "###", "  #", "  #"},
	'5': {"###", "#  ", "###", "  #", "###"},
	'6': {"###", "#  ", "###", "# #", "###"},
	'7': {"###", "  #", "  #", "  #", "  #"},
	'8': {"###", "# #", "###", "# #", "###"},
	'9': {"###", "# #", "###", "  #", "###"},
}

const (
	glyphRows  = 5
	glyphCols  = 3
	maxScale   = 4
	pixelRune  = "█"
	digitSpace = 1
)

// scaleForFontSize maps a font size in [20,200] to a glyph scale in [1,4].
// Scale 0 means plain text.
func scaleForFontSize(fontSize int) int {
	if fontSize < model.MinFontSize {
		fontSize = model.MinFontSize
	}
	scale := 1 + (fontSize-model.MinFontSize)/60
	if scale > maxScale {
		scale = maxScale
	}
	return scale
}

// renderNumber draws text with the block font at scale. Characters without
// a glyph are skipped. Scale 0 returns text unchanged.
func renderNumber(text string, scale int) []string {
	if scale <= 0 {
		return []string{text}
	}
	rows := make([]strings.Builder, glyphRows*scale)
	first := true
	for _, r := range text {
		glyph, ok := digitFont[r]
		if !ok {
			continue
		}
		for gy := 0; gy < glyphRows; gy++ {
			var line strings.Builder
			if !first {
				line.WriteString(strings.Repeat(" ", digitSpace*scale))
			}
			for _, px := range glyph[gy] {
				cell := " "
				if px == '#' {
					cell = pixelRune
				}
				// Terminal cells are about twice as tall as wide.
				line.WriteString(strings.Repeat(cell, 2*scale))
			}
			for sy := 0; sy < scale; sy++ {
				rows[gy*scale+sy].WriteString(line.String())
			}
		}
		first = false
	}
	out := make([]string, len(rows))
	for i := range rows {
		out[i] = rows[i].String()
	}
	return out
}

// numberWidth is the cell width of text rendered at scale.
func numberWidth(text string, scale int) int {
	if scale <= 0 {
		return len([]rune(text))
	}
	n := 0
	for _, r := range text {
		if _, ok := digitFont[r]; ok {
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return n*glyphCols*2*scale + (n-1)*digitSpace*scale
}
