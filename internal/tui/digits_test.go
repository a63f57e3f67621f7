package tui

import (
	"testing"
	"unicode/utf8"
)

func TestScaleForFontSize(t *testing.T) {
	cases := map[int]int{
		10:  1,
		20:  1,
		79:  1,
		80:  2,
		140: 3,
		200: 4,
	}
	for size, want := range cases {
		if got := scaleForFontSize(size); got != want {
			t.Fatalf("scaleForFontSize(%d) = %d, want %d", size, got, want)
		}
	}
}

func TestRenderNumberDimensions(t *testing.T) {
	for scale := 1; scale <= maxScale; scale++ {
		rows := renderNumber("12", scale)
		if len(rows) != glyphRows*scale {
			t.Fatalf("scale %d: expected %d rows, got %d", scale, glyphRows*scale, len(rows))
		}
		want := numberWidth("12", scale)
		for i, row := range rows {
			if got := utf8.RuneCountInString(row); got != want {
				t.Fatalf("scale %d row %d: width %d, want %d", scale, i, got, want)
			}
		}
	}
}

func TestRenderNumberPlainText(t *testing.T) {
	rows := renderNumber("07", 0)
	if len(rows) != 1 || rows[0] != "07" {
		t.Fatalf("expected plain text, got %q", rows)
	}
	if numberWidth("07", 0) != 2 {
		t.Fatalf("expected plain width 2")
	}
}

func TestRenderNumberGlyph(t *testing.T) {
	rows := renderNumber("1", 1)
	want := []string{
		"  ██  ",
		"████  ",
		"  ██  ",
		"  ██  ",
		"██████",
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d = %q, want %q", i, rows[i], want[i])
		}
	}
}
