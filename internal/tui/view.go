package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/verte-zerg/countdown/internal/model"
)

type hitBox struct {
	field model.Field
	x, y  int
	w, h  int
}

func (b hitBox) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// countdownLayout places the title and the four blocks on screen. Row 0 holds
// the badges and the last row holds the help footer.
type countdownLayout struct {
	scale  int
	blocks []string
	boxes  []hitBox
	top    int
	left   int
}

func (m *Model) layout() countdownLayout {
	state := m.ctrl.Snapshot()
	texts := make([]string, len(model.Fields))
	for i, f := range model.Fields {
		texts[i] = padValue(state.Remaining.Get(f))
	}

	scale := scaleForFontSize(state.FontSize)
	for scale > 0 && !m.fits(texts, scale) {
		scale--
	}

	blocks := make([]string, len(texts))
	for i, f := range model.Fields {
		blocks[i] = renderBlock(texts[i], f, scale, blockColor(i, len(texts)))
	}

	rowWidth := 0
	for i, b := range blocks {
		if i > 0 {
			rowWidth += blockGap
		}
		rowWidth += lipgloss.Width(b)
	}
	blockHeight := lipgloss.Height(blocks[0])
	contentHeight := blockHeight + 2

	lay := countdownLayout{
		scale:  scale,
		blocks: blocks,
		top:    1 + maxInt(0, (m.height-2-contentHeight)/2),
		left:   maxInt(0, (m.width-rowWidth)/2),
	}
	x := lay.left
	for i, b := range blocks {
		w := lipgloss.Width(b)
		lay.boxes = append(lay.boxes, hitBox{field: model.Fields[i], x: x, y: lay.top + 2, w: w, h: blockHeight})
		x += w + blockGap
	}
	return lay
}

// fits reports whether the blocks rendered at scale fit the terminal.
func (m *Model) fits(texts []string, scale int) bool {
	width := 0
	for i, t := range texts {
		if i > 0 {
			width += blockGap
		}
		width += maxInt(numberWidth(t, scale), len(model.Fields[i].Label())) + blockStyle.GetHorizontalFrameSize()
	}
	height := glyphRows*scale + 1 + blockStyle.GetVerticalFrameSize() + 2
	return width <= m.width && height <= m.height-2
}

func (m *Model) blockBoxes() []hitBox {
	if m.width == 0 || m.height == 0 {
		return nil
	}
	return m.layout().boxes
}

func renderBlock(text string, f model.Field, scale int, color string) string {
	style := digitStyle.Foreground(lipgloss.Color(color))
	rows := renderNumber(text, scale)
	for i, r := range rows {
		rows[i] = style.Render(r)
	}
	number := strings.Join(rows, "\n")
	return blockStyle.Render(lipgloss.JoinVertical(lipgloss.Center, number, labelStyle.Render(f.Label())))
}

// blockColor blends from blue to cyan across the blocks.
func blockColor(i, n int) string {
	from, err := colorful.Hex(colorBlue)
	if err != nil {
		return colorBlue
	}
	to, err := colorful.Hex(colorCyan)
	if err != nil || n < 2 {
		return colorBlue
	}
	return from.BlendLuv(to, float64(i)/float64(n-1)).Clamped().Hex()
}

func (m *Model) renderCountdown() string {
	lay := m.layout()
	lines := make([]string, 0, m.height)
	lines = append(lines, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, m.renderBadges()))
	for len(lines) < lay.top {
		lines = append(lines, "")
	}
	lines = append(lines, lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render(m.titleText())), "")
	row := lipgloss.JoinHorizontal(lipgloss.Top, gapped(lay.blocks)...)
	pad := strings.Repeat(" ", lay.left)
	for _, l := range strings.Split(row, "\n") {
		lines = append(lines, pad+l)
	}
	return m.withFooter(lines)
}

func (m *Model) renderCelebration() string {
	var lines []string
	if m.confetti != nil {
		lines = m.confetti.Lines()
	}
	for len(lines) < m.height {
		lines = append(lines, strings.Repeat(" ", m.width))
	}
	msg := strings.Split(celebrationStyle.Render(m.celebrationText()), "\n")
	start := maxInt(0, (m.height-len(msg))/2)
	for i, l := range msg {
		if start+i < len(lines) {
			lines[start+i] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, l)
		}
	}
	if badges := m.renderBadges(); badges != "" && len(lines) > 0 {
		lines[0] = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, badges)
	}
	return m.withFooter(lines[:maxInt(0, m.height-1)])
}

// withFooter pads lines to the screen height and puts the help footer on the
// last row.
func (m *Model) withFooter(lines []string) string {
	last := maxInt(0, m.height-1)
	if len(lines) > last {
		lines = lines[:last]
	}
	for len(lines) < last {
		lines = append(lines, "")
	}
	lines = append(lines, m.renderFooter())
	return strings.Join(lines, "\n")
}

func gapped(blocks []string) []string {
	out := make([]string, 0, len(blocks)*2)
	gap := strings.Repeat(" ", blockGap)
	for i, b := range blocks {
		if i > 0 {
			out = append(out, gap)
		}
		out = append(out, b)
	}
	return out
}
