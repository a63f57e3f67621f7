// Package confetti simulates a recycling confetti shower on a terminal grid.
package confetti

import (
	"math/rand"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// FPS is the animation frame rate.
const FPS = 30

// Pixel dimensions of one terminal cell, used to convert the per-frame pixel
// parameters into cell units.
const (
	cellWidthPx  = 8.0
	cellHeightPx = 16.0
)

// Params describes the shower. Velocities and accelerations are in pixels
// per frame, as a browser confetti library would take them.
type Params struct {
	Pieces           int
	Gravity          float64
	Wind             float64
	InitialVelocityY float64
	InitialVelocityX float64
	Colors           []string
	Recycle          bool
}

// DefaultParams returns the celebration shower settings.
func DefaultParams() Params {
	return Params{
		Pieces:           200,
		Gravity:          0.15,
		Wind:             0.01,
		InitialVelocityY: 3,
		InitialVelocityX: 4, // react-confetti default
		Colors:           []string{"#0857b3", "#54d2e0", "#FFD700", "#FF69B4", "#00FF00", "#FFA500"},
		Recycle:          true,
	}
}

var glyphs = singleWidth([]rune{'▪', '▮', '•', '■', '▘', '▝', '*'})

func singleWidth(runes []rune) []rune {
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		if runewidth.RuneWidth(r) == 1 {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		out = append(out, '*')
	}
	return out
}

type piece struct {
	proj  *harmonica.Projectile
	style lipgloss.Style
	glyph string
}

// Field is a confetti simulation sized to a terminal.
type Field struct {
	params Params
	width  int
	height int
	rnd    *rand.Rand
	styles []lipgloss.Style
	pieces []*piece
}

// New creates a field of width x height cells.
func New(width, height int, params Params, seed int64) *Field {
	f := &Field{
		params: params,
		rnd:    rand.New(rand.NewSource(seed)),
	}
	for _, c := range params.Colors {
		f.styles = append(f.styles, lipgloss.NewStyle().Foreground(lipgloss.Color(c)))
	}
	if len(f.styles) == 0 {
		f.styles = append(f.styles, lipgloss.NewStyle())
	}
	f.Resize(width, height)
	f.pieces = make([]*piece, 0, params.Pieces)
	for i := 0; i < params.Pieces; i++ {
		// Spread the first wave above the field so it does not land at once.
		f.pieces = append(f.pieces, f.spawn(-f.rnd.Float64()*float64(maxInt(f.height, 1))))
	}
	return f
}

// Resize changes the field dimensions. Pieces outside the new bounds are
// recycled on the next step.
func (f *Field) Resize(width, height int) {
	f.width = maxInt(width, 0)
	f.height = maxInt(height, 0)
}

// Step advances every piece by one frame.
func (f *Field) Step() {
	for i, p := range f.pieces {
		if p == nil {
			continue
		}
		pos := p.proj.Update()
		if f.inFlight(pos) {
			continue
		}
		if f.params.Recycle {
			f.pieces[i] = f.spawn(-1)
		} else {
			f.pieces[i] = nil
		}
	}
}

// Active reports how many pieces are still simulated.
func (f *Field) Active() int {
	n := 0
	for _, p := range f.pieces {
		if p != nil {
			n++
		}
	}
	return n
}

// Lines renders the field as height lines of width cells.
func (f *Field) Lines() []string {
	if f.width == 0 || f.height == 0 {
		return nil
	}
	grid := make([][]string, f.height)
	for y := range grid {
		grid[y] = make([]string, f.width)
	}
	for _, p := range f.pieces {
		if p == nil {
			continue
		}
		pos := p.proj.Position()
		x, y := int(pos.X), int(pos.Y)
		if pos.X < 0 || pos.Y < 0 || x >= f.width || y >= f.height {
			continue
		}
		grid[y][x] = p.style.Render(p.glyph)
	}
	lines := make([]string, f.height)
	var b strings.Builder
	for y, row := range grid {
		b.Reset()
		for _, cell := range row {
			if cell == "" {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(cell)
		}
		lines[y] = b.String()
	}
	return lines
}

func (f *Field) inFlight(pos harmonica.Point) bool {
	return pos.Y < float64(f.height) && pos.X >= -1 && pos.X <= float64(f.width)+1
}

func (f *Field) spawn(y float64) *piece {
	dt := harmonica.FPS(FPS)
	// Per-frame pixel units become cells per second (velocity) and cells
	// per second squared (acceleration).
	perSecond := float64(FPS)
	vx := (f.rnd.Float64()*2 - 1) * f.params.InitialVelocityX / cellWidthPx * perSecond
	vy := f.rnd.Float64() * f.params.InitialVelocityY / cellHeightPx * perSecond
	ax := f.params.Wind / cellWidthPx * perSecond * perSecond
	ay := f.params.Gravity / cellHeightPx * perSecond * perSecond

	start := harmonica.Point{X: f.rnd.Float64() * float64(maxInt(f.width, 1)), Y: y}
	return &piece{
		proj:  harmonica.NewProjectile(dt, start, harmonica.Vector{X: vx, Y: vy}, harmonica.Vector{X: ax, Y: ay}),
		style: f.styles[f.rnd.Intn(len(f.styles))],
		glyph: string(glyphs[f.rnd.Intn(len(glyphs))]),
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
