package sink

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/boxbake/pkg/layoutfile"
)

// TextOption configures text rendering.
type TextOption func(*textRenderer)

type textRenderer struct {
	cellW, cellH int
	labels       bool
}

// WithCellSize sets how many layout units one character cell covers.
// Values below 1 are treated as 1.
func WithCellSize(w, h int) TextOption {
	return func(r *textRenderer) { r.cellW, r.cellH = max(1, w), max(1, h) }
}

// WithoutLabels draws bare boxes.
func WithoutLabels() TextOption { return func(r *textRenderer) { r.labels = false } }

// grid holds one string per cell. A cell covered by the right half of a wide
// rune holds "".
type grid struct {
	w, h  int
	cells [][]string
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, cells: make([][]string, h)}
	for y := range g.cells {
		g.cells[y] = make([]string, w)
		for x := range g.cells[y] {
			g.cells[y][x] = " "
		}
	}
	return g
}

func (g *grid) set(x, y int, s string) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y][x] = s
}

// text writes s starting at (x, y), never past limit columns.
func (g *grid) text(x, y, limit int, s string) {
	s = runewidth.Truncate(s, limit, "…")
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		g.set(x, y, string(r))
		if w == 2 {
			g.set(x+1, y, "")
		}
		x += w
	}
}

func (g *grid) String() string {
	var sb strings.Builder
	for _, row := range g.cells {
		sb.WriteString(strings.TrimRight(strings.Join(row, ""), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderText draws res as box-drawing characters. Children overwrite their
// parents. Boxes too small for a border are shaded.
func RenderText(res *layoutfile.Result, opts ...TextOption) string {
	r := textRenderer{cellW: 1, cellH: 1, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	g := newGrid(ceilDiv(res.Width, r.cellW), ceilDiv(res.Height, r.cellH))
	for _, n := range res.DrawOrder() {
		r.draw(g, n)
	}
	return g.String()
}

func (r *textRenderer) draw(g *grid, n layoutfile.ResultNode) {
	x0, y0 := n.X/r.cellW, n.Y/r.cellH
	x1, y1 := ceilDiv(n.X+n.W, r.cellW)-1, ceilDiv(n.Y+n.H, r.cellH)-1
	if x1 < x0 || y1 < y0 {
		return
	}

	if x1-x0 < 1 || y1-y0 < 1 {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				g.set(x, y, "░")
			}
		}
		return
	}

	for x := x0 + 1; x < x1; x++ {
		g.set(x, y0, "─")
		g.set(x, y1, "─")
	}
	for y := y0 + 1; y < y1; y++ {
		g.set(x0, y, "│")
		g.set(x1, y, "│")
		for x := x0 + 1; x < x1; x++ {
			g.set(x, y, " ")
		}
	}
	g.set(x0, y0, "┌")
	g.set(x1, y0, "┐")
	g.set(x0, y1, "└")
	g.set(x1, y1, "┘")

	if r.labels && n.Name != "" && x1-x0 > 1 {
		if y1-y0 > 1 {
			g.text(x0+1, y0+1, x1-x0-1, n.Name)
		} else {
			g.text(x0+1, y0, x1-x0-1, n.Name)
		}
	}
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
