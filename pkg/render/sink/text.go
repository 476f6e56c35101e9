package sink

import (
	"strings"

	"github.com/matzehuels/lewis/pkg/chem"
	"github.com/matzehuels/lewis/pkg/layout"
	"github.com/matzehuels/lewis/pkg/render"
)

const (
	cellWidth  = 4
	cellHeight = 2
)

var (
	horizontal = map[int]rune{1: '-', 2: '=', 3: '≡'}
	vertical   = map[int]rune{1: '|', 2: '‖', 3: '⦀'}
)

// Text is a [render.Sink] that draws on a character grid. Only bonds between
// grid neighbours are drawn; labels are truncated to three characters.
type Text struct {
	min    layout.Point
	grid   [][]rune
	orders map[[2]layout.Point]int
}

// NewText returns an empty text sink.
func NewText() *Text { return &Text{} }

func (t *Text) Begin(w render.Window) {
	t.min = w.Min()
	rows := (w.YRange+1)*cellHeight - 1
	cols := (w.XRange+1)*cellWidth - 1
	t.grid = make([][]rune, rows)
	for i := range t.grid {
		t.grid[i] = []rune(strings.Repeat(" ", cols))
	}
	t.orders = make(map[[2]layout.Point]int)
}

func (t *Text) cell(p layout.Point) (row, col int) {
	return (p.Y - t.min.Y) * cellHeight, (p.X - t.min.X) * cellWidth
}

func (t *Text) set(row, col int, r rune) {
	if row < 0 || row >= len(t.grid) || col < 0 || col >= len(t.grid[row]) {
		return
	}
	t.grid[row][col] = r
}

// Line counts strokes per bond; the last stroke of a bond draws it.
func (t *Text) Line(a, b layout.Point, _ float64) {
	key := [2]layout.Point{a, b}
	t.orders[key]++
	order := t.orders[key]

	ra, ca := t.cell(a)
	rb, cb := t.cell(b)
	switch {
	case a.Y == b.Y && abs(a.X-b.X) == 1:
		lo := ca
		if cb < lo {
			lo = cb
		}
		for c := lo + 1; c < lo+cellWidth; c++ {
			t.set(ra, c, horizontal[order])
		}
	case a.X == b.X && abs(a.Y-b.Y) == 1:
		lo := ra
		if rb < lo {
			lo = rb
		}
		t.set(lo+1, ca, vertical[order])
	}
}

func (t *Text) Circle(layout.Point, string) {}

func (t *Text) Label(text string, p layout.Point) {
	row, col := t.cell(p)
	for i, r := range []rune(text) {
		if i == cellWidth-1 {
			break
		}
		t.set(row, col+i, r)
	}
}

// String returns the grid with trailing blanks removed.
func (t *Text) String() string {
	var b strings.Builder
	for _, line := range t.grid {
		b.WriteString(strings.TrimRight(string(line), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderText draws sol laid out as l on a character grid.
func RenderText(sol chem.Solution, l layout.Layout) string {
	t := NewText()
	render.Draw(sol, l, render.DefaultCanvas, t)
	return t.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

var _ render.Sink = (*Text)(nil)
