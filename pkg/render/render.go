package render

import (
	"sort"

	"github.com/matzehuels/lewis/pkg/chem"
	"github.com/matzehuels/lewis/pkg/layout"
)

// DefaultCanvas is the canvas edge length in pixels.
const DefaultCanvas = 600

// Window maps grid coordinates to pixels.
type Window struct {
	Size    float64 // pixels per grid cell
	XOffset int     // added to x before scaling
	YOffset int     // added to y before scaling
	XRange  int     // max x - min x
	YRange  int     // max y - min y
}

// NewWindow fits l into a square canvas of the given edge length with a
// margin of one cell on every side.
func NewWindow(l layout.Layout, canvas float64) Window {
	min, max := l.Bounds()
	w := Window{
		XOffset: -(min.X - 1),
		YOffset: -(min.Y - 1),
		XRange:  max.X - min.X,
		YRange:  max.Y - min.Y,
	}
	w.Size = canvas / float64(maxInt(w.XRange, w.YRange)+2)
	return w
}

// Project returns the pixel position of p.
func (w Window) Project(p layout.Point) (x, y float64) {
	return w.Size * float64(p.X+w.XOffset), w.Size * float64(p.Y+w.YOffset)
}

// Width returns the drawing width in pixels.
func (w Window) Width() float64 { return w.Size * float64(w.XRange+2) }

// Height returns the drawing height in pixels.
func (w Window) Height() float64 { return w.Size * float64(w.YRange+2) }

// Min returns the smallest grid coordinate covered by the window.
func (w Window) Min() layout.Point { return layout.Point{X: 1 - w.XOffset, Y: 1 - w.YOffset} }

// Stroke returns the pixel end points of a bond line shifted by shift
// line widths, across the bond for axis-aligned bonds.
func (w Window) Stroke(a, b layout.Point, shift float64) (x1, y1, x2, y2 float64) {
	x1, y1 = w.Project(a)
	x2, y2 = w.Project(b)
	d := shift * w.LineWidth()
	if a.X == b.X {
		return x1 + d, y1, x2 + d, y2
	}
	return x1, y1 + d, x2, y2 + d
}

// LineWidth returns the bond stroke width.
func (w Window) LineWidth() float64 { return w.Size / 15 }

// Radius returns the atom disc radius.
func (w Window) Radius() float64 { return w.Size / 3 }

// FontSize returns the label font size.
func (w Window) FontSize() float64 { return float64(int(w.Size / 4)) }

// Sink receives drawing commands in grid coordinates.
type Sink interface {
	Begin(w Window)
	Line(a, b layout.Point, shift float64)
	Circle(p layout.Point, fill string)
	Label(text string, p layout.Point)
}

// Shifts returns the stroke offsets used for a bond of the given order.
func Shifts(order int) []float64 {
	switch order {
	case 2:
		return []float64{1, -1}
	case 3:
		return []float64{1.5, 0, -1.5}
	}
	return []float64{0}
}

// Fill returns the disc colour of an atom with the given valence.
func Fill(valence int) string {
	switch valence {
	case 7:
		return "#0f0"
	case 6:
		return "#f00"
	case 5:
		return "#00f"
	case 4:
		return "#666"
	}
	return "#ccc"
}

// Draw issues the commands for sol laid out as l on a canvas of the given
// edge length. Bonds are drawn first so that atom discs cover their ends.
func Draw(sol chem.Solution, l layout.Layout, canvas float64, s Sink) {
	if canvas <= 0 {
		canvas = DefaultCanvas
	}
	s.Begin(NewWindow(l, canvas))

	for _, b := range sol.Bonds {
		if b.IsPlaceholder() {
			continue
		}
		from, ok1 := l.Positions[b.From]
		to, ok2 := l.Positions[b.To]
		if !ok1 || !ok2 {
			continue
		}
		for _, shift := range Shifts(b.Order) {
			s.Line(from, to, shift)
		}
	}

	ids := make([]chem.ID, 0, len(l.Positions))
	for id := range l.Positions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if int(id) >= len(sol.Atoms) {
			continue
		}
		a := sol.Atoms[id]
		p := l.Positions[id]
		s.Circle(p, Fill(a.Valence))
		s.Label(a.Label(), p)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
