package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/lewis/pkg/chem"
	"github.com/matzehuels/lewis/pkg/layout"
	"github.com/matzehuels/lewis/pkg/render"
)

// SVGOption configures SVG rendering.
type SVGOption func(*SVG)

// WithCanvas sets the canvas edge length in pixels.
func WithCanvas(px float64) SVGOption { return func(s *SVG) { s.canvas = px } }

// WithBackground fills the canvas with a colour before drawing.
func WithBackground(color string) SVGOption { return func(s *SVG) { s.background = color } }

// SVG is a [render.Sink] that writes an SVG document.
type SVG struct {
	canvas     float64
	background string
	w          render.Window
	body       bytes.Buffer
}

// NewSVG returns an empty SVG sink.
func NewSVG(opts ...SVGOption) *SVG {
	s := &SVG{canvas: render.DefaultCanvas}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SVG) Begin(w render.Window) {
	s.w = w
	s.body.Reset()
}

func (s *SVG) Line(a, b layout.Point, shift float64) {
	x1, y1, x2, y2 := s.w.Stroke(a, b, shift)
	fmt.Fprintf(&s.body, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="black" stroke-width="%.2f"/>`+"\n",
		x1, y1, x2, y2, s.w.LineWidth())
}

func (s *SVG) Circle(p layout.Point, fill string) {
	x, y := s.w.Project(p)
	fmt.Fprintf(&s.body, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="black" stroke-width="2"/>`+"\n",
		x, y, s.w.Radius(), fill)
}

func (s *SVG) Label(text string, p layout.Point) {
	x, y := s.w.Project(p)
	fmt.Fprintf(&s.body, `  <text x="%.2f" y="%.2f" font-family="Arial, sans-serif" font-weight="bold" font-size="%.0f" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		x, y, s.w.FontSize(), html.EscapeString(text))
}

// Bytes returns the complete document.
func (s *SVG) Bytes() []byte {
	w, h := s.w.Width(), s.w.Height()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	if s.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", s.background)
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderSVG draws sol laid out as l and returns the SVG document.
func RenderSVG(sol chem.Solution, l layout.Layout, opts ...SVGOption) []byte {
	s := NewSVG(opts...)
	render.Draw(sol, l, s.canvas, s)
	return s.Bytes()
}

var _ render.Sink = (*SVG)(nil)
