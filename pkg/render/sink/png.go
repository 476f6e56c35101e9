package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/lewis/pkg/chem"
	"github.com/matzehuels/lewis/pkg/layout"
	"github.com/matzehuels/lewis/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*PNG)

// WithScale sets the pixel density (default 2.0 for 2x resolution).
func WithScale(f float64) PNGOption { return func(p *PNG) { p.scale = f } }

// WithPNGCanvas sets the canvas edge length in logical pixels.
func WithPNGCanvas(px float64) PNGOption { return func(p *PNG) { p.canvas = px } }

// PNG is a [render.Sink] that rasterizes with fogleman/gg. Commands are
// queued until [PNG.Encode] because the image size depends on the window.
type PNG struct {
	canvas float64
	scale  float64
	w      render.Window
	ops    []func(dc *gg.Context)
}

// NewPNG returns an empty PNG sink.
func NewPNG(opts ...PNGOption) *PNG {
	p := &PNG{canvas: render.DefaultCanvas, scale: 2.0}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *PNG) Begin(w render.Window) {
	p.w = w
	p.ops = p.ops[:0]
}

func (p *PNG) Line(a, b layout.Point, shift float64) {
	x1, y1, x2, y2 := p.w.Stroke(a, b, shift)
	lw := p.w.LineWidth()
	p.ops = append(p.ops, func(dc *gg.Context) {
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(lw)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	})
}

func (p *PNG) Circle(pt layout.Point, fill string) {
	x, y := p.w.Project(pt)
	r := p.w.Radius()
	p.ops = append(p.ops, func(dc *gg.Context) {
		dc.DrawCircle(x, y, r)
		dc.SetHexColor(fill)
		dc.FillPreserve()
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(2)
		dc.Stroke()
	})
}

func (p *PNG) Label(text string, pt layout.Point) {
	x, y := p.w.Project(pt)
	p.ops = append(p.ops, func(dc *gg.Context) {
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(text, x, y, 0.5, 0.35)
	})
}

// Encode rasterizes the queued commands and returns PNG bytes.
func (p *PNG) Encode() ([]byte, error) {
	w := int(math.Ceil(p.w.Width() * p.scale))
	h := int(math.Ceil(p.w.Height() * p.scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(p.scale, p.scale)
	for _, op := range p.ops {
		op(dc)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderPNG draws sol laid out as l and returns a PNG image.
func RenderPNG(sol chem.Solution, l layout.Layout, opts ...PNGOption) ([]byte, error) {
	p := NewPNG(opts...)
	render.Draw(sol, l, p.canvas, p)
	return p.Encode()
}

var _ render.Sink = (*PNG)(nil)
