package sink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/lewis/pkg/chem"
	"github.com/matzehuels/lewis/pkg/layout"
)

func water() (chem.Solution, layout.Layout) {
	sol := chem.Solution{
		Atoms: []chem.Atom{
			{ID: 0, Element: "O", Valence: 6},
			{ID: 1, Element: "H", Valence: 7},
			{ID: 2, Element: "H", Valence: 7},
		},
		Bonds: []chem.Bond{{From: 1, To: 0, Order: 1}, {From: 2, To: 0, Order: 1}},
	}
	return sol, layout.Compute(sol)
}

func TestRenderSVG(t *testing.T) {
	sol, l := water()
	svg := string(RenderSVG(sol, l, WithBackground("white")))

	if !strings.HasPrefix(svg, "<svg") {
		t.Errorf("SVG should start with <svg: %.40s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG should end with </svg>")
	}
	if got := strings.Count(svg, "<line"); got != 2 {
		t.Errorf("lines = %d, want 2", got)
	}
	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("circles = %d, want 3", got)
	}
	if !strings.Contains(svg, `fill="#f00"`) {
		t.Error("oxygen should be filled red")
	}
	if !strings.Contains(svg, "<rect") {
		t.Error("background rect missing")
	}
}

func TestRenderSVGCanvas(t *testing.T) {
	sol, l := water()
	svg := string(RenderSVG(sol, l, WithCanvas(300)))
	if !strings.Contains(svg, `width="300"`) {
		t.Errorf("SVG should be 300 wide: %.120s", svg)
	}
}

func TestRenderPNG(t *testing.T) {
	sol, l := water()
	png, err := RenderPNG(sol, l, WithScale(1), WithPNGCanvas(120))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderText(t *testing.T) {
	sol, l := water()
	got := RenderText(sol, l)
	want := "    H\n    |\nH---O\n"
	if got != want {
		t.Errorf("RenderText() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderTextDoubleBond(t *testing.T) {
	sol := chem.Solution{
		Atoms: []chem.Atom{
			{ID: 0, Element: "O", Valence: 6},
			{ID: 1, Element: "C", Valence: 4},
			{ID: 2, Element: "O", Valence: 6},
		},
		Bonds: []chem.Bond{{From: 0, To: 1, Order: 2}, {From: 2, To: 1, Order: 2}},
	}
	got := RenderText(sol, layout.Compute(sol))
	if !strings.Contains(got, "O===C") {
		t.Errorf("RenderText() =\n%s\nwant an O===C double bond", got)
	}
}
