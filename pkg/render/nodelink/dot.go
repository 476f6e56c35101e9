package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/lewis/pkg/chem"
	"github.com/matzehuels/lewis/pkg/layout"
	"github.com/matzehuels/lewis/pkg/render"
)

// Options configures node-link rendering.
type Options struct {
	// Detailed adds the valence and the unique atom name to node labels.
	Detailed bool
	// Unpinned lets Graphviz choose positions instead of using the layout.
	Unpinned bool
}

// ToDOT converts a laid-out solution to Graphviz DOT.
func ToDOT(sol chem.Solution, l layout.Layout, opts Options) string {
	names := chem.Names(sol.Atoms)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontname=\"Arial\", fontsize=14, width=0.5, fixedsize=true];\n")
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("\n")

	ids := make([]chem.ID, 0, len(sol.Atoms))
	for _, a := range sol.Atoms {
		ids = append(ids, a.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		a := sol.Atoms[id]
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(a, names[id], opts.Detailed)),
			fmt.Sprintf("fillcolor=%q", render.Fill(a.Valence)),
		}
		if p, ok := l.Positions[id]; ok && !opts.Unpinned {
			attrs = append(attrs, fmt.Sprintf("pos=\"%d,%d!\"", p.X, p.Y))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", names[id], strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, b := range sol.Bonds {
		if b.IsPlaceholder() {
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q [color=%q];\n", names[b.From], names[b.To], bondColor(b.Order))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(a chem.Atom, name string, detailed bool) string {
	if !detailed {
		return a.Label()
	}
	return fmt.Sprintf("%s\n%s (%d)", a.Label(), name, a.Valence)
}

// bondColor draws multiple bonds as parallel strokes.
func bondColor(order int) string {
	strokes := make([]string, 0, 2*order-1)
	for i := 0; i < order; i++ {
		if i > 0 {
			strokes = append(strokes, "invis")
		}
		strokes = append(strokes, "black")
	}
	return strings.Join(strokes, ":")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
