package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/lewis/pkg/chem"
	"github.com/matzehuels/lewis/pkg/errors"
	"github.com/matzehuels/lewis/pkg/graph"
	"github.com/matzehuels/lewis/pkg/layout"
	"github.com/matzehuels/lewis/pkg/observability"
	"github.com/matzehuels/lewis/pkg/render/nodelink"
	"github.com/matzehuels/lewis/pkg/render/sink"
)

// Render generates output artifacts for one structure in the requested
// formats. Structures without stored positions are laid out first.
func Render(ctx context.Context, s graph.Structure, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	sol, l, err := graph.ToSolution(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid structure")
	}
	if len(l.Positions) == 0 {
		l = layout.Compute(sol)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, format, s, sol, l, opts)
		if err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, err
		}
		artifacts[format] = data
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, nil
}

func renderFormat(ctx context.Context, format string, s graph.Structure, sol chem.Solution, l layout.Layout, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(sol, l, sink.WithCanvas(opts.Size), sink.WithBackground("white")), nil
	case FormatPNG:
		return sink.RenderPNG(sol, l, sink.WithPNGCanvas(opts.Size))
	case FormatJSON:
		return graph.MarshalStructures([]graph.Structure{s})
	case FormatDOT:
		return []byte(nodelink.ToDOT(sol, l, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatText:
		return []byte(sink.RenderText(sol, l)), nil
	case FormatNeato:
		dot := nodelink.ToDOT(sol, l, nodelink.Options{Detailed: opts.Detailed})
		return nodelink.RenderSVG(ctx, dot)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
}
