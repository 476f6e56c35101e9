// Package nodelink renders the bond graph of a solution with Graphviz.
//
// # Overview
//
// Atoms become circular nodes pinned at their grid positions; bonds become
// undirected edges drawn once per bond order. The neato engine honours the
// pinned positions, so the picture matches the grid layout.
//
//	dot := nodelink.ToDOT(sol, layout.Compute(sol), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Set [Options.Unpinned] to let Graphviz place the atoms itself.
package nodelink
