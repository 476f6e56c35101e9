// Package render turns a laid-out solution into drawing commands.
//
// # Overview
//
// [Draw] walks a [chem.Solution] and its [layout.Layout] and issues three
// kinds of commands to a [Sink]:
//
//   - Line: one stroke per bond order, offset perpendicular to the bond
//   - Circle: one disc per atom, filled by valence
//   - Label: the element symbol with its formal charge
//
// Commands carry grid coordinates. A [Window] maps them to pixels: the
// molecule's bounding box plus a one-cell margin is scaled to the canvas.
//
// # Sinks
//
// [Recorder] keeps the commands for inspection and tests; [Noop] discards
// them. Image formats live in subpackages:
//
//   - [sink]: SVG, PNG (via fogleman/gg) and plain text grids
//   - [nodelink]: Graphviz DOT of the bond graph
//
// [sink]: github.com/matzehuels/lewis/pkg/render/sink
// [nodelink]: github.com/matzehuels/lewis/pkg/render/nodelink
package render
