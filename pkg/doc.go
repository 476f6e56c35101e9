// Package pkg provides the core libraries for lewis, which turns molecular
// formulas into Lewis structures.
//
// # Overview
//
// A formula such as "C4H10" is expanded into atoms, the solver finds bond
// sets in which every atom completes its octet, and each structure is laid
// out on an integer grid and drawn. The pkg directory is organized into
// four areas:
//
//  1. Domain logic: [chem], [multiset], [solver], [layout]
//  2. Input and serialization: [formula], [graph]
//  3. Rendering: [render], [render/sink], [render/nodelink]
//  4. Infrastructure: [pipeline], [cache], [store], [config], [observability], [errors]
//
// # Architecture
//
// The typical data flow:
//
//	"CH3CH2OH"
//	     ↓
//	[formula] normalize and expand to atoms
//	     ↓
//	[solver] enumerate bond sets (branch, ring, polyatomic ion)
//	     ↓
//	[layout] place atoms on the grid
//	     ↓
//	[render/sink] SVG, PNG, text; [render/nodelink] DOT
//
// [pipeline.Runner] runs the whole chain with caching and is shared by the
// CLI and the HTTP server.
//
// # Quick Start
//
//	atoms := formula.MustParse("CO2")
//	sol, err := solver.First(ctx, atoms, solver.Options{})
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(sol, layout.Compute(sol))
package pkg
