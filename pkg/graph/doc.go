// Package graph provides the serialization format for solved molecules.
//
// This package defines the canonical wire format for lewis structures, used
// for JSON files, API responses, the solve cache and the MongoDB store.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Structure]: Serialization type (this package)
//   - pkg/chem.Solution: Bond structure found by the solver
//   - pkg/layout.Layout: Grid positions computed for a solution
//
// Use [FromSolution]/[ToSolution] to convert between them.
//
// # Format
//
// Atoms are referenced by unique names. Repeated elements are numbered in
// input order, unique elements keep the bare symbol:
//
//	{
//	  "formula": "H2O",
//	  "index": 0,
//	  "method": "branch",
//	  "atoms": [
//	    {"name": "H1", "element": "H", "valence": 7},
//	    {"name": "H2", "element": "H", "valence": 7},
//	    {"name": "O", "element": "O", "valence": 6}
//	  ],
//	  "bonds": [
//	    {"from": "H1", "to": "O", "order": 1},
//	    {"from": "H2", "to": "O", "order": 1}
//	  ],
//	  "positions": {"H1": {"x": 0, "y": 0}, "O": {"x": 1, "y": 0}, ...}
//	}
//
// Common operations:
//
//	s, _ := graph.ReadFile("water.json")      // File → []Structure
//	graph.WriteFile(s, "output.json")         // []Structure → File
//	data, _ := graph.MarshalStructures(s)     // []Structure → []byte
//	sol, l, err := graph.ToSolution(s[0])     // Structure → Solution, Layout
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
