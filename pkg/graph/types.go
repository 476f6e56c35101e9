package graph

import (
	"fmt"

	"github.com/matzehuels/lewis/pkg/chem"
	"github.com/matzehuels/lewis/pkg/layout"
)

// =============================================================================
// Structure - Solved Molecule Serialization
// =============================================================================

// Structure is the canonical serialization format for one solved molecule.
// Used for JSON files, API responses, the solve cache and MongoDB.
//
// Atoms are referenced by their unique name ("C1", "O", ...) so the format
// reads naturally and survives re-import: Structure → Solution → Structure
// produces identical results.
type Structure struct {
	Formula   string           `json:"formula" bson:"formula"`
	Index     int              `json:"index" bson:"index"` // position in enumeration order
	Method    string           `json:"method" bson:"method"`
	Charge    int              `json:"charge,omitempty" bson:"charge,omitempty"` // net formal charge
	Atoms     []Atom           `json:"atoms" bson:"atoms"`
	Bonds     []Bond           `json:"bonds" bson:"bonds"`
	Endpoints *Endpoints       `json:"endpoints,omitempty" bson:"endpoints,omitempty"`
	Positions map[string]Point `json:"positions,omitempty" bson:"positions,omitempty"`

	// Derived from the bond graph; ToSolution ignores them.
	Rings    int    `json:"rings,omitempty" bson:"rings,omitempty"`       // size of the cycle basis
	Skeleton string `json:"skeleton,omitempty" bson:"skeleton,omitempty"` // carbon degree sequence
}

// Atom is a serialized atom.
type Atom struct {
	Name    string `json:"name" bson:"name"`
	Element string `json:"element" bson:"element"`
	Valence int    `json:"valence" bson:"valence"`
	Charge  int    `json:"charge,omitempty" bson:"charge,omitempty"`
}

// Bond is a serialized bond between two named atoms. A bond from an atom to
// itself stands for a lone ion.
type Bond struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Order int    `json:"order" bson:"order"`
}

// Endpoints names the atoms joined to close a ring.
type Endpoints struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// Point is a grid position.
type Point struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// =============================================================================
// Solution ↔ Structure Conversion
// =============================================================================

// FromSolution converts a solution and its layout to the serialization
// format. An empty layout omits positions.
func FromSolution(formula string, index int, sol chem.Solution, l layout.Layout) Structure {
	names := chem.Names(sol.Atoms)

	out := Structure{
		Formula: formula,
		Index:   index,
		Method:  sol.Method.String(),
		Charge:  sol.Charge(),
		Atoms:   make([]Atom, len(sol.Atoms)),
		Bonds:   make([]Bond, len(sol.Bonds)),

		Rings:    len(sol.Rings()),
		Skeleton: sol.Skeleton("C"),
	}
	for i, a := range sol.Atoms {
		out.Atoms[i] = Atom{
			Name:    names[a.ID],
			Element: a.Element,
			Valence: a.Valence,
			Charge:  a.Charge,
		}
	}
	for i, b := range sol.Bonds {
		out.Bonds[i] = Bond{From: names[b.From], To: names[b.To], Order: b.Order}
	}
	if ep := sol.Endpoints; ep != nil {
		out.Endpoints = &Endpoints{Start: names[ep.Start], End: names[ep.End]}
	}
	if len(l.Positions) > 0 {
		out.Positions = make(map[string]Point, len(l.Positions))
		for id, p := range l.Positions {
			out.Positions[names[id]] = Point{X: p.X, Y: p.Y}
		}
	}
	return out
}

// ToSolution converts a Structure back to a solution and its layout.
// Atom IDs follow the order of s.Atoms. Returns an error for unknown
// names, a bad method, a bond structure that fails validation or two atoms
// sharing a position.
func ToSolution(s Structure) (chem.Solution, layout.Layout, error) {
	method, err := chem.ParseMethod(s.Method)
	if err != nil {
		return chem.Solution{}, layout.Layout{}, err
	}

	ids := make(map[string]chem.ID, len(s.Atoms))
	sol := chem.Solution{
		Method: method,
		Atoms:  make([]chem.Atom, len(s.Atoms)),
		Bonds:  make([]chem.Bond, len(s.Bonds)),
	}
	for i, a := range s.Atoms {
		if _, dup := ids[a.Name]; dup {
			return chem.Solution{}, layout.Layout{}, fmt.Errorf("duplicate atom %q", a.Name)
		}
		ids[a.Name] = chem.ID(i)
		sol.Atoms[i] = chem.Atom{ID: chem.ID(i), Element: a.Element, Valence: a.Valence, Charge: a.Charge}
	}

	lookup := func(name string) (chem.ID, error) {
		id, ok := ids[name]
		if !ok {
			return 0, fmt.Errorf("unknown atom %q", name)
		}
		return id, nil
	}

	for i, b := range s.Bonds {
		from, err := lookup(b.From)
		if err != nil {
			return chem.Solution{}, layout.Layout{}, fmt.Errorf("bond %d: %w", i, err)
		}
		to, err := lookup(b.To)
		if err != nil {
			return chem.Solution{}, layout.Layout{}, fmt.Errorf("bond %d: %w", i, err)
		}
		sol.Bonds[i] = chem.Bond{From: from, To: to, Order: b.Order}
	}

	if s.Endpoints != nil {
		start, err := lookup(s.Endpoints.Start)
		if err != nil {
			return chem.Solution{}, layout.Layout{}, fmt.Errorf("endpoints: %w", err)
		}
		end, err := lookup(s.Endpoints.End)
		if err != nil {
			return chem.Solution{}, layout.Layout{}, fmt.Errorf("endpoints: %w", err)
		}
		sol.Endpoints = &chem.Endpoints{Start: start, End: end}
	}

	if err := sol.Validate(); err != nil {
		return chem.Solution{}, layout.Layout{}, err
	}

	l := layout.Layout{Positions: make(map[chem.ID]layout.Point, len(s.Positions))}
	for name, p := range s.Positions {
		id, err := lookup(name)
		if err != nil {
			return chem.Solution{}, layout.Layout{}, fmt.Errorf("positions: %w", err)
		}
		if err := l.Place(id, layout.Point{X: p.X, Y: p.Y}); err != nil {
			return chem.Solution{}, layout.Layout{}, fmt.Errorf("positions: %s: %w", name, err)
		}
	}
	return sol, l, nil
}
