package solver

import (
	"github.com/matzehuels/lewis/pkg/chem"
	"github.com/matzehuels/lewis/pkg/multiset"
)

// MaxTier is the highest R-group order tried.
const MaxTier = 3

// Candidate is a sub-group of a molecule that can be collapsed into a
// branch. Anchor indexes the group's origin within Group.
type Candidate struct {
	Group  chem.Molecule
	Anchor int
}

// SubMolecules returns every sub-multiset of m with more than one slot.
// Interchangeable atoms are not distinguished; each branch is distinct.
func SubMolecules(m chem.Molecule) []chem.Molecule {
	subs := multiset.SubsetsOfSize([]chem.Slot(m), chem.Key, 2)
	out := make([]chem.Molecule, len(subs))
	for i, s := range subs {
		out[i] = chem.Molecule(s)
	}
	return out
}

// Neutralizable reports whether sub, extended by an outside atom of need n,
// has an origin among its own slots. It returns that origin's index.
func Neutralizable(sub chem.Molecule, n int) (int, bool) {
	return sub.OriginWith(n)
}

// RGroups returns the sub-molecules of m that can be collapsed into a
// branch of need n, in enumeration order.
func RGroups(m chem.Molecule, n int) []Candidate {
	var out []Candidate
	for _, sub := range SubMolecules(m) {
		if i, ok := Neutralizable(sub, n); ok {
			out = append(out, Candidate{Group: sub, Anchor: i})
		}
	}
	return out
}

// largest returns the first candidate of maximal size.
func largest(cands []Candidate) Candidate {
	best := cands[0]
	for _, c := range cands[1:] {
		if len(c.Group) > len(best.Group) {
			best = c
		}
	}
	return best
}

// collapse replaces the candidate's slots in m by one branch of need n,
// appended at the end.
func collapse(m chem.Molecule, c Candidate, n int) chem.Molecule {
	anchor := c.Group[c.Anchor]
	b := &chem.Branch{
		Anchor:       anchor,
		Members:      c.Group.Remove(chem.Molecule{anchor}),
		Multiplicity: n,
	}
	return append(m.Remove(c.Group), b)
}
