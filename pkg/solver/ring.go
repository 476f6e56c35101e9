package solver

import "github.com/matzehuels/lewis/pkg/chem"

// boundaryValence gives ring boundary atoms a need of one.
const boundaryValence = 7

// ring runs the tree search with two boundary atoms appended to m and
// splices each tree into a ring. Trees that would close into a self-bond or
// repeat an existing bond are skipped and the search continues.
func (r *run) ring(m chem.Molecule, emit func(bonds []chem.Bond, ep chem.Endpoints) (bool, error)) error {
	r.resetSynthetic()
	start := r.synthetic(chem.RoleBoundary, boundaryValence)
	end := r.synthetic(chem.RoleBoundary, boundaryValence)
	ring := append(append(chem.Molecule{}, m...), start, end)

	return r.branch(ring, func(bonds []chem.Bond) (bool, error) {
		closed, ep, ok := closeRing(bonds, start.ID, end.ID)
		if !ok {
			return false, nil
		}
		return emit(closed, ep)
	})
}

// closeRing replaces the bonds to the start and end boundary atoms with one
// bond between their neighbours, keeping the start bond's order.
func closeRing(bonds []chem.Bond, start, end chem.ID) ([]chem.Bond, chem.Endpoints, bool) {
	si, ei := -1, -1
	for i, b := range bonds {
		switch {
		case b.Touches(start) && b.Touches(end):
			return nil, chem.Endpoints{}, false
		case b.Touches(start):
			si = i
		case b.Touches(end):
			ei = i
		}
	}
	if si < 0 || ei < 0 {
		return nil, chem.Endpoints{}, false
	}

	ep := chem.Endpoints{
		Start: bonds[si].Other(start),
		End:   bonds[ei].Other(end),
	}
	if ep.Start == ep.End {
		return nil, chem.Endpoints{}, false
	}

	out := make([]chem.Bond, 0, len(bonds)-1)
	seen := make(map[[2]chem.ID]bool, len(bonds))
	for i, b := range bonds {
		switch i {
		case ei:
			continue
		case si:
			b = chem.Bond{From: ep.Start, To: ep.End, Order: bonds[si].Order}
		}
		if seen[b.Pair()] {
			return nil, chem.Endpoints{}, false
		}
		seen[b.Pair()] = true
		out = append(out, b)
	}
	return out, ep, true
}
