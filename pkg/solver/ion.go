package solver

import "github.com/matzehuels/lewis/pkg/chem"

const (
	sinkValence   = 7 // need 1: one extra electron
	sourceValence = 5 // need 3: a missing electron pair
)

type ionEmit func(bonds []chem.Bond, charges map[chem.ID]int) (bool, error)

// anion adds n sink atoms to m, runs the tree search and strips the sinks
// from every structure found.
func (r *run) anion(m chem.Molecule, n int, emit ionEmit) error {
	r.resetSynthetic()
	ext := append(chem.Molecule{}, m...)
	sinks := make(map[chem.ID]bool, n)
	for i := 0; i < n; i++ {
		a := r.synthetic(chem.RoleSink, sinkValence)
		sinks[a.ID] = true
		ext = append(ext, a)
	}
	return r.branch(ext, func(bonds []chem.Bond) (bool, error) {
		out, charges, ok := removeSinks(bonds, sinks, r.atoms)
		if !ok {
			return false, nil
		}
		return emit(out, charges)
	})
}

// cation adds n source atoms to m, runs the tree search and funnels every
// source away.
func (r *run) cation(m chem.Molecule, n int, emit ionEmit) error {
	r.resetSynthetic()
	ext := append(chem.Molecule{}, m...)
	sources := make([]chem.ID, 0, n)
	for i := 0; i < n; i++ {
		a := r.synthetic(chem.RoleSource, sourceValence)
		sources = append(sources, a.ID)
		ext = append(ext, a)
	}
	return r.branch(ext, func(bonds []chem.Bond) (bool, error) {
		out, charges, ok := funnelSources(bonds, sources, r.atoms)
		if !ok {
			return false, nil
		}
		return emit(out, charges)
	})
}

// removeSinks drops every bond touching a sink. Each atom that lost a bond
// to a sink is charged -(need - remaining bond orders). When nothing
// remains, a self-bond on the first charged atom stands in for the ion.
func removeSinks(bonds []chem.Bond, sinks map[chem.ID]bool, atoms []chem.Atom) ([]chem.Bond, map[chem.ID]int, bool) {
	var touched []chem.ID
	marked := make(map[chem.ID]bool)
	mark := func(id chem.ID) {
		if !marked[id] {
			marked[id] = true
			touched = append(touched, id)
		}
	}

	var out []chem.Bond
	for _, b := range bonds {
		fs, ts := sinks[b.From], sinks[b.To]
		switch {
		case fs && ts:
			return nil, nil, false
		case fs:
			mark(b.To)
		case ts:
			mark(b.From)
		default:
			out = append(out, b)
		}
	}
	if len(touched) == 0 {
		return nil, nil, false
	}

	remaining := make(map[chem.ID]int)
	for _, b := range out {
		remaining[b.From] += b.Order
		remaining[b.To] += b.Order
	}
	charges := make(map[chem.ID]int, len(touched))
	for _, id := range touched {
		charges[id] = -(atoms[id].Need() - remaining[id])
	}

	if len(out) == 0 {
		out = []chem.Bond{{From: touched[0], To: touched[0], Order: 1}}
	}
	return out, charges, true
}

// funnelSources removes each source atom. Its neighbours are reconnected to
// a hub: the neighbour with the highest bond order to the source, then the
// highest need, then the first bonded. The hub is charged +order of its
// bond to the source. Sources bonded to other synthetic atoms, and
// reconnections that would exceed a triple bond, are rejected.
func funnelSources(bonds []chem.Bond, sources []chem.ID, atoms []chem.Atom) ([]chem.Bond, map[chem.ID]int, bool) {
	work := append([]chem.Bond(nil), bonds...)
	charges := make(map[chem.ID]int)
	real := func(id chem.ID) bool { return int(id) < len(atoms) }

	for _, src := range sources {
		var links, rest []chem.Bond
		for _, b := range work {
			if b.Touches(src) {
				links = append(links, b)
			} else {
				rest = append(rest, b)
			}
		}
		if len(links) == 0 {
			return nil, nil, false
		}

		hub := -1
		for i, b := range links {
			o := b.Other(src)
			if !real(o) {
				return nil, nil, false
			}
			if hub < 0 || betterHub(b, links[hub], src, atoms) {
				hub = i
			}
		}

		h := links[hub].Other(src)
		charges[h] += links[hub].Order
		for i, b := range links {
			if i == hub {
				continue
			}
			var ok bool
			if rest, ok = connect(rest, b.Other(src), h, b.Order); !ok {
				return nil, nil, false
			}
		}
		work = rest
	}
	return work, charges, true
}

func betterHub(a, b chem.Bond, src chem.ID, atoms []chem.Atom) bool {
	if a.Order != b.Order {
		return a.Order > b.Order
	}
	return atoms[a.Other(src)].Need() > atoms[b.Other(src)].Need()
}

// connect adds a bond between x and y, raising the order of an existing
// bond between them instead of duplicating it.
func connect(bonds []chem.Bond, x, y chem.ID, order int) ([]chem.Bond, bool) {
	key := chem.Bond{From: x, To: y}.Pair()
	for i, b := range bonds {
		if b.Pair() != key {
			continue
		}
		if b.Order+order > chem.MaxOrder {
			return nil, false
		}
		bonds[i].Order += order
		return bonds, true
	}
	return append(bonds, chem.Bond{From: x, To: y, Order: order}), true
}
