package chem

import "fmt"

// Slot is one logical position in a [Molecule]: an [Atom] or a [*Branch].
// The set of implementations is closed.
type Slot interface {
	// Need returns the bond orders the slot still has to form.
	Need() int
	key() string
}

// Branch is a collapsed sub-molecule that behaves as a single atom of need
// Multiplicity. The bond to its parent attaches at the anchor.
type Branch struct {
	Anchor       Slot     // origin of the collapsed group
	Members      Molecule // remaining members, bonded to the anchor
	Multiplicity int      // order of the bond to the parent
}

// Need returns the multiplicity of the bond the branch forms with its parent.
func (b *Branch) Need() int { return b.Multiplicity }

// every branch is its own group
func (b *Branch) key() string { return fmt.Sprintf("b:%p", b) }

func (b *Branch) String() string {
	return fmt.Sprintf("R%d(%v;%v)", b.Multiplicity, b.Anchor, b.Members)
}

// Key returns the grouping key of a slot. Interchangeable atoms share a key.
func Key(s Slot) string { return s.key() }

// Molecule is an ordered list of slots.
type Molecule []Slot

// NewMolecule wraps atoms as slots.
func NewMolecule(atoms []Atom) Molecule {
	m := make(Molecule, len(atoms))
	for i, a := range atoms {
		m[i] = a
	}
	return m
}

// Total returns the sum of the needs of all slots.
func (m Molecule) Total() int {
	n := 0
	for _, s := range m {
		n += s.Need()
	}
	return n
}

// IsOrigin reports whether slot i can bond to every other slot: its need
// equals the combined need of the rest.
func (m Molecule) IsOrigin(i int) bool {
	return 2*m[i].Need() == m.Total()
}

// Origin returns the index of the first origin slot.
func (m Molecule) Origin() (int, bool) {
	return m.OriginWith(0)
}

// OriginWith returns the first slot whose need equals the combined need of
// the other slots plus extra. The extra need stands for an atom outside the
// molecule that the origin also has to bond to.
func (m Molecule) OriginWith(extra int) (int, bool) {
	total := m.Total() + extra
	for i, s := range m {
		if 2*s.Need() == total {
			return i, true
		}
	}
	return -1, false
}

// Remove returns a copy of m without the slots in sub. Each slot of sub
// removes one matching slot of m.
func (m Molecule) Remove(sub Molecule) Molecule {
	drop := make(map[Slot]int, len(sub))
	for _, s := range sub {
		drop[s]++
	}
	out := make(Molecule, 0, len(m))
	for _, s := range m {
		if drop[s] > 0 {
			drop[s]--
			continue
		}
		out = append(out, s)
	}
	return out
}

// Atoms returns every atom in m, descending into branches.
func (m Molecule) Atoms() []Atom {
	var out []Atom
	var walk func(Slot)
	walk = func(s Slot) {
		switch v := s.(type) {
		case Atom:
			out = append(out, v)
		case *Branch:
			walk(v.Anchor)
			for _, c := range v.Members {
				walk(c)
			}
		}
	}
	for _, s := range m {
		walk(s)
	}
	return out
}
