package solver

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lewis/pkg/chem"
)

// emitFunc receives raw bonds from the tree search. It reports whether the
// bonds were accepted as a solution.
type emitFunc func(bonds []chem.Bond) (bool, error)

// search is one tree search. found is scoped to the search so that nested
// recursion can stop early without any shared state.
type search struct {
	ctx    context.Context
	mode   Mode
	emit   emitFunc
	logger *log.Logger
	found  bool
}

// BranchSolve runs the tree search on m, passing every star structure it
// finds to emit. Only opts.Mode and opts.Logger are used. The returned error
// is the first error from emit or the context.
func BranchSolve(ctx context.Context, m chem.Molecule, opts Options, emit func([]chem.Bond) (bool, error)) error {
	opts = opts.withDefaults()
	s := &search{ctx: ctx, mode: opts.Mode, emit: emit, logger: opts.Logger}
	return s.branch(m)
}

func (s *search) done() bool {
	return s.found && s.mode == StopAfterFirst
}

func (s *search) branch(m chem.Molecule) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}

	if i, ok := m.Origin(); ok {
		bonds, ok := star(m, i)
		if !ok {
			return nil
		}
		accepted, err := s.emit(bonds)
		if err != nil {
			return err
		}
		if accepted {
			s.found = true
		}
		return nil
	}

	for n := 1; n <= MaxTier; n++ {
		cands := RGroups(m, n)
		if len(cands) == 0 {
			continue
		}
		if s.mode == StopAfterFirst {
			cands = []Candidate{largest(cands)}
		}
		for _, c := range cands {
			if err := s.branch(collapse(m, c, n)); err != nil {
				return err
			}
			if s.done() {
				return nil
			}
		}
		s.logger.Debug("tier exhausted", "order", n, "slots", len(m))
	}
	return nil
}

// star bonds every slot of m to the slot at center. Branches contribute
// their internal bonds and attach at their anchor atom. It fails when a
// bond order falls outside 1..3.
func star(m chem.Molecule, center int) ([]chem.Bond, bool) {
	var bonds []chem.Bond
	c := root(m[center], &bonds)
	for i, s := range m {
		if i == center {
			continue
		}
		r := root(s, &bonds)
		bonds = append(bonds, chem.Bond{From: r, To: c, Order: s.Need()})
	}
	if len(bonds) == 0 {
		return nil, false
	}
	for _, b := range bonds {
		if b.Order < 1 || b.Order > chem.MaxOrder {
			return nil, false
		}
	}
	return bonds, true
}

// root appends the internal bonds of s and returns the atom external bonds
// attach to.
func root(s chem.Slot, bonds *[]chem.Bond) chem.ID {
	switch v := s.(type) {
	case chem.Atom:
		return v.ID
	case *chem.Branch:
		anchor := root(v.Anchor, bonds)
		for _, c := range v.Members {
			r := root(c, bonds)
			*bonds = append(*bonds, chem.Bond{From: r, To: anchor, Order: c.Need()})
		}
		return anchor
	}
	panic("solver: unknown slot type")
}
