package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/matzehuels/lewis/pkg/chem"
)

// Solve finds bond structures for atoms and passes each distinct one to fn
// as soon as it is found. Atom IDs are reassigned to input positions.
//
// Solve returns [ErrNoSolution] when no strategy succeeds, the error from
// fn unless it is [ErrStop], or the context's error.
func Solve(ctx context.Context, atoms []chem.Atom, opts Options, fn func(chem.Solution) error) error {
	if len(atoms) == 0 {
		return ErrEmpty
	}
	opts = opts.withDefaults()

	input := make([]chem.Atom, len(atoms))
	for i, a := range atoms {
		if a.Valence < 1 || a.Valence > chem.Octet {
			return fmt.Errorf("%w: %s has valence %d", ErrInvalidAtom, a.Element, a.Valence)
		}
		a.ID = chem.ID(i)
		a.Role = chem.RoleNone
		input[i] = a
	}

	r := &run{
		ctx:   ctx,
		opts:  opts,
		atoms: input,
		seen:  make(map[string]bool),
		fn:    fn,
	}
	err := r.solve()
	switch {
	case errors.Is(err, ErrStop):
		return nil
	case err != nil:
		return err
	case r.count == 0:
		return ErrNoSolution
	}
	return nil
}

// First returns the first structure found for atoms.
func First(ctx context.Context, atoms []chem.Atom, opts Options) (chem.Solution, error) {
	opts.Mode = StopAfterFirst
	var out chem.Solution
	err := Solve(ctx, atoms, opts, func(s chem.Solution) error {
		out = s
		return ErrStop
	})
	return out, err
}

// All collects up to limit structures (every structure if limit <= 0).
func All(ctx context.Context, atoms []chem.Atom, opts Options, limit int) ([]chem.Solution, error) {
	var out []chem.Solution
	err := Solve(ctx, atoms, opts, func(s chem.Solution) error {
		out = append(out, s)
		if limit > 0 && len(out) >= limit {
			return ErrStop
		}
		return nil
	})
	return out, err
}

// run holds the state of one Solve call.
type run struct {
	ctx   context.Context
	opts  Options
	atoms []chem.Atom
	next  chem.ID
	seen  map[string]bool
	count int
	fn    func(chem.Solution) error
}

func (r *run) first() bool {
	return r.count > 0 && r.opts.Mode == StopAfterFirst
}

func (r *run) solve() error {
	logger := r.opts.Logger
	mol := chem.NewMolecule(r.atoms)

	err := r.branch(mol, func(bonds []chem.Bond) (bool, error) {
		return r.deliver(chem.Method{Kind: chem.MethodBranch}, bonds, nil, nil)
	})
	if err != nil {
		return err
	}

	if r.count == 0 && len(r.atoms) > 2 {
		logger.Debug("no tree structure, trying rings", "atoms", len(r.atoms))
		err := r.ring(mol, func(bonds []chem.Bond, ep chem.Endpoints) (bool, error) {
			return r.deliver(chem.Method{Kind: chem.MethodCircle}, bonds, &ep, nil)
		})
		if err != nil {
			return err
		}
	}
	if r.first() {
		return nil
	}

	ionic := func(bonds []chem.Bond, charges map[chem.ID]int) (bool, error) {
		net := 0
		for _, c := range charges {
			net += c
		}
		return r.deliver(chem.Method{Kind: chem.MethodPolyatomic, Charge: net}, bonds, nil, charges)
	}
	for i := 1; i <= r.opts.MaxIonCharge; i++ {
		logger.Debug("trying ionic resolution", "charge", i)
		if err := r.anion(mol, i, ionic); err != nil {
			return err
		}
		if r.first() {
			return nil
		}
		if err := r.cation(mol, i, ionic); err != nil {
			return err
		}
		if r.first() {
			return nil
		}
	}
	return nil
}

func (r *run) branch(m chem.Molecule, emit emitFunc) error {
	return BranchSolve(r.ctx, m, r.opts, emit)
}

func (r *run) resetSynthetic() { r.next = chem.ID(len(r.atoms)) }

func (r *run) synthetic(role chem.Role, valence int) chem.Atom {
	a := chem.Atom{ID: r.next, Valence: valence, Role: role}
	r.next++
	return a
}

// deliver turns raw bonds into a solution, validates it and passes it on.
// Duplicates of an earlier solution are accepted but not delivered again.
func (r *run) deliver(method chem.Method, bonds []chem.Bond, ep *chem.Endpoints, charges map[chem.ID]int) (bool, error) {
	atoms := append([]chem.Atom(nil), r.atoms...)
	sol := chem.Solution{Method: method, Bonds: bonds, Atoms: atoms, Endpoints: ep}
	if err := sol.Validate(); err != nil {
		r.opts.Logger.Debug("rejected structure", "method", method, "err", err)
		return false, nil
	}

	ionicBonds(r.atoms, atoms, bonds)
	for id, c := range charges {
		atoms[id].Charge += c
	}

	sig := sol.Signature()
	if r.seen[sig] {
		return true, nil
	}
	r.seen[sig] = true
	r.count++
	return true, r.fn(sol)
}

// ionicBonds charges a neutral atom bonded to an atom that carries an
// input charge with the opposite sign, once per bond order.
func ionicBonds(input, out []chem.Atom, bonds []chem.Bond) {
	for _, b := range bonds {
		if b.IsPlaceholder() {
			continue
		}
		from, to := input[b.From], input[b.To]
		switch {
		case from.Charge > 0 && to.Charge == 0:
			out[b.To].Charge -= b.Order
		case from.Charge < 0 && to.Charge == 0:
			out[b.To].Charge += b.Order
		case to.Charge > 0 && from.Charge == 0:
			out[b.From].Charge -= b.Order
		case to.Charge < 0 && from.Charge == 0:
			out[b.From].Charge += b.Order
		}
	}
}
