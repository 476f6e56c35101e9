package chem

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MaxOrder is the highest bond order the solver emits.
const MaxOrder = 3

// Bond is an undirected bond between two atoms. A bond whose endpoints are
// the same atom is a placeholder for a lone ion without a skeleton.
type Bond struct {
	From  ID
	To    ID
	Order int // 1, 2 or 3
}

// Other returns the endpoint that is not id.
func (b Bond) Other(id ID) ID {
	if b.From == id {
		return b.To
	}
	return b.From
}

// Touches reports whether id is an endpoint of b.
func (b Bond) Touches(id ID) bool { return b.From == id || b.To == id }

// Pair returns the endpoints in ascending order.
func (b Bond) Pair() [2]ID {
	if b.From > b.To {
		return [2]ID{b.To, b.From}
	}
	return [2]ID{b.From, b.To}
}

// IsPlaceholder reports whether b is a self-bond.
func (b Bond) IsPlaceholder() bool { return b.From == b.To }

// MethodKind identifies the strategy that produced a solution.
type MethodKind int

const (
	MethodBranch MethodKind = iota
	MethodCircle
	MethodPolyatomic
)

// Method describes how a solution was found. Charge is set for polyatomic
// solutions and holds the net ionic charge that was applied.
type Method struct {
	Kind   MethodKind
	Charge int
}

// String renders the method as "branch", "circle" or "polyatomic(-1)".
func (m Method) String() string {
	switch m.Kind {
	case MethodBranch:
		return "branch"
	case MethodCircle:
		return "circle"
	case MethodPolyatomic:
		return fmt.Sprintf("polyatomic(%+d)", m.Charge)
	}
	return "unknown"
}

// ParseMethod parses the output of [Method.String].
func ParseMethod(s string) (Method, error) {
	switch s {
	case "branch":
		return Method{Kind: MethodBranch}, nil
	case "circle":
		return Method{Kind: MethodCircle}, nil
	}
	if strings.HasPrefix(s, "polyatomic(") && strings.HasSuffix(s, ")") {
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(s, "polyatomic("), ")"))
		if err == nil {
			return Method{Kind: MethodPolyatomic, Charge: n}, nil
		}
	}
	return Method{}, fmt.Errorf("unknown method %q", s)
}

// Endpoints are the two atoms joined when a ring was closed.
type Endpoints struct {
	Start ID
	End   ID
}

// Solution is one valid bond structure.
type Solution struct {
	Method    Method
	Bonds     []Bond
	Atoms     []Atom     // real atoms, indexed by ID
	Endpoints *Endpoints // set for ring solutions
}

// Atom returns the atom with the given id.
func (s Solution) Atom(id ID) Atom { return s.Atoms[id] }

// Charge returns the net formal charge.
func (s Solution) Charge() int {
	n := 0
	for _, a := range s.Atoms {
		n += a.Charge
	}
	return n
}

// Orders returns the sum of bond orders per atom. Placeholders count zero.
func (s Solution) Orders() map[ID]int {
	out := make(map[ID]int, len(s.Atoms))
	for _, b := range s.Bonds {
		if b.IsPlaceholder() {
			continue
		}
		out[b.From] += b.Order
		out[b.To] += b.Order
	}
	return out
}

// Triples returns the bonds as (from name, to name, order) triples.
func (s Solution) Triples() [][3]string {
	names := Names(s.Atoms)
	out := make([][3]string, len(s.Bonds))
	for i, b := range s.Bonds {
		out[i] = [3]string{names[b.From], names[b.To], strconv.Itoa(b.Order)}
	}
	return out
}

// Signature is a canonical rendering of the bond set, independent of bond
// order and orientation.
func (s Solution) Signature() string {
	parts := make([]string, len(s.Bonds))
	for i, b := range s.Bonds {
		p := b.Pair()
		parts[i] = fmt.Sprintf("%d-%d:%d", p[0], p[1], b.Order)
	}
	sort.Strings(parts)
	return s.Method.String() + "|" + strings.Join(parts, ",")
}

// Errors reported by [Solution.Validate].
var (
	ErrBondOrder     = errors.New("bond order out of range")
	ErrDuplicateBond = errors.New("duplicate bond")
	ErrUnknownAtom   = errors.New("bond references unknown atom")
	ErrOctet         = errors.New("octet not satisfied")
)

// Validate checks the structural invariants of s. Branch and ring
// solutions must also satisfy every atom's need exactly.
func (s Solution) Validate() error {
	seen := make(map[[2]ID]bool, len(s.Bonds))
	for _, b := range s.Bonds {
		if int(b.From) < 0 || int(b.From) >= len(s.Atoms) || int(b.To) < 0 || int(b.To) >= len(s.Atoms) {
			return fmt.Errorf("%w: %d-%d", ErrUnknownAtom, b.From, b.To)
		}
		if b.IsPlaceholder() {
			if len(s.Bonds) != 1 {
				return fmt.Errorf("%w: self-bond on %d", ErrDuplicateBond, b.From)
			}
			continue
		}
		if b.Order < 1 || b.Order > MaxOrder {
			return fmt.Errorf("%w: %d", ErrBondOrder, b.Order)
		}
		if seen[b.Pair()] {
			return fmt.Errorf("%w: %d-%d", ErrDuplicateBond, b.From, b.To)
		}
		seen[b.Pair()] = true
	}
	if s.Method.Kind == MethodPolyatomic {
		return nil
	}
	orders := s.Orders()
	for _, a := range s.Atoms {
		if orders[a.ID] != a.Need() {
			return fmt.Errorf("%w: %s has %d, needs %d", ErrOctet, a, orders[a.ID], a.Need())
		}
	}
	return nil
}
