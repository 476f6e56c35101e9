package formula

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/lewis/pkg/chem"
	"github.com/matzehuels/lewis/pkg/errors"
)

// MaxAtoms bounds the number of atoms a formula may expand to.
const MaxAtoms = 40

var (
	wholeRe = regexp.MustCompile(`^(?:[A-Z][a-z]?[0-9]*)+$`)
	partRe  = regexp.MustCompile(`([A-Z][a-z]?)([0-9]*)`)
)

// Term is one element and its subscript as written in a formula.
type Term struct {
	Symbol string
	Count  int
}

// Terms splits a formula into element terms without expanding them.
// Repeated symbols stay separate terms, so "CH3CH3" yields four.
func Terms(s string) ([]Term, error) {
	if err := errors.ValidateFormula(s); err != nil {
		return nil, err
	}
	if !wholeRe.MatchString(s) {
		return nil, errors.New(errors.ErrCodeInvalidFormula, "malformed formula %q", s)
	}

	var out []Term
	for _, m := range partRe.FindAllStringSubmatch(s, -1) {
		if _, ok := table[m[1]]; !ok {
			return nil, errors.New(errors.ErrCodeUnknownElement, "unknown element %q in %q", m[1], s)
		}
		n := 1
		if m[2] != "" {
			v, err := strconv.Atoi(m[2])
			if err != nil || v < 1 {
				return nil, errors.New(errors.ErrCodeInvalidFormula, "invalid count %q for %s", m[2], m[1])
			}
			n = v
		}
		out = append(out, Term{Symbol: m[1], Count: n})
	}
	return out, nil
}

// Parse expands a formula into atoms in written order. IDs are assigned
// from zero.
func Parse(s string) ([]chem.Atom, error) {
	terms, err := Terms(s)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, t := range terms {
		total += t.Count
	}
	if total > MaxAtoms {
		return nil, errors.New(errors.ErrCodeInvalidFormula, "%q has %d atoms (max %d)", s, total, MaxAtoms)
	}

	atoms := make([]chem.Atom, 0, total)
	for _, t := range terms {
		e := table[t.Symbol]
		for i := 0; i < t.Count; i++ {
			atoms = append(atoms, chem.Atom{
				ID:      chem.ID(len(atoms)),
				Element: e.Symbol,
				Valence: e.Valence,
				Charge:  e.Charge,
			})
		}
	}
	return atoms, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(s string) []chem.Atom {
	atoms, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("formula: %v", err))
	}
	return atoms
}

// Format writes atoms back as a compact formula. Elements appear in order
// of first occurrence and runs are merged, so Format(Parse("CH3CH3"))
// is "C2H6".
func Format(atoms []chem.Atom) string {
	var order []string
	counts := make(map[string]int)
	for _, a := range atoms {
		if a.IsSynthetic() {
			continue
		}
		if counts[a.Element] == 0 {
			order = append(order, a.Element)
		}
		counts[a.Element]++
	}

	var b strings.Builder
	for _, sym := range order {
		b.WriteString(sym)
		if n := counts[sym]; n > 1 {
			b.WriteString(strconv.Itoa(n))
		}
	}
	return b.String()
}

// Normalize parses and re-formats s. Formulas listing the same atoms
// share a normalized form.
func Normalize(s string) (string, error) {
	atoms, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(atoms), nil
}
