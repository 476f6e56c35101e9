package chem

import (
	"fmt"
	"strings"
)

// ID identifies an atom within a single solve.
type ID int

// Role marks atoms introduced by the solver.
type Role int

const (
	RoleNone     Role = iota // real atom from the input
	RoleSink                 // extra electron, anion resolution
	RoleSource               // missing electron pair, cation resolution
	RoleBoundary             // ring start or end marker
)

var roleNames = map[Role]string{
	RoleNone:     "none",
	RoleSink:     "sink",
	RoleSource:   "source",
	RoleBoundary: "boundary",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Octet is the electron count every atom completes through bonding.
const Octet = 8

// Atom is a single atom or a synthetic stand-in.
type Atom struct {
	ID      ID     // stable identifier within a solve
	Element string // element symbol, "" for synthetic atoms
	Valence int    // valence electrons (1..8, hydrogen counted as 7)
	Charge  int    // formal charge
	Role    Role   // RoleNone for real atoms
}

// Need returns the number of bond orders the atom must form.
func (a Atom) Need() int { return Octet - a.Valence }

// IsSynthetic reports whether the atom was introduced by the solver.
func (a Atom) IsSynthetic() bool { return a.Role != RoleNone }

// key groups indistinguishable atoms for sub-group enumeration.
func (a Atom) key() string {
	return fmt.Sprintf("a:%s:%d:%d:%d", a.Element, a.Valence, a.Charge, a.Role)
}

// Label renders the element symbol followed by its formal charge in
// superscript, e.g. "O⁻" or "Mg²⁺".
func (a Atom) Label() string {
	if a.IsSynthetic() {
		return "·" + a.Role.String()
	}
	return a.Element + FormatCharge(a.Charge)
}

func (a Atom) String() string {
	return fmt.Sprintf("%s#%d(%d)", a.Element, a.ID, a.Valence)
}

var superscripts = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")

// FormatCharge renders a formal charge as superscript digits and sign.
// A magnitude of one omits the digit; zero renders as the empty string.
func FormatCharge(charge int) string {
	if charge == 0 {
		return ""
	}
	sign := "⁺"
	if charge < 0 {
		sign = "⁻"
		charge = -charge
	}
	if charge == 1 {
		return sign
	}
	var b strings.Builder
	for _, d := range fmt.Sprint(charge) {
		b.WriteRune(superscripts[d-'0'])
	}
	b.WriteString(sign)
	return b.String()
}
