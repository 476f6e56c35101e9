package layout

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/matzehuels/lewis/pkg/chem"
	"github.com/matzehuels/lewis/pkg/formula"
	"github.com/matzehuels/lewis/pkg/solver"
)

func atoms(elements ...string) []chem.Atom {
	out := make([]chem.Atom, len(elements))
	for i, el := range elements {
		out[i] = chem.Atom{ID: chem.ID(i), Element: el, Valence: 4}
	}
	return out
}

func assertValid(t *testing.T, sol chem.Solution, l Layout) {
	t.Helper()
	for _, b := range sol.Bonds {
		for _, id := range []chem.ID{b.From, b.To} {
			if _, ok := l.Positions[id]; !ok {
				t.Errorf("atom %d has no position", id)
			}
		}
	}
	seen := make(map[Point]chem.ID)
	for id, p := range l.Positions {
		if other, ok := seen[p]; ok {
			t.Errorf("atoms %d and %d share %v", id, other, p)
		}
		seen[p] = id
	}
}

func TestMethaneIsACross(t *testing.T) {
	sol := chem.Solution{
		Atoms: atoms("C", "H", "H", "H", "H"),
		Bonds: []chem.Bond{{From: 1, To: 0, Order: 1}, {From: 2, To: 0, Order: 1}, {From: 3, To: 0, Order: 1}, {From: 4, To: 0, Order: 1}},
	}
	l := Compute(sol)
	assertValid(t, sol, l)

	want := map[chem.ID]Point{
		1: {0, 0},
		0: {1, 0},
		2: {1, -1},
		3: {2, 0},
		4: {1, 1},
	}
	for id, p := range want {
		if l.Positions[id] != p {
			t.Errorf("atom %d at %v, want %v", id, l.Positions[id], p)
		}
	}
}

func TestSameElementPrefersEast(t *testing.T) {
	sol := chem.Solution{
		Atoms: atoms("C", "C", "C"),
		Bonds: []chem.Bond{{From: 0, To: 1, Order: 1}, {From: 1, To: 2, Order: 1}},
	}
	l := Compute(sol)
	assertValid(t, sol, l)
	if l.Positions[1] != (Point{1, 0}) {
		t.Errorf("second carbon at %v, want (1,0)", l.Positions[1])
	}
	// East is already used at atom 0 but not at atom 1.
	if l.Positions[2] != (Point{2, 0}) {
		t.Errorf("third carbon at %v, want (2,0)", l.Positions[2])
	}
}

func TestRingEndpointsPreferNorth(t *testing.T) {
	sol := chem.Solution{
		Method:    chem.Method{Kind: chem.MethodCircle},
		Atoms:     atoms("O", "O", "O"),
		Bonds:     []chem.Bond{{From: 0, To: 2, Order: 1}, {From: 0, To: 1, Order: 1}, {From: 1, To: 2, Order: 1}},
		Endpoints: &chem.Endpoints{Start: 0, End: 2},
	}
	l := Compute(sol)
	assertValid(t, sol, l)
	if l.Positions[0] != (Point{}) {
		t.Errorf("start at %v, want origin", l.Positions[0])
	}
	if l.Positions[2] != (Point{0, 1}) {
		t.Errorf("end at %v, want (0,1)", l.Positions[2])
	}
	if len(l.Positions) != 3 {
		t.Errorf("placed %d atoms, want 3", len(l.Positions))
	}
}

func TestDeferredBonds(t *testing.T) {
	// The first bond joins two atoms that only get placed through later bonds.
	sol := chem.Solution{
		Atoms: atoms("C", "H", "H", "O"),
		Bonds: []chem.Bond{{From: 0, To: 3, Order: 1}, {From: 1, To: 2, Order: 1}, {From: 2, To: 0, Order: 1}},
	}
	l := Compute(sol)
	assertValid(t, sol, l)
	if len(l.Positions) != 4 {
		t.Errorf("placed %d atoms, want 4", len(l.Positions))
	}
}

func TestDisconnectedFragments(t *testing.T) {
	sol := chem.Solution{
		Atoms: atoms("H", "H", "H", "H"),
		Bonds: []chem.Bond{{From: 0, To: 1, Order: 1}, {From: 2, To: 3, Order: 1}},
	}
	l := Compute(sol)
	assertValid(t, sol, l)
	if len(l.Positions) != 4 {
		t.Errorf("placed %d atoms, want 4", len(l.Positions))
	}
}

func TestPlaceholder(t *testing.T) {
	sol := chem.Solution{
		Method: chem.Method{Kind: chem.MethodPolyatomic, Charge: -1},
		Atoms:  atoms("Cl"),
		Bonds:  []chem.Bond{{From: 0, To: 0, Order: 1}},
	}
	l := Compute(sol)
	if len(l.Positions) != 1 || l.Positions[0] != (Point{}) {
		t.Errorf("Positions = %v, want one atom at the origin", l.Positions)
	}
}

func TestCrowdedAtomShiftsDiagonally(t *testing.T) {
	// A centre with five neighbours uses every direction and then shifts.
	sol := chem.Solution{Atoms: atoms("X", "A", "B", "D", "E", "F")}
	for i := 1; i <= 5; i++ {
		sol.Bonds = append(sol.Bonds, chem.Bond{From: 0, To: chem.ID(i), Order: 1})
	}
	l := Compute(sol)
	assertValid(t, sol, l)
	if len(l.Positions) != 6 {
		t.Errorf("placed %d atoms, want 6", len(l.Positions))
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	tests := []struct {
		formula string
		method  chem.MethodKind
	}{
		{"C6H14", chem.MethodBranch},
		{"O3", chem.MethodCircle},
		{"Cl", chem.MethodPolyatomic},
		{"NO3", chem.MethodPolyatomic},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			sol, err := solver.First(context.Background(), formula.MustParse(tt.formula), solver.Options{})
			if err != nil {
				t.Fatalf("First: %v", err)
			}
			if sol.Method.Kind != tt.method {
				t.Fatalf("Method = %v, want kind %v", sol.Method, tt.method)
			}

			first, second := Compute(sol), Compute(sol)
			if !reflect.DeepEqual(first, second) {
				t.Errorf("Compute differs between calls:\n%v\n%v", first.Positions, second.Positions)
			}

			seen := make(map[Point]chem.ID, len(sol.Atoms))
			for _, a := range sol.Atoms {
				p, ok := first.Positions[a.ID]
				if !ok {
					t.Errorf("atom %d has no position", a.ID)
					continue
				}
				if other, ok := seen[p]; ok {
					t.Errorf("atoms %d and %d share %v", a.ID, other, p)
				}
				seen[p] = a.ID
			}
		})
	}
}

func TestPlace(t *testing.T) {
	var l Layout
	if err := l.Place(0, Point{}); err != nil {
		t.Fatalf("Place(0): %v", err)
	}
	if err := l.Place(1, Point{}); !errors.Is(err, ErrOccupied) {
		t.Errorf("Place(1) on a taken point = %v, want ErrOccupied", err)
	}
	if err := l.Place(0, Point{1, 0}); err != nil {
		t.Fatalf("moving atom 0: %v", err)
	}
	if _, ok := l.At(Point{}); ok {
		t.Error("origin should be free after the move")
	}
	if id, ok := l.At(Point{1, 0}); !ok || id != 0 {
		t.Errorf("At(1,0) = %d, %v, want 0, true", id, ok)
	}
}

func TestBoundsAndAt(t *testing.T) {
	l := Layout{Positions: map[chem.ID]Point{0: {0, 0}, 1: {2, -1}, 2: {-1, 3}}}
	min, max := l.Bounds()
	if min != (Point{-1, -1}) || max != (Point{2, 3}) {
		t.Errorf("Bounds() = %v, %v", min, max)
	}
	if id, ok := l.At(Point{2, -1}); !ok || id != 1 {
		t.Errorf("At(2,-1) = %d, %v", id, ok)
	}
	if _, ok := l.At(Point{5, 5}); ok {
		t.Error("At(5,5) should be empty")
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		history []Point
		pref    Point
		want    Point
		ok      bool
	}{
		{[]Point{South}, Point{}, East, true},
		{[]Point{South, East}, Point{}, North, true},
		{[]Point{South}, North, North, true},
		{[]Point{South, North}, North, West, true},
		{[]Point{South, East, North, West}, Point{}, Point{}, false},
	}
	for _, tt := range tests {
		got, ok := next(tt.history, tt.pref)
		if got != tt.want || ok != tt.ok {
			t.Errorf("next(%v, %v) = %v, %v, want %v, %v", tt.history, tt.pref, got, ok, tt.want, tt.ok)
		}
	}
}
