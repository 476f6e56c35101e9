package formula

import (
	"testing"

	"github.com/matzehuels/lewis/pkg/errors"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		symbol  string
		valence int
		charge  int
	}{
		{"H", 7, 0},
		{"He", 8, 0},
		{"C", 4, 0},
		{"N", 5, 0},
		{"O", 6, 0},
		{"Cl", 7, 0},
		{"Na", 7, 1},
		{"Mg", 6, 2},
		{"Al", 5, 3},
		{"Fe", 6, 2},
		{"Si", 4, 0},
		{"Rn", 8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			e, ok := Lookup(tt.symbol)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.symbol)
			}
			if e.Valence != tt.valence || e.Charge != tt.charge {
				t.Errorf("Lookup(%q) = valence %d charge %d, want %d %d",
					tt.symbol, e.Valence, e.Charge, tt.valence, tt.charge)
			}
		})
	}

	if _, ok := Lookup("Xx"); ok {
		t.Error("Lookup(Xx) should fail")
	}
}

func TestSymbols(t *testing.T) {
	syms := Symbols()
	if len(syms) != 86 {
		t.Errorf("len(Symbols()) = %d, want 86", len(syms))
	}
	if syms[0] != "H" || syms[len(syms)-1] != "Rn" {
		t.Errorf("Symbols() bounds = %s..%s", syms[0], syms[len(syms)-1])
	}
	for i, row := range periods {
		if len(row) != len(electrons[i]) {
			t.Errorf("period %d: %d symbols, %d electron counts", i+1, len(row), len(electrons[i]))
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		formula string
		want    []string
	}{
		{"H2O", []string{"H", "H", "O"}},
		{"CH4", []string{"C", "H", "H", "H", "H"}},
		{"NaCl", []string{"Na", "Cl"}},
		{"O3", []string{"O", "O", "O"}},
		{"CH3OH", []string{"C", "H", "H", "H", "O", "H"}},
		{"He", []string{"He"}},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			atoms, err := Parse(tt.formula)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.formula, err)
			}
			if len(atoms) != len(tt.want) {
				t.Fatalf("Parse(%q) = %d atoms, want %d", tt.formula, len(atoms), len(tt.want))
			}
			for i, a := range atoms {
				if a.Element != tt.want[i] {
					t.Errorf("atom %d = %s, want %s", i, a.Element, tt.want[i])
				}
				if int(a.ID) != i {
					t.Errorf("atom %d has ID %d", i, a.ID)
				}
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		formula string
		code    errors.Code
	}{
		{"", errors.ErrCodeInvalidFormula},
		{"h2o", errors.ErrCodeInvalidFormula},
		{"2H", errors.ErrCodeInvalidFormula},
		{"H0", errors.ErrCodeInvalidFormula},
		{"Xx2", errors.ErrCodeUnknownElement},
		{"Q", errors.ErrCodeUnknownElement},
		{"H2-O", errors.ErrCodeInvalidFormula},
		{"C41", errors.ErrCodeInvalidFormula},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			_, err := Parse(tt.formula)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded", tt.formula)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse(%q) code = %v, want %v", tt.formula, errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestTermsKeepsRepeats(t *testing.T) {
	terms, err := Terms("CH3CH3")
	if err != nil {
		t.Fatal(err)
	}
	if len(terms) != 4 {
		t.Fatalf("Terms = %v, want 4 terms", terms)
	}
	if terms[1] != (Term{Symbol: "H", Count: 3}) {
		t.Errorf("terms[1] = %v", terms[1])
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"CH3CH3": "C2H6",
		"H2O":    "H2O",
		"HOH":    "H2O",
		"OCO":    "O2C",
		"C":      "C",
	}
	for in, want := range tests {
		got, err := Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse("Zz")
}
