package errors

import (
	"strings"
	"testing"
)

func TestValidateFormula(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "H2O", false},
		{"valid two letter", "NaCl", false},
		{"valid long", "C6H12O6", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("C", MaxFormulaLength+1), true},
		{"null byte", "H2\x00O", true},
		{"newline", "H2O\n", true},
		{"space", "H2 O", true},
		{"parenthesis", "Ca(OH)2", true},
		{"charge sign", "OH-", true},
		{"unicode subscript", "H₂O", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormula(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormula(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormula) {
				t.Errorf("ValidateFormula(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidFormula)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	allowed := []string{"svg", "png"}
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"svg", "svg", false},
		{"png", "png", false},
		{"empty", "", true},
		{"unknown", "pdf", true},
		{"case sensitive", "SVG", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.input, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
