package errors

import (
	"strings"
	"unicode"
)

// MaxFormulaLength bounds the raw formula text accepted from users.
const MaxFormulaLength = 64

// ValidateFormula checks a raw formula string for safety before parsing.
// It rejects empty input, control characters and anything but ASCII
// letters and digits.
//
// Chemical validity (known elements, counts) is checked by the parser.
func ValidateFormula(s string) error {
	if strings.TrimSpace(s) == "" {
		return New(ErrCodeInvalidFormula, "formula cannot be empty")
	}

	if len(s) > MaxFormulaLength {
		return New(ErrCodeInvalidFormula, "formula too long (max %d characters)", MaxFormulaLength)
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFormula, "formula contains invalid control characters")
		}
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return New(ErrCodeInvalidFormula, "formula contains invalid character %q", r)
		}
	}

	return nil
}

// ValidateFormat checks that format is one of the allowed output formats.
func ValidateFormat(format string, allowed []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
}
