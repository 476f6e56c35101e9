package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{New(ErrCodeUnknownElement, "unknown element %q", "Xx"), `UNKNOWN_ELEMENT: unknown element "Xx"`},
		{Wrap(ErrCodeTimeout, context.DeadlineExceeded, "solving %s timed out", "C8H18"),
			"TIMEOUT: solving C8H18 timed out: context deadline exceeded"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeTimeout, context.DeadlineExceeded, "solving C8H18 timed out")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("errors.Is should see the wrapped cause")
	}
	if errors.Unwrap(err) != context.DeadlineExceeded {
		t.Errorf("Unwrap() = %v, want context.DeadlineExceeded", errors.Unwrap(err))
	}
}

func TestCodeThroughChain(t *testing.T) {
	base := New(ErrCodeInvalidFormula, "lowercase symbol in %q", "ch4")
	wrapped := fmt.Errorf("solve: %w", base)

	tests := []struct {
		name string
		err  error
		code Code
		is   bool
		get  Code
	}{
		{"direct", base, ErrCodeInvalidFormula, true, ErrCodeInvalidFormula},
		{"fmt wrapped", wrapped, ErrCodeInvalidFormula, true, ErrCodeInvalidFormula},
		{"other code", base, ErrCodeInternal, false, ErrCodeInvalidFormula},
		{"outer code wins", Wrap(ErrCodeInternal, base, "render"), ErrCodeInternal, true, ErrCodeInternal},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false, ""},
		{"nil", nil, ErrCodeInvalidInput, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.is {
				t.Errorf("Is(%v) = %v, want %v", tt.code, got, tt.is)
			}
			if got := GetCode(tt.err); got != tt.get {
				t.Errorf("GetCode() = %q, want %q", got, tt.get)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{New(ErrCodeNoSolution, "no valid structure for %s", "He"), "no valid structure for He"},
		{fmt.Errorf("cli: %w", New(ErrCodeNotFound, "structure 3 not found")), "structure 3 not found"},
		{errors.New("disk full"), "disk full"},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage() = %q, want %q", got, tt.want)
		}
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", New(ErrCodeInvalidInput, "limit must be an integer"), 400},
		{"invalid formula", New(ErrCodeInvalidFormula, "bad"), 400},
		{"unknown element", New(ErrCodeUnknownElement, "Xx"), 400},
		{"invalid format", New(ErrCodeInvalidFormat, "pdf"), 400},
		{"invalid mode", New(ErrCodeInvalidMode, "some"), 400},
		{"no solution", New(ErrCodeNoSolution, "none"), 422},
		{"not found", Wrap(ErrCodeNotFound, errors.New("missing"), "lookup"), 404},
		{"timeout", New(ErrCodeTimeout, "slow"), 504},
		{"unsupported", New(ErrCodeUnsupported, "no store"), 501},
		{"internal", New(ErrCodeInternal, "encode"), 500},
		{"plain error", errors.New("boom"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
