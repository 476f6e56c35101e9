package solver

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Mode selects how many solutions a search produces.
type Mode int

const (
	// StopAfterFirst ends the search at the first accepted solution.
	StopAfterFirst Mode = iota
	// Continue explores every tier and candidate.
	Continue
)

func (m Mode) String() string {
	switch m {
	case StopAfterFirst:
		return "first"
	case Continue:
		return "all"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode parses "first" or "all".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "first":
		return StopAfterFirst, nil
	case "all":
		return Continue, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want first or all)", s)
}

// DefaultMaxIonCharge is the largest ionic charge tried when no neutral
// structure exists.
const DefaultMaxIonCharge = 4

// Options configure [Solve].
type Options struct {
	Mode         Mode
	MaxIonCharge int         // 0 means DefaultMaxIonCharge
	Logger       *log.Logger // nil discards log output
}

func (o Options) withDefaults() Options {
	if o.MaxIonCharge <= 0 {
		o.MaxIonCharge = DefaultMaxIonCharge
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

var (
	// ErrNoSolution is returned when no strategy produced a structure.
	ErrNoSolution = errors.New("no valid bond structure")

	// ErrStop may be returned by a solution callback to end enumeration
	// early. Solve then returns nil.
	ErrStop = errors.New("stop enumeration")

	// ErrInvalidAtom is returned for atoms whose valence is outside 1..8.
	ErrInvalidAtom = errors.New("invalid atom")

	// ErrEmpty is returned when there are no atoms to solve.
	ErrEmpty = errors.New("no atoms")
)
