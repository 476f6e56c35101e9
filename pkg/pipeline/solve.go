package pipeline

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/lewis/pkg/chem"
	"github.com/matzehuels/lewis/pkg/errors"
	"github.com/matzehuels/lewis/pkg/formula"
	"github.com/matzehuels/lewis/pkg/graph"
	"github.com/matzehuels/lewis/pkg/layout"
	"github.com/matzehuels/lewis/pkg/observability"
	"github.com/matzehuels/lewis/pkg/solver"
)

// Solve parses the formula, enumerates structures and lays each one out.
// It does not touch any cache; see [Runner.Solve] for the cached variant.
func Solve(ctx context.Context, opts Options) ([]graph.Structure, error) {
	if err := opts.ValidateForSolve(); err != nil {
		return nil, err
	}

	normalized, err := formula.Normalize(opts.Formula)
	if err != nil {
		return nil, err
	}
	atoms := formula.MustParse(normalized)

	hooks := observability.Pipeline()
	hooks.OnSolveStart(ctx, normalized, opts.Mode)
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	var out []graph.Structure
	err = solver.Solve(ctx, atoms, opts.SolverOptions(), func(sol chem.Solution) error {
		out = append(out, graph.FromSolution(normalized, len(out), sol, layout.Compute(sol)))
		if len(out) >= opts.Limit {
			return solver.ErrStop
		}
		return nil
	})
	err = classify(err, normalized, len(out))
	hooks.OnSolveComplete(ctx, normalized, len(out), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("solved", "formula", normalized, "structures", len(out), "duration", time.Since(start))
	return out, nil
}

// classify maps solver errors to pipeline error codes. A timeout after at
// least one structure was found keeps the partial result.
func classify(err error, formula string, found int) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, solver.ErrNoSolution):
		return errors.Wrap(errors.ErrCodeNoSolution, err, "no valid structure for %s", formula)
	case stderrors.Is(err, context.DeadlineExceeded):
		if found > 0 {
			return nil
		}
		return errors.Wrap(errors.ErrCodeTimeout, err, "solving %s timed out", formula)
	case stderrors.Is(err, solver.ErrInvalidAtom), stderrors.Is(err, solver.ErrEmpty):
		return errors.Wrap(errors.ErrCodeInvalidFormula, err, "cannot solve %s", formula)
	}
	return err
}
