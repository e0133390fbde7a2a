package assign

import (
	"context"
	"errors"

	"github.com/jjhbw/GoMILP/ilp"

	"github.com/s-hoffleit/projekttage/common/models/domain"
	"github.com/s-hoffleit/projekttage/internal/resolver"
)

// Infeasible reports whether err (as returned by Assign) came from the
// solver finding no feasible integer solution, as opposed to a relaxation
// or numerical failure.
func Infeasible(err error) bool {
	var se *SolveError
	return errors.As(err, &se) && errors.Is(se.Err, ilp.NO_INTEGER_FEASIBLE_SOLUTION)
}

// Unbounded reports whether err came from the initial LP relaxation being
// infeasible or unbounded.
func Unbounded(err error) bool {
	var se *SolveError
	return errors.As(err, &se) && errors.Is(se.Err, ilp.INITIAL_RELAXATION_NOT_FEASIBLE)
}

// Assign is the single entry point spec.md §4.5 describes: resolve
// partners, formulate and solve the MILP, and post-process the result.
// It checks ctx once, between the partner resolver and the (potentially
// long-running) solve call, so a caller that has already given up does not
// pay for the solve.
func Assign(ctx context.Context, snapshot domain.Snapshot, fixed domain.Fixed) (Result, error) {
	resolver.ResolveAll(snapshot.Students)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	matrix, studentIDs, projectIDs, err := Formulate(snapshot.Projects, snapshot.Students, fixed)
	if err != nil {
		return Result{}, err
	}

	return Extract(matrix, studentIDs, projectIDs, snapshot.Students), nil
}
