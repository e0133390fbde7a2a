package cmd

import (
	"errors"

	"github.com/s-hoffleit/projekttage/internal/assign"
)

// InputError wraps a malformed-input failure (bad JSON, unparseable ids,
// failed validation) so Execute's caller can map it to a distinct exit
// code from a solver failure (spec.md §6's CLI exit-code scheme).
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return e.Err.Error() }
func (e *InputError) Unwrap() error { return e.Err }

// ExitCodeFor maps an error returned by Execute to a process exit code:
// 0 (unreachable here, Execute only returns non-nil on failure), 1 for
// malformed input, 2 for solver infeasibility/unboundedness.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if assign.Infeasible(err) || assign.Unbounded(err) {
		return 2
	}
	var ie *InputError
	if errors.As(err, &ie) {
		return 1
	}
	return 1
}
