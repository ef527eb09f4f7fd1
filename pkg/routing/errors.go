package routing

import (
	"errors"
	"fmt"
)

// ErrNoCandidates is returned when no provider/model pair survives the
// constraint filters. Callers must treat this as a hard stop for the
// request, not retry with relaxed constraints automatically.
var ErrNoCandidates = errors.New("no provider candidates meet the constraints")

// NoCandidatesError is returned when selection filters out every pair in
// the price table.
type NoCandidatesError struct {
	// Evaluated is the number of pairs enumerated.
	Evaluated int

	// Constraints are the constraints that filtered everything out.
	Constraints Constraints
}

// Error implements the error interface.
func (e *NoCandidatesError) Error() string {
	return fmt.Sprintf("no candidates among %d provider/model pairs meet constraints (max_cost=%d, min_tier=%s)",
		e.Evaluated, e.Constraints.MaxCost, e.Constraints.MinTier)
}

// Is implements error matching for errors.Is().
func (e *NoCandidatesError) Is(target error) bool {
	return target == ErrNoCandidates
}
