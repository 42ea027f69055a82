// Package search implements the fixed-point iterator (solveOption) and the
// branching depth-first search that drives it to completion.
package search

import "github.com/tomas-macha/zebra/internal/matrix"

// State is one node of the search frontier: an iteration state owning its
// own matrix exclusively. The clue list is not part of State because it is
// shared, read-only, across every branch.
type State struct {
	M *matrix.Matrix
}

// Clone returns a State with an independently mutable copy of the matrix.
func (s State) Clone() State {
	return State{M: s.M.Clone()}
}

// Outcome is the result of running solveOption on one branch state.
type Outcome int

const (
	// OutcomeQuiescent means the branch reached a fixed point without
	// being solved or pruned; it should be split by Branch.
	OutcomeQuiescent Outcome = 0
	// OutcomeSolved means every row is determined and every clue checks
	// true.
	OutcomeSolved Outcome = 1
	// OutcomeInvalidCoverage means some strict-category row or column
	// lost all candidates.
	OutcomeInvalidCoverage Outcome = -1
	// OutcomeInvalidClue means the fully-determined matrix fails some
	// clue's final verification.
	OutcomeInvalidClue Outcome = -2
)
