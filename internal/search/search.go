package search

import (
	"github.com/tomas-macha/zebra/internal/ast"
	"github.com/tomas-macha/zebra/internal/matrix"
	"github.com/tomas-macha/zebra/internal/puzzle"
)

// Result is the output of one Run call: the branching search's stack,
// solutions and statistics.
type Result struct {
	Done       bool
	Stack      []State
	Solutions  []*matrix.Matrix
	Iterations int
	Options    int
}

// Run drives the branching search for up to maxIterations waves. initial
// seeds the work stack; if the caller is resuming a prior partial run,
// initial should be that run's returned Stack, which replaces (not merges
// with) the stack a fresh run would build.
//
// Each wave runs SolveOption on every state currently on the stack: solved
// or pruned states are dropped from the frontier (solved ones are recorded
// as solutions), and quiescent-but-undetermined states are replaced by
// their Branch children for the next wave.
func Run(cat *puzzle.Catalog, clues []*ast.Node, initial []State, maxIterations int) (Result, error) {
	stack := initial
	var solutions []*matrix.Matrix
	iterations := 0

	for iterations < maxIterations && len(stack) > 0 {
		iterations++
		var next []State

		for _, s := range stack {
			outcome, err := SolveOption(cat, clues, s)
			if err != nil {
				return Result{}, err
			}
			switch outcome {
			case OutcomeSolved:
				solutions = append(solutions, s.M)
			case OutcomeQuiescent:
				next = append(next, Branch(cat, s)...)
			default:
				// OutcomeInvalidCoverage / OutcomeInvalidClue: drop silently.
			}
		}

		stack = next
	}

	return Result{
		Done:       len(stack) == 0,
		Stack:      stack,
		Solutions:  solutions,
		Iterations: iterations,
		Options:    len(stack),
	}, nil
}
