// Package solver is the public entry point to the constraint core: it wires
// together a category catalog and a clue list into a Puzzle, and exposes
// Solve, the resumable branching search.
package solver

import (
	"github.com/tomas-macha/zebra/internal/ast"
	"github.com/tomas-macha/zebra/internal/puzzle"
	"github.com/tomas-macha/zebra/internal/search"
)

// Puzzle bundles a validated category catalog with its clue list.
type Puzzle struct {
	Catalog *puzzle.Catalog
	Clues   []*ast.Node
}

// New validates defs and clues into a Puzzle, surfacing construction
// failures (puzzle.ErrNoCategories, *puzzle.MismatchedCategorySizeError)
// before any search begins.
func New(defs []puzzle.CategoryDef, clues []*ast.Node) (*Puzzle, error) {
	cat, err := puzzle.NewCatalog(defs)
	if err != nil {
		return nil, err
	}
	return &Puzzle{Catalog: cat, Clues: clues}, nil
}

// Result mirrors search.Result at the public API boundary.
type Result = search.Result

// Solve runs the branching search for up to maxIterations waves. If
// resumeStack is non-empty, it replaces the fresh initial state the search
// would otherwise build; pass nil to start a new search.
func (p *Puzzle) Solve(maxIterations int, resumeStack []search.State) (Result, error) {
	initial := resumeStack
	if len(initial) == 0 {
		initial = []search.State{{M: p.Catalog.NewMatrix()}}
	}
	return search.Run(p.Catalog, p.Clues, initial, maxIterations)
}

// RowKey returns the fully-qualified row key for a dense row index, for
// callers that need to render a solution.
func (p *Puzzle) RowKey(row int) puzzle.RowKey { return p.Catalog.RowKeyOf(row) }
