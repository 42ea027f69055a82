package search

import (
	"github.com/tomas-macha/zebra/internal/ast"
	"github.com/tomas-macha/zebra/internal/elim"
	"github.com/tomas-macha/zebra/internal/eval"
	"github.com/tomas-macha/zebra/internal/matrix"
	"github.com/tomas-macha/zebra/internal/propagate"
	"github.com/tomas-macha/zebra/internal/puzzle"
)

// SolveOption runs one branch to a fixed point: repeated propagation and
// subset elimination sweeps until the matrix stops changing, then validates
// coverage, checks for a fully-determined solution, and finally verifies
// every clue against it.
func SolveOption(cat *puzzle.Catalog, clues []*ast.Node, s State) (Outcome, error) {
	for {
		snapshot := s.M.Clone()

		for _, c := range clues {
			if err := propagate.Clue(c, s.M, cat); err != nil {
				return 0, err
			}
		}
		elim.Eliminate(cat, s.M)

		if s.M.Equal(snapshot) {
			break
		}
	}

	if !coverageOK(cat, s.M) {
		return OutcomeInvalidCoverage, nil
	}

	if !allDetermined(cat, s.M) {
		return OutcomeQuiescent, nil
	}

	for _, c := range clues {
		ok, err := verifyClue(c, s.M, cat)
		if err != nil {
			return 0, err
		}
		if !ok {
			return OutcomeInvalidClue, nil
		}
	}

	return OutcomeSolved, nil
}

func coverageOK(cat *puzzle.Catalog, m *matrix.Matrix) bool {
	for _, name := range cat.StrictCategories() {
		rows, err := cat.RowsOf(name)
		if err != nil {
			continue
		}
		for _, r := range rows {
			if m.Empty(r) {
				return false
			}
		}
		for p := 0; p < m.N(); p++ {
			covered := false
			for _, r := range rows {
				if m.Possible(r, p) {
					covered = true
					break
				}
			}
			if !covered {
				return false
			}
		}
	}
	return true
}

func allDetermined(cat *puzzle.Catalog, m *matrix.Matrix) bool {
	for row := 0; row < cat.NumRows(); row++ {
		name := cat.CategoryOf(row)
		cnt := m.Count(row)
		if cat.IsGreat(name) {
			if cnt > 1 {
				return false
			}
		} else if cnt != 1 {
			return false
		}
	}
	return true
}

func verifyClue(n *ast.Node, m *matrix.Matrix, cat *puzzle.Catalog) (bool, error) {
	if n.HasDollar() {
		for d := 1; d <= cat.N; d++ {
			memo := eval.NewMemo()
			ok, err := eval.Check(n, m, cat, d, memo)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}
	memo := eval.NewMemo()
	return eval.Check(n, m, cat, 0, memo)
}
