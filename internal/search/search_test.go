package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomas-macha/zebra/internal/puzzle"
	"github.com/tomas-macha/zebra/internal/search"
	"github.com/tomas-macha/zebra/internal/zbc"
)

func TestSolveOptionReachesSolvedOnFullyPinnedMatrix(t *testing.T) {
	defs, clues, err := zbc.Parse(`categories:
  fruit: apple, banana, cherry

clues:
  apple = #1
  banana = #2
  cherry = #3
`)
	require.NoError(t, err)
	cat, err := puzzle.NewCatalog(defs)
	require.NoError(t, err)

	s := search.State{M: cat.NewMatrix()}
	outcome, err := search.SolveOption(cat, clues, s)
	require.NoError(t, err)
	require.Equal(t, search.OutcomeSolved, outcome)
}

func TestSolveOptionReportsInvalidCoverageOnContradiction(t *testing.T) {
	defs, clues, err := zbc.Parse(`categories:
  fruit: apple, banana, cherry

clues:
  apple = #1
  banana = #1
`)
	require.NoError(t, err)
	cat, err := puzzle.NewCatalog(defs)
	require.NoError(t, err)

	s := search.State{M: cat.NewMatrix()}
	outcome, err := search.SolveOption(cat, clues, s)
	require.NoError(t, err)
	require.Equal(t, search.OutcomeInvalidCoverage, outcome)
}

func TestSolveOptionQuiescentWhenUnderConstrained(t *testing.T) {
	defs, clues, err := zbc.Parse(`categories:
  cat1: a, b, c
  cat2: x, y, z

clues:
  a = x
`)
	require.NoError(t, err)
	cat, err := puzzle.NewCatalog(defs)
	require.NoError(t, err)

	s := search.State{M: cat.NewMatrix()}
	outcome, err := search.SolveOption(cat, clues, s)
	require.NoError(t, err)
	require.Equal(t, search.OutcomeQuiescent, outcome)
}

func TestBranchSplitsOnMostConstrainedCellAndCoversEveryCandidate(t *testing.T) {
	defs, _, err := zbc.Parse(`categories:
  fruit: apple, banana

clues:
`)
	require.NoError(t, err)
	cat, err := puzzle.NewCatalog(defs)
	require.NoError(t, err)

	rows, err := cat.RowsOf("fruit")
	require.NoError(t, err)
	apple, banana := rows[0], rows[1]

	// A fresh 2-item category is already a count-2 branch cell at every
	// column; the "#" category is excluded since it's already singleton.
	children := search.Branch(cat, search.State{M: cat.NewMatrix()})
	require.Len(t, children, 2)

	var sawAppleChosen, sawBananaChosen bool
	for _, child := range children {
		appleAt0 := child.M.Possible(apple, 0)
		bananaAt0 := child.M.Possible(banana, 0)
		require.NotEqual(t, appleAt0, bananaAt0, "exactly one candidate keeps column 0 per child")
		if appleAt0 {
			sawAppleChosen = true
		}
		if bananaAt0 {
			sawBananaChosen = true
		}
	}
	require.True(t, sawAppleChosen)
	require.True(t, sawBananaChosen)
}

func TestBranchReturnsNoChildrenWhenFullyDetermined(t *testing.T) {
	defs, clues, err := zbc.Parse(`categories:
  fruit: apple, banana, cherry

clues:
  apple = #1
  banana = #2
  cherry = #3
`)
	require.NoError(t, err)
	cat, err := puzzle.NewCatalog(defs)
	require.NoError(t, err)

	s := search.State{M: cat.NewMatrix()}
	outcome, err := search.SolveOption(cat, clues, s)
	require.NoError(t, err)
	require.Equal(t, search.OutcomeSolved, outcome)

	children := search.Branch(cat, s)
	require.Empty(t, children)
}

func TestRunSolvesClassicUnderConstrainedPuzzleAcrossWaves(t *testing.T) {
	defs, clues, err := zbc.Parse(`categories:
  cat1: a, b, c
  cat2: x, y, z

clues:
  a = x
`)
	require.NoError(t, err)
	cat, err := puzzle.NewCatalog(defs)
	require.NoError(t, err)

	initial := search.State{M: cat.NewMatrix()}
	result, err := search.Run(cat, clues, []search.State{initial}, 200)
	require.NoError(t, err)
	require.True(t, result.Done)
	require.Len(t, result.Solutions, 12)
}
