package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomas-macha/zebra/internal/ast"
	"github.com/tomas-macha/zebra/internal/eval"
	"github.com/tomas-macha/zebra/internal/puzzle"
)

func newTestCatalog(t *testing.T) *puzzle.Catalog {
	t.Helper()
	cat, err := puzzle.NewCatalog([]puzzle.CategoryDef{
		{Name: "name", Items: []string{"alice", "bob", "carol"}},
		{Name: "age", Items: []string{"10", "20", "30"}},
	})
	require.NoError(t, err)
	return cat
}

func TestEvalArithmeticLiteralsAndOps(t *testing.T) {
	cat := newTestCatalog(t)
	m := cat.NewMatrix()
	memo := eval.NewMemo()

	n := ast.ArithBinary(ast.OpAdd, ast.IntLit(3), ast.IntLit(4))
	v, ok, err := eval.Eval(n, m, cat, 0, memo)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 7, v)

	div := ast.ArithBinary(ast.OpDiv, ast.IntLit(7), ast.IntLit(2))
	v, ok, err = eval.Eval(div, m, cat, 0, memo)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 3, v, "division truncates toward zero")

	diff := ast.ArithBinary(ast.OpDiff, ast.IntLit(2), ast.IntLit(9))
	v, ok, err = eval.Eval(diff, m, cat, 0, memo)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 7, v, "diff is the absolute difference regardless of operand order")
}

func TestEvalDivisionByZeroIsUndetermined(t *testing.T) {
	cat := newTestCatalog(t)
	m := cat.NewMatrix()
	memo := eval.NewMemo()

	n := ast.ArithBinary(ast.OpDiv, ast.IntLit(5), ast.IntLit(0))
	_, ok, err := eval.Eval(n, m, cat, 0, memo)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEvalNumericIdentifierRequiresPairedSingleton(t *testing.T) {
	cat := newTestCatalog(t)
	m := cat.NewMatrix()
	memo := eval.NewMemo()

	aliceRow, ok := cat.RowID("name.alice")
	require.True(t, ok)

	// Fully unconstrained: alice could be paired with any age, undetermined.
	n := ast.NumericIdent("alice", "age")
	_, ok, err := eval.Eval(n, m, cat, 0, memo)
	require.NoError(t, err)
	require.False(t, ok)

	// Pin alice to position 0 and age "20" to position 0: now determined.
	m.ClearOnly(aliceRow, 0)
	ageRows, err := cat.RowsOf("age")
	require.NoError(t, err)
	m.ClearOnly(ageRows[1], 0) // "20"
	m.Clear(ageRows[0], 0)
	m.Clear(ageRows[2], 0)

	memo2 := eval.NewMemo()
	v, ok, err := eval.Eval(n, m, cat, 0, memo2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 20, v)
}

func TestCheckPositionalSamePos(t *testing.T) {
	cat := newTestCatalog(t)
	m := cat.NewMatrix()
	memo := eval.NewMemo()

	aliceRow, _ := cat.RowID("name.alice")
	ageRows, err := cat.RowsOf("age")
	require.NoError(t, err)

	m.ClearOnly(aliceRow, 1)
	m.ClearOnly(ageRows[0], 1) // "10" at position 1

	n := ast.Positional(ast.OpSamePos, 0, ast.Ident("alice"), ast.Ident("10"))
	ok, err := eval.Check(n, m, cat, 0, memo)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCheckPositionalConservativeWhenUndetermined(t *testing.T) {
	cat := newTestCatalog(t)
	m := cat.NewMatrix()
	memo := eval.NewMemo()

	n := ast.Positional(ast.OpSamePos, 0, ast.Ident("alice"), ast.Ident("10"))
	ok, err := eval.Check(n, m, cat, 0, memo)
	require.NoError(t, err)
	require.True(t, ok, "undetermined positions conservatively check true")
}

func TestCheckLogicalAndOr(t *testing.T) {
	cat := newTestCatalog(t)
	m := cat.NewMatrix()
	memo := eval.NewMemo()

	aliceRow, _ := cat.RowID("name.alice")
	m.ClearOnly(aliceRow, 0)

	truePos := ast.Positional(ast.OpSamePos, 0, ast.Ident("alice"), ast.Ident("#1"))
	falsePos := ast.Positional(ast.OpSamePos, 0, ast.Ident("alice"), ast.Ident("#2"))

	and := ast.NaryLogical(ast.OpAnd, truePos, falsePos)
	ok, err := eval.Check(and, m, cat, 0, memo)
	require.NoError(t, err)
	require.False(t, ok)

	or := ast.NaryLogical(ast.OpOr, truePos, falsePos)
	ok, err = eval.Check(or, m, cat, 0, memo)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCheckInIdentifierSetConservativeWhenAnyMemberUndetermined(t *testing.T) {
	cat := newTestCatalog(t)
	m := cat.NewMatrix()
	memo := eval.NewMemo()

	// alice is pinned to column 0; bob is pinned to a position that does not
	// match alice, but carol is left fully open. One
	// determined-and-non-matching member plus one undetermined member must
	// still conservatively check true, not false.
	aliceRow, _ := cat.RowID("name.alice")
	bobRow, _ := cat.RowID("name.bob")
	m.ClearOnly(aliceRow, 0)
	m.ClearOnly(bobRow, 1)

	n := ast.In(ast.Ident("alice"), ast.Set(ast.Ident("bob"), ast.Ident("carol")))
	ok, err := eval.Check(n, m, cat, 0, memo)
	require.NoError(t, err)
	require.True(t, ok, "an undetermined set member must force conservative true, even when another member is determined and non-matching")
}

func TestCheckInIdentifierSetTrueWhenAnyDeterminedMemberMatches(t *testing.T) {
	cat := newTestCatalog(t)
	m := cat.NewMatrix()
	memo := eval.NewMemo()

	aliceRow, _ := cat.RowID("name.alice")
	bobRow, _ := cat.RowID("name.bob")
	m.ClearOnly(aliceRow, 0)
	m.ClearOnly(bobRow, 0)

	n := ast.In(ast.Ident("alice"), ast.Set(ast.Ident("bob"), ast.Ident("carol")))
	ok, err := eval.Check(n, m, cat, 0, memo)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCheckInIdentifierSetFalseWhenAllMembersDeterminedAndNoneMatch(t *testing.T) {
	cat := newTestCatalog(t)
	m := cat.NewMatrix()
	memo := eval.NewMemo()

	aliceRow, _ := cat.RowID("name.alice")
	bobRow, _ := cat.RowID("name.bob")
	carolRow, _ := cat.RowID("name.carol")
	m.ClearOnly(aliceRow, 0)
	m.ClearOnly(bobRow, 1)
	m.ClearOnly(carolRow, 2)

	n := ast.In(ast.Ident("alice"), ast.Set(ast.Ident("bob"), ast.Ident("carol")))
	ok, err := eval.Check(n, m, cat, 0, memo)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCheckInArithmeticSet(t *testing.T) {
	cat := newTestCatalog(t)
	m := cat.NewMatrix()
	memo := eval.NewMemo()

	aliceRow, _ := cat.RowID("name.alice")
	ageRows, err := cat.RowsOf("age")
	require.NoError(t, err)

	// Pin alice to the same position as age "20", so alice:age evaluates to
	// the determinate value 20.
	m.ClearOnly(aliceRow, 0)
	m.ClearOnly(ageRows[1], 0) // "20"
	m.Clear(ageRows[0], 0)
	m.Clear(ageRows[2], 0)

	n := ast.In(ast.NumericIdent("alice", "age"), ast.Set(ast.IntLit(10), ast.IntLit(20)))
	ok, err := eval.Check(n, m, cat, 0, memo)
	require.NoError(t, err)
	require.True(t, ok)

	n2 := ast.In(ast.NumericIdent("alice", "age"), ast.Set(ast.IntLit(10), ast.IntLit(30)))
	ok, err = eval.Check(n2, m, cat, 0, eval.NewMemo())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCheckInArithmeticSetConservativeWhenLeftUndetermined(t *testing.T) {
	cat := newTestCatalog(t)
	m := cat.NewMatrix()
	memo := eval.NewMemo()

	n := ast.In(ast.NumericIdent("alice", "age"), ast.Set(ast.IntLit(10), ast.IntLit(20)))
	ok, err := eval.Check(n, m, cat, 0, memo)
	require.NoError(t, err)
	require.True(t, ok, "an undetermined numeric identifier must conservatively check true")
}

func TestCheckInArithmeticRange(t *testing.T) {
	cat := newTestCatalog(t)
	m := cat.NewMatrix()
	memo := eval.NewMemo()

	aliceRow, _ := cat.RowID("name.alice")
	ageRows, err := cat.RowsOf("age")
	require.NoError(t, err)

	m.ClearOnly(aliceRow, 0)
	m.ClearOnly(ageRows[1], 0) // "20"
	m.Clear(ageRows[0], 0)
	m.Clear(ageRows[2], 0)

	inRange := ast.In(ast.NumericIdent("alice", "age"), ast.Range(ast.IntLit(10), ast.IntLit(25)))
	ok, err := eval.Check(inRange, m, cat, 0, memo)
	require.NoError(t, err)
	require.True(t, ok)

	outOfRange := ast.In(ast.NumericIdent("alice", "age"), ast.Range(ast.IntLit(21), ast.IntLit(25)))
	ok, err = eval.Check(outOfRange, m, cat, 0, eval.NewMemo())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCheckInArithmeticRangeConservativeWhenUndetermined(t *testing.T) {
	cat := newTestCatalog(t)
	m := cat.NewMatrix()
	memo := eval.NewMemo()

	n := ast.In(ast.NumericIdent("alice", "age"), ast.Range(ast.IntLit(10), ast.IntLit(25)))
	ok, err := eval.Check(n, m, cat, 0, memo)
	require.NoError(t, err)
	require.True(t, ok, "an undetermined operand on either side of a range check must conservatively check true")
}

func TestEvalTruthsCountsHoldingClues(t *testing.T) {
	cat := newTestCatalog(t)
	m := cat.NewMatrix()
	memo := eval.NewMemo()

	aliceRow, _ := cat.RowID("name.alice")
	m.ClearOnly(aliceRow, 0)

	truePos := ast.Positional(ast.OpSamePos, 0, ast.Ident("alice"), ast.Ident("#1"))
	falsePos := ast.Positional(ast.OpSamePos, 0, ast.Ident("alice"), ast.Ident("#2"))

	truths := ast.Truths(truePos, falsePos, truePos)
	v, ok, err := eval.Eval(truths, m, cat, 0, memo)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, v)
}
