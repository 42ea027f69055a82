// Package propagate implements the clue propagator: per-operator rules that
// soundly and monotonically narrow a possibility matrix given one clue.
// Rules are not required to be complete; internal/elim and internal/search
// layer additional narrowing and search on top.
package propagate

import (
	"strconv"

	"github.com/tomas-macha/zebra/internal/ast"
	"github.com/tomas-macha/zebra/internal/elim"
	"github.com/tomas-macha/zebra/internal/eval"
	"github.com/tomas-macha/zebra/internal/matrix"
	"github.com/tomas-macha/zebra/internal/puzzle"
	"github.com/tomas-macha/zebra/internal/resolve"
)

// Clue narrows m in place according to the clue rooted at n. If n mentions
// "$", it is expanded and propagated once per dynamic binding d in [1, N];
// otherwise it is propagated once (d is unused in that case).
func Clue(n *ast.Node, m *matrix.Matrix, cat *puzzle.Catalog) error {
	if n.HasDollar() {
		for d := 1; d <= cat.N; d++ {
			if err := one(n, m, cat, d); err != nil {
				return err
			}
		}
		return nil
	}
	return one(n, m, cat, 0)
}

func one(n *ast.Node, m *matrix.Matrix, cat *puzzle.Catalog, d int) error {
	switch n.Kind {
	case ast.KindPositional:
		return positional(n, m, cat, d)

	case ast.KindLogicalBinary:
		if n.Op == ast.OpAnd {
			if err := one(n.Left, m, cat, d); err != nil {
				return err
			}
			return one(n.Right, m, cat, d)
		}
		if n.Op == ast.OpOr {
			return disjunction([]*ast.Node{n.Left, n.Right}, m, cat, d)
		}
		return nil

	case ast.KindLogicalNary:
		if n.Op == ast.OpAnd {
			for _, c := range n.Nary {
				if err := one(c, m, cat, d); err != nil {
					return err
				}
			}
			return nil
		}
		if n.Op == ast.OpOr {
			return disjunction(n.Nary, m, cat, d)
		}
		return nil

	case ast.KindIn:
		return inOperator(n, m, cat, d)

	case ast.KindRelational:
		return relational(n, m, cat, d)

	default:
		return nil // no propagation rule for this operator
	}
}

func positional(n *ast.Node, m *matrix.Matrix, cat *puzzle.Catalog, d int) error {
	if n.Left.Kind != ast.KindIdentifier || n.Right.Kind != ast.KindIdentifier {
		return nil
	}
	a, err := resolve.Row(cat, n.Left.Symbol, d)
	if err != nil {
		return err
	}
	b, err := resolve.Row(cat, n.Right.Symbol, d)
	if err != nil {
		return err
	}

	switch n.Op {
	case ast.OpSamePos:
		aPos := snapshot(m, a)
		bPos := snapshot(m, b)
		for p := 0; p < m.N(); p++ {
			if !bPos[p] {
				m.Clear(a, p)
			}
			if !aPos[p] {
				m.Clear(b, p)
			}
		}

	case ast.OpLeftOf:
		k := n.Distance
		if k == 0 {
			k = 1
		}
		aPos := snapshot(m, a)
		bPos := snapshot(m, b)
		n_ := m.N()
		for p := 0; p < n_-k; p++ {
			ok := aPos[p] && bPos[p+k]
			if !ok {
				m.Clear(a, p)
				m.Clear(b, p+k)
			}
		}
		for p := n_ - k; p < n_; p++ {
			m.Clear(a, p)
		}
		for p := 0; p < k; p++ {
			m.Clear(b, p)
		}

	case ast.OpStrictLeftOf:
		n_ := m.N()
		firstA := -1
		for p := 0; p < n_; p++ {
			if m.Possible(a, p) {
				firstA = p
				break
			}
			m.Clear(b, p)
		}
		lastB := -1
		for p := n_ - 1; p >= 0; p-- {
			if m.Possible(b, p) {
				lastB = p
				break
			}
			m.Clear(a, p)
		}
		_ = firstA
		_ = lastB
	}
	return nil
}

func snapshot(m *matrix.Matrix, row int) []bool {
	out := make([]bool, m.N())
	for p := 0; p < m.N(); p++ {
		out[p] = m.Possible(row, p)
	}
	return out
}

func disjunction(disjuncts []*ast.Node, m *matrix.Matrix, cat *puzzle.Catalog, d int) error {
	if len(disjuncts) == 0 {
		return nil
	}
	branches := make([]*matrix.Matrix, 0, len(disjuncts))
	for _, disj := range disjuncts {
		bm := m.Clone()
		if err := one(disj, bm, cat, d); err != nil {
			return err
		}
		elim.Eliminate(cat, bm)
		branches = append(branches, bm)
	}
	for row := 0; row < m.Rows(); row++ {
		matrix.IntersectWithUnion(m, row, branches)
	}
	return nil
}

func inOperator(n *ast.Node, m *matrix.Matrix, cat *puzzle.Catalog, d int) error {
	if n.Left.Kind != ast.KindIdentifier || n.Right.Kind != ast.KindSetLiteral {
		return nil
	}
	x, err := resolve.Row(cat, n.Left.Symbol, d)
	if err != nil {
		return err
	}
	union := make([]bool, m.N())
	for _, elem := range n.Right.Nary {
		if elem.Kind != ast.KindIdentifier {
			return nil // mixed-kind set: no propagation rule, checker handles/rejects
		}
		row, err := resolve.Row(cat, elem.Symbol, d)
		if err != nil {
			return err
		}
		for p := 0; p < m.N(); p++ {
			if m.Possible(row, p) {
				union[p] = true
			}
		}
	}
	for p := 0; p < m.N(); p++ {
		if !union[p] {
			m.Clear(x, p)
		}
	}
	return nil
}

func relational(n *ast.Node, m *matrix.Matrix, cat *puzzle.Catalog, d int) error {
	numIdent, other, flipped := findSingletonNumericIdentifier(n, m, cat, d)
	if numIdent == nil {
		return nil
	}
	memo := eval.NewMemo()
	r, ok, err := eval.Eval(other, m, cat, d, memo)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	row, err := resolve.Row(cat, numIdent.Symbol, d)
	if err != nil {
		return err
	}
	pos, singleton := m.Singleton(row)
	if !singleton {
		return nil
	}

	items, err := cat.Items(numIdent.Category)
	if err != nil {
		return err
	}
	rows, err := cat.RowsOf(numIdent.Category)
	if err != nil {
		return err
	}

	op := n.Op
	if flipped {
		op = flipRelational(op)
	}

	for i, item := range items {
		v, cerr := strconv.Atoi(item)
		if cerr != nil {
			continue
		}
		if !relOK(op, v, r) {
			m.Clear(rows[i], pos)
		}
	}
	return nil
}

// findSingletonNumericIdentifier returns the NumericIdentifier side of n (if
// any) whose row is already a singleton, the other side, and whether the
// NumericIdentifier was the right-hand operand (in which case the operator
// must be applied in flipped orientation, e.g. "10 < x:age" flips to ">").
func findSingletonNumericIdentifier(n *ast.Node, m *matrix.Matrix, cat *puzzle.Catalog, d int) (numIdent, other *ast.Node, flipped bool) {
	if n.Left.Kind == ast.KindNumericIdentifier {
		if row, err := resolve.Row(cat, n.Left.Symbol, d); err == nil {
			if _, ok := m.Singleton(row); ok {
				return n.Left, n.Right, false
			}
		}
	}
	if n.Right.Kind == ast.KindNumericIdentifier {
		if row, err := resolve.Row(cat, n.Right.Symbol, d); err == nil {
			if _, ok := m.Singleton(row); ok {
				return n.Right, n.Left, true
			}
		}
	}
	return nil, nil, false
}

func flipRelational(op ast.Op) ast.Op {
	switch op {
	case ast.OpLt:
		return ast.OpGt
	case ast.OpLte:
		return ast.OpGte
	case ast.OpGt:
		return ast.OpLt
	case ast.OpGte:
		return ast.OpLte
	default:
		return op
	}
}

func relOK(op ast.Op, v, r int) bool {
	switch op {
	case ast.OpEq:
		return v == r
	case ast.OpNeq:
		return v != r
	case ast.OpLt:
		return v < r
	case ast.OpLte:
		return v <= r
	case ast.OpGt:
		return v > r
	case ast.OpGte:
		return v >= r
	default:
		return true
	}
}
