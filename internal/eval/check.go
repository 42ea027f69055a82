package eval

import (
	"fmt"

	"github.com/tomas-macha/zebra/internal/ast"
	"github.com/tomas-macha/zebra/internal/matrix"
	"github.com/tomas-macha/zebra/internal/puzzle"
	"github.com/tomas-macha/zebra/internal/resolve"
)

// Check evaluates a logical clue node against m, returning true if it
// currently holds, false if it currently and definitely fails, and true
// (conservatively) if it is under-determined. Two internal sentinel
// conditions -- a row with no true cell (a contradiction the fixed-point
// loop will separately catch) and a row with more than one true cell (not
// yet pinned down) -- both fold into the conservative "true", so callers
// never see them as distinct outcomes.
func Check(n *ast.Node, m *matrix.Matrix, cat *puzzle.Catalog, d int, memo *Memo) (bool, error) {
	if v, hit := memo.getCheck(n); hit {
		return v, nil
	}
	v, err := checkUncached(n, m, cat, d, memo)
	if err != nil {
		return false, err
	}
	memo.putCheck(n, v)
	return v, nil
}

func checkUncached(n *ast.Node, m *matrix.Matrix, cat *puzzle.Catalog, d int, memo *Memo) (bool, error) {
	switch n.Kind {
	case ast.KindLogicalUnary:
		child, err := Check(n.Left, m, cat, d, memo)
		if err != nil {
			return false, err
		}
		return !child, nil

	case ast.KindLogicalBinary:
		a, err := Check(n.Left, m, cat, d, memo)
		if err != nil {
			return false, err
		}
		b, err := Check(n.Right, m, cat, d, memo)
		if err != nil {
			return false, err
		}
		return applyLogicalBinary(n.Op, a, b), nil

	case ast.KindLogicalNary:
		return checkNary(n, m, cat, d, memo)

	case ast.KindRelational:
		l, lok, err := Eval(n.Left, m, cat, d, memo)
		if err != nil {
			return false, err
		}
		r, rok, err := Eval(n.Right, m, cat, d, memo)
		if err != nil {
			return false, err
		}
		if !lok || !rok {
			return true, nil // conservative
		}
		return applyRelational(n.Op, l, r), nil

	case ast.KindPositional:
		return checkPositional(n, m, cat, d)

	case ast.KindIn:
		return checkIn(n, m, cat, d, memo)

	default:
		return false, fmt.Errorf("eval: node kind %v is not a logical clue", n.Kind)
	}
}

func applyLogicalBinary(op ast.Op, a, b bool) bool {
	switch op {
	case ast.OpAnd:
		return a && b
	case ast.OpOr:
		return a || b
	case ast.OpXor:
		return a != b
	case ast.OpIff:
		return a == b
	case ast.OpImplies:
		return !a || b
	default:
		return true
	}
}

func checkNary(n *ast.Node, m *matrix.Matrix, cat *puzzle.Catalog, d int, memo *Memo) (bool, error) {
	switch n.Op {
	case ast.OpAnd:
		for _, c := range n.Nary {
			v, err := Check(c, m, cat, d, memo)
			if err != nil {
				return false, err
			}
			if !v {
				return false, nil
			}
		}
		return true, nil
	case ast.OpOr:
		for _, c := range n.Nary {
			v, err := Check(c, m, cat, d, memo)
			if err != nil {
				return false, err
			}
			if v {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("eval: unknown n-ary logical operator %v", n.Op)
	}
}

func applyRelational(op ast.Op, l, r int) bool {
	switch op {
	case ast.OpEq:
		return l == r
	case ast.OpNeq:
		return l != r
	case ast.OpLt:
		return l < r
	case ast.OpLte:
		return l <= r
	case ast.OpGt:
		return l > r
	case ast.OpGte:
		return l >= r
	default:
		return true
	}
}

// singletonOrConservative reports the sole possible position for row and
// true if there is exactly one. Both sentinel conditions ("no true cell",
// "multiple true cells") return ok=false, telling the caller to treat the
// clue as conservatively true.
func singletonOrConservative(m *matrix.Matrix, row int) (int, bool) {
	return m.Singleton(row)
}

func checkPositional(n *ast.Node, m *matrix.Matrix, cat *puzzle.Catalog, d int) (bool, error) {
	if n.Left.Kind != ast.KindIdentifier || n.Right.Kind != ast.KindIdentifier {
		return false, &InvalidPositionalOperandError{Detail: "positional operands must be identifiers"}
	}
	rowA, err := resolve.Row(cat, n.Left.Symbol, d)
	if err != nil {
		return false, err
	}
	rowB, err := resolve.Row(cat, n.Right.Symbol, d)
	if err != nil {
		return false, err
	}
	posA, okA := singletonOrConservative(m, rowA)
	posB, okB := singletonOrConservative(m, rowB)
	if !okA || !okB {
		return true, nil
	}
	switch n.Op {
	case ast.OpSamePos:
		return posA == posB, nil
	case ast.OpLeftOf:
		k := n.Distance
		if k == 0 {
			k = 1
		}
		return posB-posA == k, nil
	case ast.OpStrictLeftOf:
		return posA < posB, nil
	default:
		return false, fmt.Errorf("eval: unknown positional operator %v", n.Op)
	}
}

func checkIn(n *ast.Node, m *matrix.Matrix, cat *puzzle.Catalog, d int, memo *Memo) (bool, error) {
	left := n.Left
	right := n.Right

	if right.Kind == ast.KindRangeLiteral {
		if left.Returns != ast.ReturnsArithmetic {
			return false, &SetRequiresArithmeticError{Detail: "range membership requires an arithmetic left operand"}
		}
		v, ok, err := Eval(left, m, cat, d, memo)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		start, ok, err := Eval(right.Left, m, cat, d, memo)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		end, ok, err := Eval(right.Right, m, cat, d, memo)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		return start <= v && v <= end, nil
	}

	if right.Kind != ast.KindSetLiteral {
		return false, fmt.Errorf("eval: unsupported 'in' right operand kind %v", right.Kind)
	}

	if left.Kind == ast.KindIdentifier {
		return checkInIdentifierSet(left, right, m, cat, d)
	}

	if left.Returns == ast.ReturnsArithmetic {
		v, ok, err := Eval(left, m, cat, d, memo)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		for _, elem := range right.Nary {
			if elem.Returns != ast.ReturnsArithmetic {
				return false, &SetRequiresArithmeticError{Detail: "arithmetic 'in' set must contain only arithmetic members"}
			}
			ev, ok, err := Eval(elem, m, cat, d, memo)
			if err != nil {
				return false, err
			}
			if !ok {
				return true, nil
			}
			if ev == v {
				return true, nil
			}
		}
		return false, nil
	}

	return false, &SetRequiresArithmeticError{Detail: "unsupported 'in' left operand kind"}
}

func checkInIdentifierSet(left, right *ast.Node, m *matrix.Matrix, cat *puzzle.Catalog, d int) (bool, error) {
	rowL, err := resolve.Row(cat, left.Symbol, d)
	if err != nil {
		return false, err
	}
	posL, okL := singletonOrConservative(m, rowL)
	if !okL {
		return true, nil
	}
	for _, elem := range right.Nary {
		if elem.Kind != ast.KindIdentifier {
			return false, &SetRequiresArithmeticError{Detail: "identifier 'in' set must contain only identifiers"}
		}
		rowE, err := resolve.Row(cat, elem.Symbol, d)
		if err != nil {
			return false, err
		}
		posE, okE := singletonOrConservative(m, rowE)
		if !okE {
			return true, nil // conservative
		}
		if posE == posL {
			return true, nil
		}
	}
	return false, nil
}
