package eval

import (
	"fmt"
	"strconv"

	"github.com/tomas-macha/zebra/internal/ast"
	"github.com/tomas-macha/zebra/internal/matrix"
	"github.com/tomas-macha/zebra/internal/puzzle"
	"github.com/tomas-macha/zebra/internal/resolve"
)

// Eval reduces an arithmetic node to a definite integer, or reports ok=false
// if the value is not yet determined by m. d is the current dynamic binding
// for any "$" reached inside n. memo caches results within one top-level
// Eval/Check call so shared subexpressions (notably inside TruthsOperator)
// are not recomputed.
func Eval(n *ast.Node, m *matrix.Matrix, cat *puzzle.Catalog, d int, memo *Memo) (int, bool, error) {
	if v, ok, hit := memo.getArith(n); hit {
		return v, ok, nil
	}
	val, ok, err := evalUncached(n, m, cat, d, memo)
	if err != nil {
		return 0, false, err
	}
	memo.putArith(n, val, ok)
	return val, ok, nil
}

func evalUncached(n *ast.Node, m *matrix.Matrix, cat *puzzle.Catalog, d int, memo *Memo) (int, bool, error) {
	switch n.Kind {
	case ast.KindNumericLiteral:
		return n.Value, true, nil

	case ast.KindNumericIdentifier:
		return evalNumericIdentifier(n, m, cat, d)

	case ast.KindArithmeticBinary:
		l, lok, err := Eval(n.Left, m, cat, d, memo)
		if err != nil {
			return 0, false, err
		}
		r, rok, err := Eval(n.Right, m, cat, d, memo)
		if err != nil {
			return 0, false, err
		}
		if !lok || !rok {
			return 0, false, nil
		}
		return applyArith(n.Op, l, r)

	case ast.KindTruths:
		count := 0
		for _, elem := range n.Nary {
			ok, err := Check(elem, m, cat, d, memo)
			if err != nil {
				return 0, false, err
			}
			if ok {
				count++
			}
		}
		return count, true, nil

	default:
		return 0, false, fmt.Errorf("eval: node kind %v does not evaluate to an arithmetic value", n.Kind)
	}
}

// evalNumericIdentifier implements "x:cat": find the row for symbol x, then
// for every position still possible for that row, determine which item of
// category cat is the unique possibility at that position. If every
// surviving pairing yields the same integer, that integer is returned;
// otherwise the value is undetermined.
func evalNumericIdentifier(n *ast.Node, m *matrix.Matrix, cat *puzzle.Catalog, d int) (int, bool, error) {
	row, err := resolve.Row(cat, n.Symbol, d)
	if err != nil {
		return 0, false, err
	}
	catRows, err := cat.RowsOf(n.Category)
	if err != nil {
		return 0, false, err
	}
	catItems, err := cat.Items(n.Category)
	if err != nil {
		return 0, false, err
	}

	result, have := 0, false
	determined := true
	m.Iterate(row, func(pos int) {
		if !determined {
			return
		}
		matches, matchVal := 0, 0
		for i, cr := range catRows {
			if m.Possible(cr, pos) {
				matches++
				if matches == 1 {
					v, cerr := strconv.Atoi(catItems[i])
					if cerr != nil {
						determined = false
						return
					}
					matchVal = v
				}
			}
		}
		if matches != 1 {
			determined = false
			return
		}
		if !have {
			result, have = matchVal, true
			return
		}
		if matchVal != result {
			determined = false
		}
	})

	if !determined || !have {
		return 0, false, nil
	}
	return result, true, nil
}

func applyArith(op ast.Op, l, r int) (int, bool, error) {
	switch op {
	case ast.OpAdd:
		return l + r, true, nil
	case ast.OpSub:
		return l - r, true, nil
	case ast.OpMul:
		return l * r, true, nil
	case ast.OpDiv:
		if r == 0 {
			return 0, false, nil
		}
		return l / r, true, nil
	case ast.OpMod:
		if r == 0 {
			return 0, false, nil
		}
		return l % r, true, nil
	case ast.OpDiff:
		if l > r {
			return l - r, true, nil
		}
		return r - l, true, nil
	default:
		return 0, false, fmt.Errorf("eval: unknown arithmetic operator %v", op)
	}
}
