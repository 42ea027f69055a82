package eval

import "github.com/tomas-macha/zebra/internal/ast"

// Memo caches per-node results for the lifetime of a single Eval/Check root
// call, keyed by AST node identity, so the AST itself stays immutable and
// safe to share read-only across every branch. A fresh Memo is created by
// the caller for every top-level evaluation, so results never leak across
// branches or across matrix mutations between fixed-point sweeps.
type Memo struct {
	arith map[*ast.Node]arithResult
	check map[*ast.Node]bool
}

type arithResult struct {
	value int
	ok    bool
}

// NewMemo allocates an empty memo. Call once per top-level Eval or Check
// invocation.
func NewMemo() *Memo {
	return &Memo{
		arith: make(map[*ast.Node]arithResult),
		check: make(map[*ast.Node]bool),
	}
}

func (m *Memo) getArith(n *ast.Node) (int, bool, bool) {
	r, hit := m.arith[n]
	return r.value, r.ok, hit
}

func (m *Memo) putArith(n *ast.Node, value int, ok bool) {
	m.arith[n] = arithResult{value: value, ok: ok}
}

func (m *Memo) getCheck(n *ast.Node) (bool, bool) {
	v, hit := m.check[n]
	return v, hit
}

func (m *Memo) putCheck(n *ast.Node, v bool) {
	m.check[n] = v
}
