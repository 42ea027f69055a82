// Package ast defines the clue expression tree that the solver consumes.
//
// Node is a closed sum type over (Kind, Op): every node carries a Kind
// discriminating its shape and, where relevant, an Op naming which operator
// of that shape it is. Dispatch sites in internal/propagate and
// internal/eval (which holds both Eval and Check) switch over these two fields instead of
// keying handler tables by operator strings, so the parser (internal/zbc) is
// the only place operator text is ever seen.
//
// Nodes are immutable once built: per-evaluation memoisation lives in a
// caller-owned Memo (see internal/eval) keyed by node identity, so the same
// AST can be evaluated concurrently across branches without
// cross-contamination.
package ast

// Kind discriminates the shape of a Node.
type Kind int

const (
	KindLogicalUnary Kind = iota
	KindLogicalBinary
	KindLogicalNary
	KindRelational
	KindPositional
	KindIn
	KindArithmeticBinary
	KindNumericLiteral
	KindNumericIdentifier
	KindIdentifier
	KindSetLiteral
	KindRangeLiteral
	KindTruths
)

// Returns classifies what "kind of value" a node yields when evaluated.
type Returns int

const (
	ReturnsLogical Returns = iota
	ReturnsArithmetic
	ReturnsOther // sets, ranges, raw identifiers: not directly evaluable
)

// Op names the operator symbol a node carries, scoped to its Kind.
type Op int

const (
	OpNone Op = iota

	// LogicalUnary
	OpNot

	// LogicalBinary / LogicalNary
	OpAnd
	OpOr
	OpXor
	OpIff
	OpImplies

	// Relational
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte

	// Positional
	OpSamePos // "="
	OpLeftOf  // "-" with distance k (default 1)
	OpStrictLeftOf // "--"

	// ArithmeticBinary
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpDiff
)

// Node is one element of the clue AST. Children are populated according to
// Kind; unused fields are zero.
type Node struct {
	Kind    Kind
	Op      Op
	Returns Returns

	// Dollar is true if this subtree (at this node or below) references the
	// dynamic-position placeholder "$".
	Dollar bool

	// Children, by Kind:
	//   LogicalUnary:        Left
	//   LogicalBinary:       Left, Right
	//   LogicalNary:         Nary
	//   Relational:          Left, Right (arithmetic)
	//   Positional:          Left, Right (identifiers), Distance
	//   In:                  Left (identifier or arithmetic), Right (set or range)
	//   ArithmeticBinary:     Left, Right
	//   NumericLiteral:       Value
	//   NumericIdentifier:    Symbol, Category
	//   Identifier:           Symbol
	//   SetLiteral:           Nary
	//   RangeLiteral:         Left (start), Right (end)
	//   Truths:               Nary (logical clues)
	Left  *Node
	Right *Node
	Nary  []*Node

	Symbol   string
	Category string
	Value    int
	Distance int

	// Pos is a [line, column] source location for this node. The parser in
	// internal/zbc does not fill it in, so parsed nodes carry the zero
	// Position; the solver core never inspects it.
	Pos Position
}

// Position is a 1-based [line, column] source location.
type Position struct {
	Line   int
	Column int
}

// Not builds a LogicalUnary "!" node.
func Not(child *Node) *Node {
	return &Node{Kind: KindLogicalUnary, Op: OpNot, Returns: ReturnsLogical, Left: child, Dollar: child.Dollar}
}

// Binary builds a LogicalBinary node.
func Binary(op Op, l, r *Node) *Node {
	return &Node{Kind: KindLogicalBinary, Op: op, Returns: ReturnsLogical, Left: l, Right: r, Dollar: l.Dollar || r.Dollar}
}

// NaryLogical builds a LogicalNary node ("&" or "|" over k >= 2 children).
func NaryLogical(op Op, children ...*Node) *Node {
	dollar := false
	for _, c := range children {
		dollar = dollar || c.Dollar
	}
	return &Node{Kind: KindLogicalNary, Op: op, Returns: ReturnsLogical, Nary: children, Dollar: dollar}
}

// Rel builds a Relational node.
func Rel(op Op, l, r *Node) *Node {
	return &Node{Kind: KindRelational, Op: op, Returns: ReturnsLogical, Left: l, Right: r, Dollar: l.Dollar || r.Dollar}
}

// Positional builds a Positional node ("=" "-" "--").
func Positional(op Op, distance int, l, r *Node) *Node {
	return &Node{Kind: KindPositional, Op: op, Returns: ReturnsLogical, Left: l, Right: r, Distance: distance, Dollar: l.Dollar || r.Dollar}
}

// In builds an InOperator node.
func In(left, right *Node) *Node {
	return &Node{Kind: KindIn, Returns: ReturnsLogical, Left: left, Right: right, Dollar: left.Dollar || right.Dollar}
}

// ArithBinary builds an ArithmeticBinary node.
func ArithBinary(op Op, l, r *Node) *Node {
	return &Node{Kind: KindArithmeticBinary, Op: op, Returns: ReturnsArithmetic, Left: l, Right: r, Dollar: l.Dollar || r.Dollar}
}

// IntLit builds a NumericLiteral node.
func IntLit(v int) *Node {
	return &Node{Kind: KindNumericLiteral, Returns: ReturnsArithmetic, Value: v}
}

// NumericIdent builds a NumericIdentifier node ("x:cat").
func NumericIdent(symbol, category string) *Node {
	return &Node{Kind: KindNumericIdentifier, Returns: ReturnsArithmetic, Symbol: symbol, Category: category, Dollar: symbol == "$"}
}

// Ident builds a plain Identifier node.
func Ident(symbol string) *Node {
	return &Node{Kind: KindIdentifier, Returns: ReturnsOther, Symbol: symbol, Dollar: symbol == "$"}
}

// Set builds a SetLiteral node.
func Set(elems ...*Node) *Node {
	dollar := false
	for _, e := range elems {
		dollar = dollar || e.Dollar
	}
	return &Node{Kind: KindSetLiteral, Returns: ReturnsOther, Nary: elems, Dollar: dollar}
}

// Range builds a RangeLiteral node.
func Range(start, end *Node) *Node {
	return &Node{Kind: KindRangeLiteral, Returns: ReturnsOther, Left: start, Right: end, Dollar: start.Dollar || end.Dollar}
}

// Truths builds a TruthsOperator node over a set of logical clues.
func Truths(elems ...*Node) *Node {
	dollar := false
	for _, e := range elems {
		dollar = dollar || e.Dollar
	}
	return &Node{Kind: KindTruths, Returns: ReturnsArithmetic, Nary: elems, Dollar: dollar}
}

// HasDollar reports whether the subtree references "$".
func (n *Node) HasDollar() bool {
	if n == nil {
		return false
	}
	return n.Dollar
}
