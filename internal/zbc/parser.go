// Package zbc implements the ZBC lexer and parser: the concrete surface
// syntax for category declarations and logic-puzzle clues. It produces
// category definitions and internal/ast clue trees; internal/solver never
// depends on this package, only on the types it produces.
package zbc

import (
	"strconv"

	"github.com/tomas-macha/zebra/internal/ast"
	"github.com/tomas-macha/zebra/internal/puzzle"
	"github.com/tomas-macha/zebra/internal/zbcerr"
)

// Parser consumes a token stream and builds category definitions and clue
// trees via recursive descent.
type Parser struct {
	toks []Token
	pos  int
}

// Parse lexes and parses a complete ZBC source document, returning the
// declared categories (in declaration order, "#" not yet injected -- that
// happens in puzzle.NewCatalog) and the clue list.
func Parse(src string) ([]puzzle.CategoryDef, []*ast.Node, error) {
	lx := NewLexer(src)
	toks, err := lx.Tokenize()
	if err != nil {
		return nil, nil, err
	}
	p := &Parser{toks: toks}
	return p.parseDocument()
}

func (p *Parser) peek() Token  { return p.toks[p.pos] }
func (p *Parser) peekAt(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}
func (p *Parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) errf(format string, args ...interface{}) error {
	t := p.peek()
	return zbcerr.New(t.Pos.Line, t.Pos.Column, format, args...)
}

func (p *Parser) expect(k Kind, what string) (Token, error) {
	if p.peek().Kind != k {
		return Token{}, p.errf("expected %s, got %q", what, p.peek().Text)
	}
	return p.advance(), nil
}

func (p *Parser) skipBlankLines() {
	for p.peek().Kind == TokNewline {
		p.advance()
	}
}

func (p *Parser) isKeyword(text string) bool {
	t := p.peek()
	return t.Kind == TokIdent && t.Text == text
}

func (p *Parser) parseDocument() ([]puzzle.CategoryDef, []*ast.Node, error) {
	var defs []puzzle.CategoryDef
	var clues []*ast.Node

	p.skipBlankLines()
	if p.isKeyword("categories") {
		p.advance()
		if _, err := p.expect(TokColon, "':'"); err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(TokNewline, "newline after 'categories:'"); err != nil {
			return nil, nil, err
		}
		var err error
		defs, err = p.parseCategoryBlock()
		if err != nil {
			return nil, nil, err
		}
	}

	p.skipBlankLines()
	if p.isKeyword("clues") {
		p.advance()
		if _, err := p.expect(TokColon, "':'"); err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(TokNewline, "newline after 'clues:'"); err != nil {
			return nil, nil, err
		}
		var err error
		clues, err = p.parseClueBlock()
		if err != nil {
			return nil, nil, err
		}
	}

	return defs, clues, nil
}

func (p *Parser) parseCategoryBlock() ([]puzzle.CategoryDef, error) {
	var defs []puzzle.CategoryDef
	for {
		p.skipBlankLines()
		if p.peek().Kind != TokIdent || p.isKeyword("clues") {
			break
		}
		def, err := p.parseCategoryLine()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (p *Parser) parseCategoryLine() (puzzle.CategoryDef, error) {
	great := false
	if p.isKeyword("great") {
		great = true
		p.advance()
	}

	nameTok, err := p.expect(TokIdent, "category name")
	if err != nil {
		return puzzle.CategoryDef{}, err
	}
	name := nameTok.Text

	if p.peek().Kind == TokStar {
		p.advance() // "*" suffix: strict-by-convention marker, already the default
	}

	if _, err := p.expect(TokColon, "':' after category name"); err != nil {
		return puzzle.CategoryDef{}, err
	}

	var items []string
	for {
		tok := p.peek()
		if tok.Kind != TokIdent && tok.Kind != TokInt {
			return puzzle.CategoryDef{}, p.errf("expected item name, got %q", tok.Text)
		}
		items = append(items, tok.Text)
		p.advance()
		if p.peek().Kind == TokComma {
			p.advance()
			continue
		}
		break
	}

	if p.peek().Kind == TokNewline {
		p.advance()
	}

	return puzzle.CategoryDef{Name: name, Items: items, Great: great}, nil
}

func (p *Parser) parseClueBlock() ([]*ast.Node, error) {
	var clues []*ast.Node
	for {
		p.skipBlankLines()
		if p.peek().Kind == TokEOF {
			break
		}
		clue, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		clues = append(clues, clue)
		if p.peek().Kind == TokNewline {
			p.advance()
			continue
		}
		if p.peek().Kind == TokEOF {
			break
		}
		return nil, p.errf("expected end of clue, got %q", p.peek().Text)
	}
	return clues, nil
}

// --- logical precedence: <=>  =>  |  ^  &  !  (comparison/positional/in) ---

func (p *Parser) parseOr() (*ast.Node, error) {
	left, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != TokPipe {
		return p.maybeImplication(left)
	}
	children := []*ast.Node{left}
	for p.peek().Kind == TokPipe {
		p.advance()
		right, err := p.parseXor()
		if err != nil {
			return nil, err
		}
		children = append(children, right)
	}
	combined := ast.NaryLogical(ast.OpOr, children...)
	return p.maybeImplication(combined)
}

// maybeImplication handles "=>" and "<=>", which bind looser than "|" in
// this grammar.
func (p *Parser) maybeImplication(left *ast.Node) (*ast.Node, error) {
	for {
		switch p.peek().Kind {
		case TokImplies:
			p.advance()
			right, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			left = ast.Binary(ast.OpImplies, left, right)
		case TokIff:
			p.advance()
			right, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			left = ast.Binary(ast.OpIff, left, right)
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseXor() (*ast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokCaret {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.Binary(ast.OpXor, left, right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (*ast.Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != TokAmp {
		return left, nil
	}
	children := []*ast.Node{left}
	for p.peek().Kind == TokAmp {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		children = append(children, right)
	}
	return ast.NaryLogical(ast.OpAnd, children...), nil
}

func (p *Parser) parseNot() (*ast.Node, error) {
	if p.peek().Kind == TokBang {
		p.advance()
		child, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return ast.Not(child), nil
	}
	return p.parseComparison()
}

// parseComparison tries, in order: a positional clue ("A = B", "A - B",
// "A -k- B", "A -- B"), an identifier "in" set/range clue, then falls back
// to a relational/arithmetic expression.
func (p *Parser) parseComparison() (*ast.Node, error) {
	if node, ok, err := p.tryPositionalOrIdentIn(); err != nil {
		return nil, err
	} else if ok {
		return node, nil
	}

	left, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}

	if op, ok := relationalOp(p.peek().Kind); ok {
		p.advance()
		right, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		return ast.Rel(op, left, right), nil
	}

	if p.isKeyword("in") {
		p.advance()
		rhs, err := p.parseInRHS()
		if err != nil {
			return nil, err
		}
		return ast.In(left, rhs), nil
	}

	return left, nil
}

func relationalOp(k Kind) (ast.Op, bool) {
	switch k {
	case TokEqEq:
		return ast.OpEq, true
	case TokNeq:
		return ast.OpNeq, true
	case TokLt:
		return ast.OpLt, true
	case TokLte:
		return ast.OpLte, true
	case TokGt:
		return ast.OpGt, true
	case TokGte:
		return ast.OpGte, true
	default:
		return ast.OpNone, false
	}
}

// tryPositionalOrIdentIn speculatively parses a bare identifier and, if
// followed by "=", "-", "--" or "in", commits to a Positional or In node.
// Otherwise it rewinds and reports ok=false so the caller falls back to
// arithmetic/relational parsing.
func (p *Parser) tryPositionalOrIdentIn() (*ast.Node, bool, error) {
	start := p.pos
	left, ok := p.tryParseBareIdentifier()
	if !ok {
		p.pos = start
		return nil, false, nil
	}

	switch p.peek().Kind {
	case TokEq:
		p.advance()
		right, ok := p.tryParseBareIdentifier()
		if !ok {
			return nil, false, p.errf("expected identifier after '='")
		}
		return ast.Positional(ast.OpSamePos, 0, left, right), true, nil

	case TokMinus2:
		p.advance()
		right, ok := p.tryParseBareIdentifier()
		if !ok {
			return nil, false, p.errf("expected identifier after '--'")
		}
		return ast.Positional(ast.OpStrictLeftOf, 0, left, right), true, nil

	case TokMinus:
		p.advance()
		distance := 1
		if p.peek().Kind == TokInt && p.peekAt(1).Kind == TokMinus {
			v, err := strconv.Atoi(p.peek().Text)
			if err != nil {
				return nil, false, p.errf("invalid distance %q", p.peek().Text)
			}
			distance = v
			p.advance()
			p.advance()
		}
		right, ok := p.tryParseBareIdentifier()
		if !ok {
			return nil, false, p.errf("expected identifier after '-'")
		}
		return ast.Positional(ast.OpLeftOf, distance, left, right), true, nil

	case TokIdent:
		if p.peek().Text == "in" {
			p.advance()
			rhs, err := p.parseInRHS()
			if err != nil {
				return nil, false, err
			}
			return ast.In(left, rhs), true, nil
		}
	}

	p.pos = start
	return nil, false, nil
}

// tryParseBareIdentifier parses "$", "#N", a plain name, or "category.item"
// as a single Identifier node, without committing to anything beyond it
// (no ":" category suffix, which would make it a NumericIdentifier instead).
func (p *Parser) tryParseBareIdentifier() (*ast.Node, bool) {
	tok := p.peek()
	switch tok.Kind {
	case TokDollar:
		p.advance()
		return ast.Ident("$"), true
	case TokIdent:
		if tok.Text == "in" || tok.Text == "truths" {
			return nil, false
		}
		name := tok.Text
		p.advance()
		if p.peek().Kind == TokDot {
			p.advance()
			item := p.peek()
			if item.Kind != TokIdent && item.Kind != TokInt {
				return nil, false
			}
			p.advance()
			return ast.Ident(name + "." + item.Text), true
		}
		if p.peek().Kind == TokColon {
			return nil, false // NumericIdentifier, not a bare identifier
		}
		return ast.Ident(name), true
	default:
		return nil, false
	}
}

func (p *Parser) parseInRHS() (*ast.Node, error) {
	if p.peek().Kind == TokLBracket {
		p.advance()
		start, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokDotDot, "'..'"); err != nil {
			return nil, err
		}
		end, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRBracket, "']'"); err != nil {
			return nil, err
		}
		return ast.Range(start, end), nil
	}

	if _, err := p.expect(TokLParen, "'(' starting a set"); err != nil {
		return nil, err
	}
	var elems []*ast.Node
	for {
		e, err := p.parseSetElement()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.peek().Kind == TokComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(TokRParen, "')' ending a set"); err != nil {
		return nil, err
	}
	return ast.Set(elems...), nil
}

// parseSetElement parses one member of an "in (...)" set: either a bare
// identifier or an arithmetic expression.
func (p *Parser) parseSetElement() (*ast.Node, error) {
	start := p.pos
	if node, ok := p.tryParseBareIdentifier(); ok {
		if p.peek().Kind != TokColon {
			return node, nil
		}
		// Bare identifier was actually the start of a NumericIdentifier
		// ("x:cat"); rewind and parse it as arithmetic instead.
		p.pos = start
	}
	return p.parseAddSub()
}

// --- arithmetic precedence: + -  (loose)  then  * / % diff  (tight) ---

func (p *Parser) parseAddSub() (*ast.Node, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case TokPlus:
			p.advance()
			right, err := p.parseMulDiv()
			if err != nil {
				return nil, err
			}
			left = ast.ArithBinary(ast.OpAdd, left, right)
		case TokMinus:
			p.advance()
			right, err := p.parseMulDiv()
			if err != nil {
				return nil, err
			}
			left = ast.ArithBinary(ast.OpSub, left, right)
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseMulDiv() (*ast.Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case TokStar:
			p.advance()
			right, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			left = ast.ArithBinary(ast.OpMul, left, right)
		case TokSlash:
			p.advance()
			right, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			left = ast.ArithBinary(ast.OpDiv, left, right)
		case TokPercent:
			p.advance()
			right, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			left = ast.ArithBinary(ast.OpMod, left, right)
		case TokIdent:
			if p.peek().Text == "diff" {
				p.advance()
				right, err := p.parsePrimary()
				if err != nil {
					return nil, err
				}
				left = ast.ArithBinary(ast.OpDiff, left, right)
				continue
			}
			return left, nil
		default:
			return left, nil
		}
	}
}

func (p *Parser) parsePrimary() (*ast.Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokInt:
		p.advance()
		v, err := strconv.Atoi(tok.Text)
		if err != nil {
			return nil, p.errf("invalid integer %q", tok.Text)
		}
		return ast.IntLit(v), nil

	case TokDollar:
		p.advance()
		return ast.Ident("$"), nil

	case TokLParen:
		p.advance()
		first, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek().Kind == TokComma {
			elems := []*ast.Node{first}
			for p.peek().Kind == TokComma {
				p.advance()
				e, err := p.parseSetElement()
				if err != nil {
					return nil, err
				}
				elems = append(elems, e)
			}
			if _, err := p.expect(TokRParen, "')'"); err != nil {
				return nil, err
			}
			return ast.Set(elems...), nil
		}
		if _, err := p.expect(TokRParen, "')'"); err != nil {
			return nil, err
		}
		return first, nil

	case TokIdent:
		if tok.Text == "truths" {
			return p.parseTruths()
		}
		name := tok.Text
		p.advance()
		if p.peek().Kind == TokColon {
			p.advance()
			catTok, err := p.expect(TokIdent, "category name after ':'")
			if err != nil {
				return nil, err
			}
			return ast.NumericIdent(name, catTok.Text), nil
		}
		if p.peek().Kind == TokDot {
			p.advance()
			item := p.peek()
			if item.Kind != TokIdent && item.Kind != TokInt {
				return nil, p.errf("expected item name after '.'")
			}
			p.advance()
			return ast.Ident(name + "." + item.Text), nil
		}
		return ast.Ident(name), nil

	default:
		return nil, p.errf("unexpected token %q", tok.Text)
	}
}

func (p *Parser) parseTruths() (*ast.Node, error) {
	p.advance() // "truths"
	if _, err := p.expect(TokLParen, "'(' after 'truths'"); err != nil {
		return nil, err
	}
	var elems []*ast.Node
	for {
		c, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, c)
		if p.peek().Kind == TokComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(TokRParen, "')' ending 'truths(...)'"); err != nil {
		return nil, err
	}
	return ast.Truths(elems...), nil
}
