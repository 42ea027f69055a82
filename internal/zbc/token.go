package zbc

import "github.com/tomas-macha/zebra/internal/ast"

// Kind discriminates a lexical token.
type Kind int

const (
	TokEOF Kind = iota
	TokNewline
	TokIdent
	TokInt
	TokColon
	TokComma
	TokDot
	TokStar
	TokLParen
	TokRParen
	TokLBracket
	TokRBracket
	TokDotDot
	TokDollar

	TokEq       // "="
	TokEqEq     // "=="
	TokNeq      // "!="
	TokLt       // "<"
	TokLte      // "<="
	TokGt       // ">"
	TokGte      // ">="
	TokAmp      // "&"
	TokPipe     // "|"
	TokCaret    // "^"
	TokIff      // "<=>"
	TokImplies  // "=>"
	TokBang     // "!"
	TokMinus    // "-"
	TokMinus2   // "--"
	TokPlus     // "+"
	TokSlash    // "/"
	TokPercent  // "%"
)

// Token is one lexeme with its source position.
type Token struct {
	Kind Kind
	Text string
	Pos  ast.Position
}
