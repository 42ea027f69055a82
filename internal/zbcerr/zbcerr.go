// Package zbcerr defines the permanent, position-carrying errors raised by
// the ZBC lexer and parser (internal/zbc): malformed input is fatal and must
// propagate to the caller with [line, column] and a human message, never
// corrupt solver state.
package zbcerr

import "fmt"

// SyntaxError is a lexical or grammatical error at a specific source
// location.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("zbc:%d:%d: %s", e.Line, e.Column, e.Message)
}

// New builds a SyntaxError at the given 1-based line/column.
func New(line, column int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Line: line, Column: column, Message: fmt.Sprintf(format, args...)}
}
