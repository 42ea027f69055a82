// Package resolve implements the identifier resolver: mapping a user-written
// symbol ("bob", "age.20", "#3", "$") to a matrix row, under a given dynamic
// binding d (the current instantiation of "$").
package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomas-macha/zebra/internal/puzzle"
)

// UnknownIdentifierError is a permanent error: the symbol could not be
// resolved to any row under the catalog.
type UnknownIdentifierError struct {
	Symbol string
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("resolve: unknown identifier %q", e.Symbol)
}

// Symbol resolves symbol to a fully-qualified row key, applying these rules
// in order:
//
//  1. "$" resolves to the position pseudo-category row for the current
//     dynamic binding d.
//  2. A leading "#" strips "#" and "." and resolves to "#.<digits>".
//  3. The catalog's short-name table, if the name is unambiguous.
//  4. Otherwise the symbol must already be "category.item" and name a row
//     that exists.
//
// Any other shape fails with UnknownIdentifierError.
func Symbol(cat *puzzle.Catalog, symbol string, d int) (puzzle.RowKey, error) {
	if symbol == "$" {
		return cat.PositionRowKey(d), nil
	}

	if strings.HasPrefix(symbol, "#") {
		digits := strings.TrimPrefix(symbol, "#")
		digits = strings.TrimPrefix(digits, ".")
		if _, err := strconv.Atoi(digits); err != nil {
			return "", &UnknownIdentifierError{Symbol: symbol}
		}
		rk := puzzle.RowKey(puzzle.PositionCategory + "." + digits)
		if _, ok := cat.RowID(rk); !ok {
			return "", &UnknownIdentifierError{Symbol: symbol}
		}
		return rk, nil
	}

	if rk, ok := cat.ShortNameRowKey(symbol); ok {
		return rk, nil
	}

	if strings.Contains(symbol, ".") {
		rk := puzzle.RowKey(symbol)
		if _, ok := cat.RowID(rk); ok {
			return rk, nil
		}
	}

	return "", &UnknownIdentifierError{Symbol: symbol}
}

// Row resolves symbol directly to a dense row index.
func Row(cat *puzzle.Catalog, symbol string, d int) (int, error) {
	rk, err := Symbol(cat, symbol, d)
	if err != nil {
		return -1, err
	}
	row, ok := cat.RowID(rk)
	if !ok {
		return -1, &UnknownIdentifierError{Symbol: symbol}
	}
	return row, nil
}
