package puzzle

import "github.com/tomas-macha/zebra/internal/matrix"

// NewMatrix builds the initial, fully-unconstrained possibility matrix for
// this catalog, with the "#" pseudo-category rows pinned to their single
// permanent true position.
func (c *Catalog) NewMatrix() *matrix.Matrix {
	m := matrix.New(c.NumRows(), c.N)
	rows, _ := c.RowsOf(PositionCategory)
	for i, row := range rows {
		m.ClearOnly(row, i)
	}
	return m
}
