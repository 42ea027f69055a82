// Package matrix implements the boolean possibility grid the solver narrows.
//
// A Matrix is an R x N grid of bits: M.Possible(row, pos) reports whether
// row may still occupy position pos. Rows are addressed by dense integer
// index rather than by name (name <-> index mapping is internal/puzzle's
// job) so that hot-path propagation and elimination never touch strings.
//
// Each row is backed by a []uint64 word slice: cloning a Matrix for
// branch-forking or disjunction evaluation is a flat per-row slice copy,
// not a generic structural clone.
package matrix

import "math/bits"

// Matrix is the mutable possibility grid for one search branch.
type Matrix struct {
	n     int // number of positions (columns)
	words int // words per row
	rows  [][]uint64
}

// New creates a Matrix with the given number of rows and n positions, every
// cell initialized to true (fully unconstrained).
func New(numRows, n int) *Matrix {
	w := (n + 63) / 64
	m := &Matrix{n: n, words: w, rows: make([][]uint64, numRows)}
	full := fullMask(n, w)
	for i := range m.rows {
		row := make([]uint64, w)
		copy(row, full)
		m.rows[i] = row
	}
	return m
}

func fullMask(n, w int) []uint64 {
	mask := make([]uint64, w)
	for i := 0; i < n; i++ {
		mask[i/64] |= 1 << uint(i%64)
	}
	return mask
}

// N returns the number of positions (columns).
func (m *Matrix) N() int { return m.n }

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return len(m.rows) }

// Possible reports whether row may occupy position pos.
func (m *Matrix) Possible(row, pos int) bool {
	return m.rows[row][pos/64]&(1<<uint(pos%64)) != 0
}

// Clear marks row as impossible at position pos. Clearing an already-clear
// cell is a no-op; cells only ever transition true -> false within a branch.
func (m *Matrix) Clear(row, pos int) {
	m.rows[row][pos/64] &^= 1 << uint(pos%64)
}

// ClearOnly restricts row to exactly the given position, clearing every
// other cell. Used to pin the "#" rows when the initial matrix is built.
func (m *Matrix) ClearOnly(row, pos int) {
	for w := range m.rows[row] {
		m.rows[row][w] = 0
	}
	m.rows[row][pos/64] |= 1 << uint(pos%64)
}

// SetPossible forces row to be possible at pos. No code in this module
// calls it; the "#" rows are pinned with ClearOnly.
func (m *Matrix) SetPossible(row, pos int) {
	m.rows[row][pos/64] |= 1 << uint(pos%64)
}

// ClearAllExcept clears every position of row except pos, without requiring
// pos to already be possible. Equivalent to ClearOnly; kept as a distinct
// name at call sites that want to document "force to candidate" intent.
func (m *Matrix) ClearAllExcept(row, pos int) { m.ClearOnly(row, pos) }

// Count returns the number of positions still possible for row.
func (m *Matrix) Count(row int) int {
	c := 0
	for _, w := range m.rows[row] {
		c += bits.OnesCount64(w)
	}
	return c
}

// Singleton reports the unique possible position for row, if there is
// exactly one.
func (m *Matrix) Singleton(row int) (int, bool) {
	pos, n := -1, 0
	for wi, w := range m.rows[row] {
		for w != 0 {
			t := w & -w
			off := bits.TrailingZeros64(w)
			pos = wi*64 + off
			n++
			if n > 1 {
				return -1, false
			}
			w &^= t
		}
	}
	if n == 1 {
		return pos, true
	}
	return -1, false
}

// Empty reports whether row has no possible position left (a contradiction).
func (m *Matrix) Empty(row int) bool { return m.Count(row) == 0 }

// Iterate calls f for every position still possible for row, in ascending
// order.
func (m *Matrix) Iterate(row int, f func(pos int)) {
	for wi, w := range m.rows[row] {
		for w != 0 {
			t := w & -w
			off := bits.TrailingZeros64(w)
			f(wi*64 + off)
			w &^= t
		}
	}
}

// Clone returns a deep copy of the matrix, safe to mutate independently.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{n: m.n, words: m.words, rows: make([][]uint64, len(m.rows))}
	for i, row := range m.rows {
		nr := make([]uint64, len(row))
		copy(nr, row)
		out.rows[i] = nr
	}
	return out
}

// Equal reports whether two matrices of the same shape have identical
// possibility bits. Used by the fixed-point iterator to detect quiescence.
func (m *Matrix) Equal(o *Matrix) bool {
	if len(m.rows) != len(o.rows) {
		return false
	}
	for i := range m.rows {
		for w := range m.rows[i] {
			if m.rows[i][w] != o.rows[i][w] {
				return false
			}
		}
	}
	return true
}

// UnionInto ORs src's bits for row into dst's bits for the same row.
// Disjunction propagation recombines its per-disjunct clones with
// IntersectWithUnion, not with this function.
func UnionInto(dst, src *Matrix, row int) {
	for w := range dst.rows[row] {
		dst.rows[row][w] |= src.rows[row][w]
	}
}

// IntersectWithUnion sets dst row bits to (dst row bits) AND (union of the
// given matrices' bits for that row). Used by disjunction propagation: a
// cell survives only if at least one disjunct-branch keeps it possible.
func IntersectWithUnion(dst *Matrix, row int, branches []*Matrix) {
	if len(branches) == 0 {
		return
	}
	union := make([]uint64, dst.words)
	for _, b := range branches {
		for w := range union {
			union[w] |= b.rows[row][w]
		}
	}
	for w := range dst.rows[row] {
		dst.rows[row][w] &= union[w]
	}
}
