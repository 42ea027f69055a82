package search

import "github.com/tomas-macha/zebra/internal/puzzle"

type branchCell struct {
	category string
	column   int
	rows     []int
}

// selectBranchCell scans every (category, column) pair with a remaining
// candidate count in [2, N] and returns the one with the smallest count,
// ties broken by category declaration order then ascending column -- the
// exact iteration order below, so the first strictly-smaller count found
// wins deterministically. found is false if no such cell exists (the state
// should have been solved or pruned already).
func selectBranchCell(cat *puzzle.Catalog, s State) (branchCell, bool) {
	best := branchCell{}
	bestCount := s.M.N() + 1
	found := false

	for _, name := range cat.Categories() {
		rows, err := cat.RowsOf(name)
		if err != nil {
			continue
		}
		for p := 0; p < s.M.N(); p++ {
			remaining := 0
			for _, r := range rows {
				if s.M.Possible(r, p) {
					remaining++
				}
			}
			if remaining < 2 || remaining > s.M.N() {
				continue
			}
			if remaining < bestCount {
				bestCount = remaining
				best = branchCell{category: name, column: p, rows: rows}
				found = true
			}
		}
	}
	return best, found
}

// Branch forces the most-constrained cell to each of its remaining
// candidates in turn, producing one child State per candidate. If no
// branchable cell exists, Branch returns no children.
func Branch(cat *puzzle.Catalog, s State) []State {
	cell, ok := selectBranchCell(cat, s)
	if !ok {
		return nil
	}

	var children []State
	for _, r := range cell.rows {
		if !s.M.Possible(r, cell.column) {
			continue
		}
		child := s.Clone()
		for _, r2 := range cell.rows {
			if r2 == r {
				continue
			}
			child.M.Clear(r2, cell.column)
		}
		children = append(children, child)
	}
	return children
}
