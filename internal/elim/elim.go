// Package elim implements the subset elimination engine: the generalised
// naked-subset rule, applied per strict category, that derives implied
// negatives purely from how many rows a set of positions could hold.
package elim

import (
	"github.com/tomas-macha/zebra/internal/combin"
	"github.com/tomas-macha/zebra/internal/matrix"
	"github.com/tomas-macha/zebra/internal/puzzle"
)

// Eliminate runs one pass of subset elimination over every strict category
// of cat, mutating m in place, and reports whether any cell was cleared.
// Great categories are skipped: the rule's pigeonhole argument assumes
// bijective coverage of positions, which only strict categories guarantee.
func Eliminate(cat *puzzle.Catalog, m *matrix.Matrix) bool {
	changed := false
	cache := combin.NewCache(m.N())
	for _, name := range cat.StrictCategories() {
		if name == puzzle.PositionCategory {
			continue // already fully determined, nothing to gain
		}
		rows, err := cat.RowsOf(name)
		if err != nil {
			continue
		}
		if eliminateCategory(rows, m, cache) {
			changed = true
		}
	}
	return changed
}

func eliminateCategory(rows []int, m *matrix.Matrix, cache *combin.Cache) bool {
	n := m.N()
	changed := false
	for k := 1; k < n; k++ {
		for _, subset := range cache.Subsets(k) {
			inS := make([]bool, n)
			for _, p := range subset {
				inS[p] = true
			}

			var confined []int // rows fully contained in the complement of S
			var touching []int // rows that touch S at least once
			for _, r := range rows {
				touches := false
				for _, p := range subset {
					if m.Possible(r, p) {
						touches = true
						break
					}
				}
				if touches {
					touching = append(touching, r)
				} else {
					confined = append(confined, r)
				}
			}

			if len(confined) < n-k {
				continue
			}
			for _, r := range touching {
				for p := 0; p < n; p++ {
					if inS[p] {
						continue
					}
					if m.Possible(r, p) {
						m.Clear(r, p)
						changed = true
					}
				}
			}
		}
	}
	return changed
}
