// Package grid renders a fully-determined solution matrix as a
// human-readable table: one column per position, one row per category.
package grid

import (
	"fmt"
	"strings"

	"github.com/tomas-macha/zebra/internal/matrix"
	"github.com/tomas-macha/zebra/internal/puzzle"
)

// Format renders m (a solved matrix, per cat) as a table: one header row of
// position numbers, then one row per non-"#" category showing the item
// occupying each position (blank if a great-category item is unassigned
// everywhere, which cannot happen for a position that is covered but can
// happen for a surplus item that owns no column).
func Format(cat *puzzle.Catalog, m *matrix.Matrix) string {
	var b strings.Builder

	names := cat.Categories()
	var rows []string
	for _, n := range names {
		if n != puzzle.PositionCategory {
			rows = append(rows, n)
		}
	}

	widths := make([]int, len(rows))
	cellsByCat := make(map[string][]string, len(rows))
	for ci, name := range rows {
		items, _ := cat.Items(name)
		catRows, _ := cat.RowsOf(name)
		cells := make([]string, cat.N)
		for p := 0; p < cat.N; p++ {
			cells[p] = ""
			for i, r := range catRows {
				if m.Possible(r, p) {
					cells[p] = items[i]
					break
				}
			}
		}
		cellsByCat[name] = cells
		w := len(name)
		for _, c := range cells {
			if len(c) > w {
				w = len(c)
			}
		}
		widths[ci] = w
	}

	fmt.Fprintf(&b, "%-10s", "position")
	for p := 0; p < cat.N; p++ {
		fmt.Fprintf(&b, " | %d", p+1)
	}
	b.WriteString("\n")

	for ci, name := range rows {
		fmt.Fprintf(&b, "%-10s", name)
		for p := 0; p < cat.N; p++ {
			fmt.Fprintf(&b, " | %-*s", widths[ci], cellsByCat[name][p])
		}
		b.WriteString("\n")
	}

	return b.String()
}
