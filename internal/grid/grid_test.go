package grid_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomas-macha/zebra/internal/grid"
	"github.com/tomas-macha/zebra/internal/puzzle"
)

func TestFormatRendersOneRowPerCategoryAndSkipsPosition(t *testing.T) {
	cat, err := puzzle.NewCatalog([]puzzle.CategoryDef{
		{Name: "fruit", Items: []string{"apple", "banana"}},
	})
	require.NoError(t, err)

	m := cat.NewMatrix()
	rows, err := cat.RowsOf("fruit")
	require.NoError(t, err)
	m.ClearOnly(rows[0], 0)
	m.ClearOnly(rows[1], 1)

	out := grid.Format(cat, m)
	require.Contains(t, out, "fruit")
	require.NotContains(t, out, "#", "the position pseudo-category must not be rendered as a row")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2, "one header row plus one row for the single declared category")
	require.Contains(t, lines[1], "apple")
	require.Contains(t, lines[1], "banana")
}

func TestFormatLeavesBlankCellForUnassignedGreatItem(t *testing.T) {
	cat, err := puzzle.NewCatalog([]puzzle.CategoryDef{
		{Name: "fruit", Items: []string{"apple", "banana"}},
		{Name: "mood", Items: []string{"happy", "sad", "calm"}, Great: true},
	})
	require.NoError(t, err)

	m := cat.NewMatrix()
	fruitRows, err := cat.RowsOf("fruit")
	require.NoError(t, err)
	m.ClearOnly(fruitRows[0], 0)
	m.ClearOnly(fruitRows[1], 1)

	moodRows, err := cat.RowsOf("mood")
	require.NoError(t, err)
	m.ClearOnly(moodRows[0], 0) // "happy" pinned to column 0
	for p := 0; p < cat.N; p++ {
		m.Clear(moodRows[1], p) // "sad" has no possible column
		m.Clear(moodRows[2], p) // "calm" has no possible column
	}

	out := grid.Format(cat, m)
	moodLine := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "mood") {
			moodLine = line
		}
	}
	require.NotEmpty(t, moodLine)
	require.Contains(t, moodLine, "happy")
	require.True(t, strings.HasSuffix(strings.TrimRight(moodLine, " "), "|"), "column 2 holds no mood item and must render blank")
}
