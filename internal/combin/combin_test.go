package combin_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tomas-macha/zebra/internal/combin"
)

func TestSubsetsCount(t *testing.T) {
	require.Len(t, combin.Subsets(5, 2), 10)
	require.Len(t, combin.Subsets(5, 1), 5)
	require.Len(t, combin.Subsets(5, 5), 1)
}

func TestSubsetsBoundariesAreVacuous(t *testing.T) {
	require.Nil(t, combin.Subsets(5, 0))
	require.Nil(t, combin.Subsets(5, 6))
}

func TestSubsetsAreAscendingAndDistinct(t *testing.T) {
	for _, s := range combin.Subsets(4, 3) {
		for i := 1; i < len(s); i++ {
			require.Less(t, s[i-1], s[i])
		}
	}
}

func TestCacheReturnsSameShapeAcrossCalls(t *testing.T) {
	c := combin.NewCache(6)
	first := c.Subsets(3)
	second := c.Subsets(3)
	require.Equal(t, first, second)
}
