package strategy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brokenalarms/astro-masonry/types"
)

func makeItems(n int) []types.Item {
	items := make([]types.Item, n)
	for i := range items {
		items[i] = types.Item{ID: fmt.Sprintf("item-%02d", i), Height: float64(10 + (i*37)%90)}
	}

	return items
}

func ids(col []types.Item) []string {
	out := make([]string, len(col))
	for i, item := range col {
		out[i] = item.ID
	}

	return out
}

// requireValidLayout checks that every item appears exactly once and that each
// column preserves the original relative order.
func requireValidLayout(t *testing.T, items []types.Item, cols types.Columns, columnCount int) {
	t.Helper()

	require.Len(t, cols, columnCount)
	require.Equal(t, len(items), cols.ItemCount())

	position := make(map[string]int, len(items))
	for i, item := range items {
		position[item.ID] = i
	}

	seen := make(map[string]bool, len(items))
	for c, col := range cols {
		require.NotNil(t, col, "column %d", c)
		last := -1
		for _, item := range col {
			require.False(t, seen[item.ID], "item %s placed twice", item.ID)
			seen[item.ID] = true
			pos, ok := position[item.ID]
			require.True(t, ok, "unknown item %s", item.ID)
			require.Greater(t, pos, last, "column %d out of order", c)
			last = pos
		}
	}
}

var allKinds = []types.Strategy{
	types.StrategySequential,
	types.StrategyFewestItems,
	types.StrategyShortestHeight,
}
