package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brokenalarms/astro-masonry/types"
)

func TestFewestItems_Distribute(t *testing.T) {
	t.Run("column counts differ by at most one", func(t *testing.T) {
		d := NewFewestItems()
		for n := 0; n <= 40; n += 7 {
			items := makeItems(n)
			for c := 1; c <= 6; c++ {
				cols, err := d.Distribute(items, c)
				require.NoError(t, err)
				requireValidLayout(t, items, cols, c)

				minLen, maxLen := len(cols[0]), len(cols[0])
				for _, col := range cols {
					minLen = min(minLen, len(col))
					maxLen = max(maxLen, len(col))
				}
				require.LessOrEqual(t, maxLen-minLen, 1, "n=%d c=%d", n, c)
			}
		}
	})

	t.Run("ties go to lowest column index", func(t *testing.T) {
		items := []types.Item{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}

		cols, err := NewFewestItems().Distribute(items, 3)

		require.NoError(t, err)
		require.Equal(t, []string{"a", "d"}, ids(cols[0]))
		require.Equal(t, []string{"b"}, ids(cols[1]))
		require.Equal(t, []string{"c"}, ids(cols[2]))
	})

	t.Run("ignores item heights", func(t *testing.T) {
		items := []types.Item{{ID: "tall", Height: 1000}, {ID: "b", Height: 1}, {ID: "c", Height: 1}}

		cols, err := NewFewestItems().Distribute(items, 2)

		require.NoError(t, err)
		require.Equal(t, []string{"tall", "c"}, ids(cols[0]))
		require.Equal(t, []string{"b"}, ids(cols[1]))
	})

	t.Run("kind", func(t *testing.T) {
		require.Equal(t, types.StrategyFewestItems, NewFewestItems().Kind())
	})
}
