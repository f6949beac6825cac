package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColumns_ItemCountAndClone(t *testing.T) {
	cols := Columns{
		{{ID: "a"}, {ID: "c"}},
		{{ID: "b"}},
		{},
	}

	require.Equal(t, 3, cols.ItemCount())

	clone := cols.Clone()
	clone[0][0].ID = "changed"
	require.Equal(t, "a", cols[0][0].ID, "clone must not share backing arrays")
	require.Len(t, clone[2], 0)
	require.NotNil(t, clone[2])

	require.Nil(t, Columns(nil).Clone())
}

func TestLayout_Fingerprint(t *testing.T) {
	base := Layout{
		Version:     1,
		ColumnCount: 2,
		Columns:     Columns{{{ID: "a"}, {ID: "c"}}, {{ID: "b"}}},
	}

	t.Run("ignores version and width", func(t *testing.T) {
		other := base
		other.Version = 9
		other.Width = 1234
		require.Equal(t, base.Fingerprint(), other.Fingerprint())
	})

	t.Run("differs when items move between columns", func(t *testing.T) {
		moved := base
		moved.Columns = Columns{{{ID: "a"}}, {{ID: "b"}, {ID: "c"}}}
		require.NotEqual(t, base.Fingerprint(), moved.Fingerprint())
	})

	t.Run("differs when ids concatenate identically", func(t *testing.T) {
		left := Layout{Columns: Columns{{{ID: "ab"}, {ID: "c"}}}}
		right := Layout{Columns: Columns{{{ID: "a"}, {ID: "bc"}}}}
		require.NotEqual(t, left.Fingerprint(), right.Fingerprint())
	})
}

func TestLayout_IsZero(t *testing.T) {
	require.True(t, Layout{}.IsZero())
	require.False(t, Layout{Version: 1, ColumnCount: 1}.IsZero())
}

func TestLayout_JSONStrategyName(t *testing.T) {
	data, err := json.Marshal(Layout{Version: 1, ColumnCount: 1, Strategy: StrategyFewestItems, Columns: Columns{{}}})
	require.NoError(t, err)
	require.Contains(t, string(data), `"strategy":"fewest-items"`)

	var decoded Layout
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, StrategyFewestItems, decoded.Strategy)
}
