package breakpoint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	table := New(3, map[float64]int{100: 1, 300: 2})

	tests := []struct {
		name  string
		width float64
		want  int
	}{
		{"below first threshold", 50, 1},
		{"inclusive boundary", 100, 1},
		{"between thresholds", 250, 2},
		{"second boundary", 300, 2},
		{"beyond every threshold", 400, 3},
		{"zero width", 0, 1},
		{"fractional width just above boundary", 100.5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Resolve(tt.width, table))
		})
	}
}

func TestResolve_SmallestQualifyingThresholdWins(t *testing.T) {
	// Column counts decrease with width here, so picking the largest qualifying
	// threshold would give a different answer.
	table := New(1, map[float64]int{500: 4, 1000: 2})

	require.Equal(t, 4, Resolve(200, table))
	require.Equal(t, 2, Resolve(501, table))
	require.Equal(t, 1, Resolve(2000, table))
}

func TestResolve_EmptyThresholds(t *testing.T) {
	table := New(5, nil)

	for _, w := range []float64{0, 1, 10_000} {
		require.Equal(t, 5, Resolve(w, table))
	}
}

func TestResolve_AlwaysPositive(t *testing.T) {
	t.Run("zero value table", func(t *testing.T) {
		require.Equal(t, FallbackColumns, Resolve(100, Table{}))
	})

	t.Run("NaN width falls through to default", func(t *testing.T) {
		table := New(3, map[float64]int{100: 1})
		require.Equal(t, 3, Resolve(math.NaN(), table))
	})

	t.Run("property over many widths", func(t *testing.T) {
		table := New(4, map[float64]int{320: 1, 640: 2, 960: 3})
		for w := 0.0; w < 2000; w += 7.5 {
			got := Resolve(w, table)
			require.GreaterOrEqual(t, got, 1)
			if w > 960 {
				require.Equal(t, 4, got)
			}
		}
	})
}

func TestResolver_IsolatedFromTableMutation(t *testing.T) {
	table := New(3, map[float64]int{100: 1})
	r := NewResolver(table)

	table.Thresholds[200] = 2
	table.Default = 9

	require.Equal(t, 3, r.Resolve(150))
}
