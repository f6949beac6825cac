package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	masonry "github.com/brokenalarms/astro-masonry"
)

func TestLayoutCommand_Text(t *testing.T) {
	items := writeFile(t, "items.yaml", testItems)
	twoColumns := `{"default": 2}`

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "sequential by default",
			want: "column 0: a c\ncolumn 1: b d\n",
		},
		{
			name: "sort by height",
			args: []string{"--sort-by-height"},
			want: "column 0: a\ncolumn 1: b c d\n",
		},
		{
			name: "horizontal order",
			args: []string{"--horizontal-order"},
			want: "column 0: a c\ncolumn 1: b d\n",
		},
		{
			name: "sort by height wins over horizontal order",
			args: []string{"--sort-by-height", "--horizontal-order"},
			want: "column 0: a\ncolumn 1: b c d\n",
		},
		{
			name: "explicit strategy",
			args: []string{"--strategy", "shortest-height"},
			want: "column 0: a\ncolumn 1: b c d\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"layout", "--width", "1000", "--items", items, "--breakpoints", twoColumns}, tt.args...)
			out, err := execute(t, args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestLayoutCommand_JSON(t *testing.T) {
	items := writeFile(t, "items.json", `[{"id": "x"}, {"id": "y"}, {"id": "z"}]`)

	out, err := execute(t, "layout", "-w", "300", "-i", items, "-f", "json",
		"--breakpoints", `{"default": 3, "400": 1}`)
	require.NoError(t, err)

	var layout masonry.Layout
	require.NoError(t, json.Unmarshal([]byte(out), &layout))
	require.Equal(t, 1, layout.ColumnCount)
	require.InDelta(t, 300, layout.Width, 0)
	require.Equal(t, masonry.StrategySequential, layout.Strategy)
	require.Len(t, layout.Columns, 1)
	require.Len(t, layout.Columns[0], 3)
}

func TestLayoutCommand_Render(t *testing.T) {
	items := writeFile(t, "items.yaml", testItems)

	out, err := execute(t, "layout", "-w", "80", "-i", items, "--render", "--breakpoints", `{"default": 2}`)
	require.NoError(t, err)
	require.Contains(t, out, "2 columns")
	require.Contains(t, out, "#0")
	require.Contains(t, out, "#1")
}

func TestLayoutCommand_EmptyItems(t *testing.T) {
	items := writeFile(t, "items.yaml", "[]")

	out, err := execute(t, "layout", "-w", "1000", "-i", items, "--breakpoints", `{"default": 3}`)
	require.NoError(t, err)
	require.Equal(t, "column 0: \ncolumn 1: \ncolumn 2: \n", out)
}

func TestLayoutCommand_Errors(t *testing.T) {
	items := writeFile(t, "items.yaml", testItems)

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := execute(t, "layout", "-w", "100", "-i", items, "--strategy", "spiral")
		require.ErrorIs(t, err, masonry.ErrUnknownStrategy)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, "layout", "-w", "100", "-i", items, "-f", "xml")
		require.ErrorContains(t, err, "unknown format")
	})

	t.Run("missing item file", func(t *testing.T) {
		_, err := execute(t, "layout", "-w", "100", "-i", items+".missing")
		require.Error(t, err)
	})

	t.Run("items required", func(t *testing.T) {
		_, err := execute(t, "layout", "-w", "100")
		require.Error(t, err)
	})
}
