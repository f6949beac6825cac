package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brokenalarms/astro-masonry/types"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - headings
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleColumn = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// minColumnWidth is the narrowest rendered column, borders excluded.
const minColumnWidth = 6

// renderColumns draws the layout as side-by-side bordered columns fitting in
// totalWidth terminal cells.
func renderColumns(layout types.Layout, totalWidth int) string {
	count := max(len(layout.Columns), 1)

	// Border and padding take 4 cells per column
	inner := max(totalWidth/count-4, minColumnWidth)

	boxes := make([]string, 0, count)
	for i, col := range layout.Columns {
		lines := make([]string, 0, len(col)+1)
		lines = append(lines, StyleDim.Render(fmt.Sprintf("#%d", i)))
		for _, item := range col {
			lines = append(lines, StyleValue.Render(truncate(item.ID, inner)))
		}
		boxes = append(boxes, styleColumn.Width(inner).Render(strings.Join(lines, "\n")))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// renderHeader summarizes a layout on one line.
func renderHeader(layout types.Layout) string {
	return fmt.Sprintf("%s %s",
		StyleTitle.Render(fmt.Sprintf("%d columns", layout.ColumnCount)),
		StyleDim.Render(fmt.Sprintf("width=%g strategy=%s items=%d version=%d",
			layout.Width, layout.Strategy, layout.Columns.ItemCount(), layout.Version)))
}

// writeText prints one line per column: "column N: id id id".
func writeText(w io.Writer, layout types.Layout) error {
	for i, col := range layout.Columns {
		ids := make([]string, len(col))
		for j, item := range col {
			ids[j] = item.ID
		}
		if _, err := fmt.Fprintf(w, "column %d: %s\n", i, strings.Join(ids, " ")); err != nil {
			return err
		}
	}

	return nil
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	n := min(width-1, len(r))
	if n < 1 {
		return string(r[:1])
	}

	return string(r[:n]) + "…"
}
