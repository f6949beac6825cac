package masonry

import (
	"github.com/brokenalarms/astro-masonry/breakpoint"
	"github.com/brokenalarms/astro-masonry/strategy"
)

// Resolve returns the column count for width under table.
//
// Thresholds are scanned in ascending order and the first threshold t with
// width <= t wins; when none matches, table.Default is used.
//
// Example:
//
//	table := breakpoint.New(3, map[float64]int{600: 1, 900: 2})
//	masonry.Resolve(250, table) // 1
//	masonry.Resolve(1200, table) // 3
func Resolve(width float64, table breakpoint.Table) int {
	return breakpoint.Resolve(width, table)
}

// Distribute places items into columnCount columns with the given strategy.
//
// The result is a clean rebuild: every item appears in exactly one column and
// each column keeps the original relative order.
//
// Parameters:
//   - items: Items in original order
//   - columnCount: Number of columns (must be at least 1)
//   - kind: Placement strategy
//   - provider: Height provider for StrategyShortestHeight (nil uses item heights)
//
// Returns:
//   - Columns: columnCount columns
//   - error: ErrInvalidColumnCount or ErrUnknownStrategy
func Distribute(items []Item, columnCount int, kind Strategy, provider HeightProvider) (Columns, error) {
	d, err := strategy.New(kind, provider)
	if err != nil {
		return nil, err
	}

	return d.Distribute(items, columnCount)
}

// Build resolves the column count for width and distributes items in one step,
// returning an unversioned Layout.
func Build(items []Item, width float64, table breakpoint.Table, kind Strategy, provider HeightProvider) (Layout, error) {
	columns := Resolve(width, table)

	cols, err := Distribute(items, columns, kind, provider)
	if err != nil {
		return Layout{}, err
	}

	return Layout{
		Width:       width,
		ColumnCount: columns,
		Strategy:    kind,
		Columns:     cols,
	}, nil
}
