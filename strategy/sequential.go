package strategy

import "github.com/brokenalarms/astro-masonry/types"

// Sequential places item i in column i mod c.
type Sequential struct{}

var _ types.Distributor = (*Sequential)(nil)

// NewSequential creates a new sequential distributor.
//
// The distributor reproduces horizontal reading order: the first row holds
// items 0..c-1, the second row c..2c-1, and so on. It never inspects item
// content.
//
// Returns:
//   - *Sequential: Initialized sequential distributor
//
// Example:
//
//	d := strategy.NewSequential()
//	cols, err := d.Distribute(items, 3)
func NewSequential() *Sequential {
	return &Sequential{}
}

// Kind returns types.StrategySequential.
func (s *Sequential) Kind() types.Strategy {
	return types.StrategySequential
}

// Distribute calculates column membership using index modulo column count.
//
// Parameters:
//   - items: Items in original order
//   - columnCount: Number of columns (must be at least 1)
//
// Returns:
//   - types.Columns: columnCount columns, each preserving original relative order
//   - error: types.ErrInvalidColumnCount when columnCount < 1
func (s *Sequential) Distribute(items []types.Item, columnCount int) (types.Columns, error) {
	if err := checkColumnCount(columnCount); err != nil {
		return nil, err
	}

	cols := emptyColumns(columnCount, len(items))
	for i, item := range items {
		col := i % columnCount
		cols[col] = append(cols[col], item)
	}

	return cols, nil
}
