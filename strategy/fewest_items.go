package strategy

import "github.com/brokenalarms/astro-masonry/types"

// FewestItems places each item in the column currently holding the fewest items.
type FewestItems struct{}

var _ types.Distributor = (*FewestItems)(nil)

// NewFewestItems creates a new fewest-items distributor.
func NewFewestItems() *FewestItems {
	return &FewestItems{}
}

// Kind returns types.StrategyFewestItems.
func (f *FewestItems) Kind() types.Strategy {
	return types.StrategyFewestItems
}

// Distribute places items one at a time into the least-populated column,
// breaking ties toward the lowest column index. Column item counts never differ
// by more than one.
func (f *FewestItems) Distribute(items []types.Item, columnCount int) (types.Columns, error) {
	if err := checkColumnCount(columnCount); err != nil {
		return nil, err
	}

	cols := emptyColumns(columnCount, len(items))
	for _, item := range items {
		target := 0
		for c := 1; c < columnCount; c++ {
			if len(cols[c]) < len(cols[target]) {
				target = c
			}
		}
		cols[target] = append(cols[target], item)
	}

	return cols, nil
}
