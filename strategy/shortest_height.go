package strategy

import "github.com/brokenalarms/astro-masonry/types"

// SumHeights is the default height provider: a column's height is the sum of
// its items' Height fields. It has no side effects.
var SumHeights types.HeightProvider = types.HeightProviderFunc(sumHeights)

func sumHeights(_ int, items []types.Item) float64 {
	var total float64
	for _, item := range items {
		total += item.Height
	}

	return total
}

// ShortestHeight places each item in the column with the least accumulated height.
type ShortestHeight struct {
	provider types.HeightProvider
}

var _ types.Distributor = (*ShortestHeight)(nil)

// NewShortestHeight creates a new shortest-height distributor.
//
// Parameters:
//   - provider: Reports column heights; nil uses SumHeights
//
// Returns:
//   - *ShortestHeight: Initialized distributor
//
// Example:
//
//	d := strategy.NewShortestHeight(types.HeightProviderFunc(func(col int, items []types.Item) float64 {
//	    return renderer.MeasureColumn(col)
//	}))
func NewShortestHeight(provider types.HeightProvider) *ShortestHeight {
	if provider == nil {
		provider = SumHeights
	}

	return &ShortestHeight{provider: provider}
}

// Kind returns types.StrategyShortestHeight.
func (s *ShortestHeight) Kind() types.Strategy {
	return types.StrategyShortestHeight
}

// Distribute places items one at a time into the column whose height, as
// reported by the provider after all previous placements, is smallest. Ties go
// to the lowest column index.
//
// The provider is queried once per column per item, so a renderer-backed
// provider sees every intermediate column state.
func (s *ShortestHeight) Distribute(items []types.Item, columnCount int) (types.Columns, error) {
	if err := checkColumnCount(columnCount); err != nil {
		return nil, err
	}

	cols := emptyColumns(columnCount, len(items))
	heights := make([]float64, columnCount)
	for _, item := range items {
		for c := range cols {
			heights[c] = s.provider.ColumnHeight(c, cols[c])
		}

		target := 0
		for c := 1; c < columnCount; c++ {
			if heights[c] < heights[target] {
				target = c
			}
		}
		cols[target] = append(cols[target], item)
	}

	return cols, nil
}
