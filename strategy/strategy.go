package strategy

import (
	"fmt"

	"github.com/brokenalarms/astro-masonry/types"
)

// New returns the distributor for kind.
//
// Parameters:
//   - kind: Strategy kind
//   - provider: Height provider for StrategyShortestHeight (nil uses SumHeights);
//     ignored by the other kinds
//
// Returns:
//   - types.Distributor: The distributor
//   - error: types.ErrUnknownStrategy for a value outside the closed set
func New(kind types.Strategy, provider types.HeightProvider) (types.Distributor, error) {
	switch kind {
	case types.StrategySequential:
		return NewSequential(), nil
	case types.StrategyFewestItems:
		return NewFewestItems(), nil
	case types.StrategyShortestHeight:
		return NewShortestHeight(provider), nil
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownStrategy, kind)
	}
}

// FromOptions maps the layout option flags to a strategy kind.
//
// sortByHeight is checked first, so it wins when both flags are set. With
// neither flag the sequential strategy is selected.
func FromOptions(sortByHeight, horizontalOrder bool) types.Strategy {
	switch {
	case sortByHeight:
		return types.StrategyShortestHeight
	case horizontalOrder:
		return types.StrategyFewestItems
	default:
		return types.StrategySequential
	}
}
