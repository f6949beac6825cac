package types

import (
	"fmt"
	"strings"
)

// Strategy selects how items are placed into columns.
//
// It is a closed set chosen once at configuration time:
//   - StrategySequential: item i goes to column i mod columnCount
//   - StrategyFewestItems: each item extends the column holding the fewest items
//   - StrategyShortestHeight: each item extends the column with the smallest accumulated height
type Strategy int

const (
	// StrategySequential places items round-robin by original index.
	StrategySequential Strategy = iota

	// StrategyFewestItems greedily extends the column with the smallest item count.
	StrategyFewestItems

	// StrategyShortestHeight greedily extends the column with the smallest accumulated height.
	StrategyShortestHeight
)

// String returns the canonical name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategySequential:
		return "sequential"
	case StrategyFewestItems:
		return "fewest-items"
	case StrategyShortestHeight:
		return "shortest-height"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Valid reports whether s is one of the known strategies.
func (s Strategy) Valid() bool {
	return s >= StrategySequential && s <= StrategyShortestHeight
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed

	return nil
}

// ParseStrategy parses a strategy name.
//
// Accepted names are "sequential", "fewest-items" and "shortest-height"
// (case-insensitive, underscores accepted in place of dashes).
//
// Returns:
//   - Strategy: Parsed strategy
//   - error: ErrUnknownStrategy if the name is not recognized
func ParseStrategy(name string) (Strategy, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	switch normalized {
	case "sequential", "":
		return StrategySequential, nil
	case "fewest-items":
		return StrategyFewestItems, nil
	case "shortest-height":
		return StrategyShortestHeight, nil
	default:
		return StrategySequential, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Distributor assigns an ordered item list to a fixed number of columns.
//
// Implementations must:
//   - Be deterministic (same input → same output)
//   - Place every item in exactly one column, preserving relative order within a column
//   - Return columnCount columns, even when items is empty
//   - Fail fast with ErrInvalidColumnCount when columnCount < 1
//   - Keep no memory between calls (every call is a full rebuild)
type Distributor interface {
	// Distribute assigns items to columnCount columns.
	//
	// Parameters:
	//   - items: Items in original order
	//   - columnCount: Number of columns (must be >= 1)
	//
	// Returns:
	//   - Columns: Column index to ordered item sequence
	//   - error: ErrInvalidColumnCount if columnCount < 1
	Distribute(items []Item, columnCount int) (Columns, error)

	// Kind returns the strategy this distributor implements.
	Kind() Strategy
}

// HeightProvider reports the accumulated height of a column.
//
// Height is a rendering-time property, so the shortest-height strategy asks the
// provider after every placement. Implementations backed by a live renderer
// measure the column; synthetic implementations derive it from the items.
type HeightProvider interface {
	// ColumnHeight returns the current height of column index holding items.
	ColumnHeight(column int, items []Item) float64
}

// HeightProviderFunc adapts an ordinary function to HeightProvider.
type HeightProviderFunc func(column int, items []Item) float64

// ColumnHeight calls f(column, items).
func (f HeightProviderFunc) ColumnHeight(column int, items []Item) float64 {
	return f(column, items)
}
