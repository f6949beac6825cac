package masonry

import "github.com/brokenalarms/astro-masonry/types"

// Re-export types from the types package.
//
// The types subpackage holds the definitions so that strategy, publisher and
// the internal packages can depend on it without importing the root package.
// The aliases give users a convenient masonry.Item, masonry.Layout, etc.
type (
	State    = types.State
	Item     = types.Item
	Columns  = types.Columns
	Layout   = types.Layout
	Strategy = types.Strategy
)

// Re-export interfaces from the types package for convenience.
type (
	Distributor        = types.Distributor
	HeightProvider     = types.HeightProvider
	HeightProviderFunc = types.HeightProviderFunc
	ItemSource         = types.ItemSource
	WidthSource        = types.WidthSource
	LayoutPublisher    = types.LayoutPublisher
	VersionedPublisher = types.VersionedPublisher
	MetricsCollector   = types.MetricsCollector
	Logger             = types.Logger
	Hooks              = types.Hooks
)

// Re-export State constants from the types package.
const (
	StateInit    = types.StateInit
	StateRunning = types.StateRunning
	StateStopped = types.StateStopped
)

// Re-export Strategy constants from the types package.
const (
	StrategySequential     = types.StrategySequential
	StrategyFewestItems    = types.StrategyFewestItems
	StrategyShortestHeight = types.StrategyShortestHeight
)
