package source

import (
	"context"
	"sync"

	"github.com/brokenalarms/astro-masonry/types"
)

// Static implements an item source with a fixed list of items.
type Static struct {
	mu    sync.RWMutex
	items []types.Item
}

var _ types.ItemSource = (*Static)(nil)

// NewStatic creates a new static item source.
//
// The source returns its items in the given order until Update replaces them.
// Useful for tests and for glue that already holds the full item list.
//
// Parameters:
//   - items: Items in display order (copied)
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	src := source.NewStatic([]types.Item{
//	    {ID: "card-1", Height: 240},
//	    {ID: "card-2", Height: 180},
//	})
//	ctrl, err := masonry.NewController(&cfg, src)
//	if err != nil { /* handle */ }
func NewStatic(items []types.Item) *Static {
	s := &Static{}
	s.set(items)

	return s
}

// ListItems returns a copy of the current item list.
//
// Returns:
//   - []types.Item: Items in display order
//   - error: Always nil (never fails)
func (s *Static) ListItems(_ context.Context) ([]types.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]types.Item, len(s.items))
	copy(result, s.items)

	return result, nil
}

// Update replaces the item list.
//
// The controller does not observe the change by itself; call Controller.Reload
// afterwards to rebuild the layout.
//
// Example:
//
//	src.Update(append(items, types.Item{ID: "card-9"}))
//	_ = ctrl.Reload(ctx)
func (s *Static) Update(items []types.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set(items)
}

func (s *Static) set(items []types.Item) {
	s.items = make([]types.Item, len(items))
	copy(s.items, items)
}
