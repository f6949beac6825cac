package hooks

import (
	"context"

	"github.com/brokenalarms/astro-masonry/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default implementation used when no custom hooks are provided,
// eliminating the need for nil checks throughout the codebase.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, types.Layout, types.Layout) error = (*NopHooks)(nil).OnLayoutChanged
	_ func(context.Context, error) error                      = (*NopHooks)(nil).OnError
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnLayoutChanged: h.OnLayoutChanged,
		OnError:         h.OnError,
	}
}

// Fill returns a copy of h with every nil callback replaced by its no-op version.
// A nil h yields NewNop().
func Fill(h *types.Hooks) types.Hooks {
	out := NewNop()
	if h == nil {
		return out
	}
	if h.OnLayoutChanged != nil {
		out.OnLayoutChanged = h.OnLayoutChanged
	}
	if h.OnError != nil {
		out.OnError = h.OnError
	}

	return out
}

// OnLayoutChanged is a no-op implementation.
func (h *NopHooks) OnLayoutChanged(ctx context.Context, prev, next types.Layout) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(ctx context.Context, err error) error {
	return nil
}
