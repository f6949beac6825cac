package types

import "context"

// Hooks defines callbacks for controller layout events.
//
// All hooks are optional. They run on the controller's event loop after the
// new layout is already visible through Controller.Layout, so they must return
// quickly; long work belongs in a goroutine owned by the hook. Hooks must not
// call the controller's Start, Stop, Watch or Reload.
//
// Hook errors are logged but never fail layout.
//
// Example:
//
//	hooks := &masonry.Hooks{
//	    OnLayoutChanged: func(ctx context.Context, prev, next masonry.Layout) error {
//	        return renderer.Apply(next.Columns)
//	    },
//	}
type Hooks struct {
	// OnLayoutChanged is called after a full redistribution produced a new layout.
	// prev is the zero Layout for the initial build.
	OnLayoutChanged func(ctx context.Context, prev, next Layout) error

	// OnError is called when a recoverable error occurs (publish failure or
	// item source failure during reload).
	OnError func(ctx context.Context, err error) error
}
