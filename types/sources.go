package types

import "context"

// ItemSource supplies the full ordered item list.
//
// The controller reads the source once on Start and again only on an explicit
// Reload; it never discovers new items on its own.
type ItemSource interface {
	// ListItems returns all items in display order.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - []Item: Items in original order
	//   - error: Discovery error (nil on success)
	ListItems(ctx context.Context) ([]Item, error)
}

// WidthSource produces width-change signals for a controller.
//
// Subscribe registers notify and returns a function releasing the subscription.
// The controller owns the returned function and calls it on Stop.
type WidthSource interface {
	// Subscribe starts delivering widths to notify until the returned cancel
	// function is called.
	//
	// Parameters:
	//   - ctx: Context bounding the subscription setup
	//   - notify: Callback invoked with every observed width
	//
	// Returns:
	//   - func(): Unsubscribe function (idempotent)
	//   - error: Subscription error
	Subscribe(ctx context.Context, notify func(width float64)) (func(), error)
}

// LayoutPublisher hands a freshly built layout to rendering glue that lives
// outside the process (e.g. a key-value bucket watched by renderers).
type LayoutPublisher interface {
	// Publish stores or forwards the layout. Errors are logged by the caller
	// and never block layout.
	Publish(ctx context.Context, layout Layout) error
}

// VersionedPublisher is a LayoutPublisher that persists layouts and can report
// the highest version already stored. A controller seeds its version counter
// from it on Start so versions stay monotonic across restarts.
type VersionedPublisher interface {
	LayoutPublisher

	// HighestVersion returns the highest stored layout version (0 if none).
	HighestVersion(ctx context.Context) (int64, error)
}
