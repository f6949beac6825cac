package types

import "errors"

// Sentinel errors for the masonry library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap them with context using fmt.Errorf("%w: ...", err).

// Controller errors - Public API errors returned by the layout controller.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrItemSourceRequired is returned when the item source is nil.
	ErrItemSourceRequired = errors.New("item source is required")

	// ErrWidthSourceRequired is returned when Watch is called with a nil width source.
	ErrWidthSourceRequired = errors.New("width source is required")

	// ErrAlreadyStarted is returned when Start is called on an already running controller.
	ErrAlreadyStarted = errors.New("controller already started")

	// ErrNotStarted is returned when operations require a started controller.
	ErrNotStarted = errors.New("controller not started")

	// ErrStopped is returned when Start is called on a controller that was stopped.
	ErrStopped = errors.New("controller stopped")

	// ErrInvalidWidth is returned for a negative, NaN or infinite width.
	ErrInvalidWidth = errors.New("invalid width")
)

// Breakpoint errors - Breakpoint table parsing and validation errors.
var (
	// ErrInvalidBreakpoints is returned when a breakpoint table violates its invariants
	// (non-positive default, negative threshold, non-positive column count).
	ErrInvalidBreakpoints = errors.New("invalid breakpoint table")

	// ErrMalformedBreakpoints is returned when breakpoint input cannot be read as a table.
	ErrMalformedBreakpoints = errors.New("malformed breakpoint table")
)

// Distributor errors - Column distribution errors.
var (
	// ErrInvalidColumnCount is returned when a distributor is asked for fewer than one column.
	ErrInvalidColumnCount = errors.New("column count must be at least 1")

	// ErrUnknownStrategy is returned for a strategy name or value outside the known set.
	ErrUnknownStrategy = errors.New("unknown placement strategy")
)

// Publisher errors - Layout publishing errors.
var (
	// ErrPublishFailed is returned when publishing a layout to the KV bucket fails.
	ErrPublishFailed = errors.New("failed to publish layout")

	// ErrNoKeysFound is returned when the KV bucket holds no keys (expected condition).
	ErrNoKeysFound = errors.New("no keys found")
)
