package masonry

import "github.com/brokenalarms/astro-masonry/types"

// Sentinel errors returned by the Controller and the layout helpers.
var (
	ErrInvalidConfig        = types.ErrInvalidConfig
	ErrItemSourceRequired   = types.ErrItemSourceRequired
	ErrWidthSourceRequired  = types.ErrWidthSourceRequired
	ErrAlreadyStarted       = types.ErrAlreadyStarted
	ErrNotStarted           = types.ErrNotStarted
	ErrStopped              = types.ErrStopped
	ErrInvalidWidth         = types.ErrInvalidWidth
	ErrInvalidBreakpoints   = types.ErrInvalidBreakpoints
	ErrMalformedBreakpoints = types.ErrMalformedBreakpoints
	ErrInvalidColumnCount   = types.ErrInvalidColumnCount
	ErrUnknownStrategy      = types.ErrUnknownStrategy
	ErrPublishFailed        = types.ErrPublishFailed
	ErrNoKeysFound          = types.ErrNoKeysFound
)
