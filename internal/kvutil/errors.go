package kvutil

import (
	"errors"
	"strings"

	"github.com/brokenalarms/astro-masonry/types"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// IsConnectivityError reports whether err was caused by losing the NATS
// connection (timeouts, refused connections, closed or draining connections).
//
// Kept here so that the types package stays free of NATS imports.
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, nats.ErrTimeout) ||
		errors.Is(err, nats.ErrNoServers) ||
		errors.Is(err, nats.ErrDisconnected) ||
		errors.Is(err, nats.ErrConnectionClosed) ||
		errors.Is(err, nats.ErrConnectionDraining) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "i/o timeout")
}

// IsNoKeysFound reports whether err means an empty bucket, either from
// JetStream directly or already translated to types.ErrNoKeysFound.
func IsNoKeysFound(err error) bool {
	return errors.Is(err, jetstream.ErrNoKeysFound) || errors.Is(err, types.ErrNoKeysFound)
}
