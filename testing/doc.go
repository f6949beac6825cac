// Package testing provides test utilities for masonry.
//
// It follows Go's convention of shipping test helpers in a dedicated package
// (similar to net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: Single NATS server with JetStream
//   - CreateJetStreamKV: In-memory KV bucket for publisher tests
//   - NewTestLogger: types.Logger writing to t.Logf
//
// Example usage:
//
//	import (
//	    "testing"
//	    masonrytest "github.com/brokenalarms/astro-masonry/testing"
//	)
//
//	func TestMyRenderer(t *testing.T) {
//	    _, nc := masonrytest.StartEmbeddedNATS(t)
//	    // Use nc for your tests
//	}
package testing
