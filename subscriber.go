package masonry

import "sync"

// layoutSubscriber is a helper for managing layout subscriptions.
type layoutSubscriber struct {
	ch     chan Layout
	mu     sync.Mutex
	closed bool
}

// trySend sends a layout to the subscriber's channel without blocking.
//
// When the buffer is full the oldest queued layout is dropped so the subscriber
// always ends up holding the newest one.
func (s *layoutSubscriber) trySend(layout Layout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	select {
	case s.ch <- layout:
		return
	default:
	}

	// Subscriber is slow; replace the stale layout.
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- layout:
	default:
	}
}

// close safely closes the subscriber's channel.
func (s *layoutSubscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
