// Package throttle implements a leading-edge throttle with a single coalesced
// trailing call.
//
// The first signal after a quiet period is handled immediately and opens a
// window. Signals arriving inside the window are not handled individually;
// only the most recent one is remembered. When the window ends, the remembered
// signal (if any) is handled and a new window opens. A window that ends with
// nothing pending simply closes.
//
// Throttle is a plain state machine driven from a single goroutine: the owner
// calls Signal for every input and Expire whenever C() fires. Run wraps this
// into a ready-made select loop.
package throttle

import (
	"context"
	"time"
)

// Throttle coalesces values of type T. It is not safe for concurrent use.
type Throttle[T any] struct {
	window  time.Duration
	timer   *time.Timer
	open    bool
	pending bool
	latest  T
}

// New creates a throttle with the given window. A window <= 0 disables
// throttling: every signal is handled immediately.
func New[T any](window time.Duration) *Throttle[T] {
	t := &Throttle[T]{window: window}
	if window > 0 {
		t.timer = time.NewTimer(window)
		t.timer.Stop() // Stop initially
	}

	return t
}

// Window returns the configured window.
func (t *Throttle[T]) Window() time.Duration {
	return t.window
}

// Signal feeds one value into the throttle.
//
// Returns:
//   - fire: true if v must be handled now (leading edge)
//   - coalesced: true if v replaced or became the pending trailing value
func (t *Throttle[T]) Signal(v T) (fire bool, coalesced bool) {
	if t.timer == nil {
		return true, false
	}
	if !t.open {
		t.open = true
		t.timer.Reset(t.window)

		return true, false
	}

	t.pending = true
	t.latest = v

	return false, true
}

// C returns the channel that fires when the current window ends. It is nil
// when throttling is disabled; a nil channel blocks forever in a select.
func (t *Throttle[T]) C() <-chan time.Time {
	if t.timer == nil {
		return nil
	}

	return t.timer.C
}

// Expire must be called when C() fires. If a value is pending it is returned
// with fire=true and a new window opens; otherwise the window closes.
func (t *Throttle[T]) Expire() (v T, fire bool) {
	if !t.pending {
		t.open = false
		return v, false
	}

	v = t.latest
	var zero T
	t.latest = zero
	t.pending = false
	t.timer.Reset(t.window)

	return v, true
}

// Pending reports whether a trailing value is waiting for the window to end.
func (t *Throttle[T]) Pending() bool {
	return t.pending
}

// Stop discards any pending value and closes the window.
func (t *Throttle[T]) Stop() {
	if t.timer != nil {
		t.timer.Stop()
	}
	var zero T
	t.latest = zero
	t.pending = false
	t.open = false
}

// Run handles values from in through the throttle until ctx is done or in is
// closed. fn runs on the calling goroutine, so handling is never concurrent.
//
// Example:
//
//	widths := make(chan float64, 16)
//	go throttle.New[float64](100*time.Millisecond).Run(ctx, widths, func(w float64) {
//	    relayout(w)
//	})
func (t *Throttle[T]) Run(ctx context.Context, in <-chan T, fn func(T)) {
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-in:
			if !ok {
				return
			}
			if fire, _ := t.Signal(v); fire {
				fn(v)
			}
		case <-t.C():
			if v, fire := t.Expire(); fire {
				fn(v)
			}
		}
	}
}
