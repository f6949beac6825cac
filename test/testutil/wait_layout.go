package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/brokenalarms/astro-masonry/types"
)

// ErrWaitTimeout is returned when no matching layout arrived in time.
var ErrWaitTimeout = errors.New("timed out waiting for layout")

// WaitForLayout reads layouts from ch until one satisfies match.
//
// Parameters:
//   - ctx: Context for cancellation
//   - ch: Layout channel, typically from Controller.Subscribe
//   - match: Predicate the layout must satisfy
//   - timeout: Maximum time to wait
//
// Returns:
//   - types.Layout: The first matching layout
//   - error: ErrWaitTimeout, ctx.Err(), or an error when ch closes
//
// Example:
//
//	ch, unsubscribe := ctrl.Subscribe()
//	defer unsubscribe()
//	layout, err := testutil.WaitForLayout(ctx, ch, testutil.ColumnCount(3), 2*time.Second)
func WaitForLayout(
	ctx context.Context,
	ch <-chan types.Layout,
	match func(types.Layout) bool,
	timeout time.Duration,
) (types.Layout, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case layout, ok := <-ch:
			if !ok {
				return types.Layout{}, errors.New("layout channel closed")
			}
			if match(layout) {
				return layout, nil
			}
		case <-timer.C:
			return types.Layout{}, ErrWaitTimeout
		case <-ctx.Done():
			return types.Layout{}, ctx.Err()
		}
	}
}

// ColumnCount matches layouts with exactly n columns.
func ColumnCount(n int) func(types.Layout) bool {
	return func(l types.Layout) bool { return l.ColumnCount == n }
}

// WaitAllLayouts waits on several layout channels in parallel and returns the
// first error. Remaining waits are abandoned on the first failure.
func WaitAllLayouts(
	ctx context.Context,
	chans []<-chan types.Layout,
	match func(types.Layout) bool,
	timeout time.Duration,
) error {
	if len(chans) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	for i, ch := range chans {
		wg.Go(func() {
			if _, err := WaitForLayout(ctx, ch, match, timeout); err != nil {
				errOnce.Do(func() {
					firstErr = fmt.Errorf("subscriber[%d]: %w", i, err)
					cancel()
				})
			}
		})
	}

	wg.Wait()

	return firstErr
}
