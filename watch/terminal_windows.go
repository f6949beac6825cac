//go:build windows

package watch

import "time"

// start polls the width since windows has no resize signal. The returned
// channel closes once stop is closed and polling ended.
func (t *Terminal) start(stop <-chan struct{}, last float64, notify func(float64)) <-chan struct{} {
	ticker := time.NewTicker(t.pollInterval)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				last = t.report(last, notify)
			}
		}
	}()

	return done
}
