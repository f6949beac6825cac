//go:build !windows

package watch

import (
	"os"
	"os/signal"
	"syscall"
)

// start registers for SIGWINCH before returning and re-reads the width on
// every signal until stop is closed. The returned channel closes on exit.
func (t *Terminal) start(stop <-chan struct{}, last float64, notify func(float64)) <-chan struct{} {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer signal.Stop(ch)

		for {
			select {
			case <-stop:
				return
			case <-ch:
				last = t.report(last, notify)
			}
		}
	}()

	return done
}
