package cli

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	masonry "github.com/brokenalarms/astro-masonry"
	"github.com/brokenalarms/astro-masonry/breakpoint"
)

// fakeTerminal reports initial on Subscribe and later widths through emit.
type fakeTerminal struct {
	mu      sync.Mutex
	initial float64
	notify  func(float64)
}

func (f *fakeTerminal) Subscribe(_ context.Context, notify func(float64)) (func(), error) {
	f.mu.Lock()
	f.notify = notify
	f.mu.Unlock()

	notify(f.initial)

	return func() {}, nil
}

func (f *fakeTerminal) emit(width float64) {
	f.mu.Lock()
	notify := f.notify
	f.mu.Unlock()

	if notify != nil {
		notify(width)
	}
}

func TestScaledWidth(t *testing.T) {
	term := &fakeTerminal{initial: 100}

	var got []float64
	release, err := scaledWidth{src: term, factor: 8}.Subscribe(t.Context(), func(w float64) {
		got = append(got, w)
	})
	require.NoError(t, err)
	defer release()

	term.emit(50)
	require.Equal(t, []float64{800, 400}, got)
}

func TestRunPreview(t *testing.T) {
	items := writeFile(t, "items.yaml", testItems)

	cfg := masonry.TestConfig()
	cfg.Breakpoints = breakpoint.New(3, map[float64]int{600: 1})

	term := &fakeTerminal{initial: 100} // 800px at 8px per cell
	var out syncBuffer

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	c := New(io.Discard, LogInfo)
	done := make(chan error, 1)
	go func() {
		done <- c.runPreview(ctx, &out, cfg, &configFlags{}, items, scaledWidth{src: term, factor: 8})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "3 columns")
	}, 2*time.Second, 10*time.Millisecond)

	// 60 cells = 480px
	require.Eventually(t, func() bool {
		term.emit(60)
		return strings.Contains(out.String(), "1 columns")
	}, 2*time.Second, 20*time.Millisecond)

	require.Contains(t, out.String(), clearScreen)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("preview did not exit after cancel")
	}
}
