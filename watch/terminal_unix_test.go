//go:build !windows

package watch

import (
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTerminal_SIGWINCH(t *testing.T) {
	var width atomic.Int64
	width.Store(80)

	var got widthRecorder
	release, err := fakeTerminal(&width).Subscribe(t.Context(), got.notify)
	require.NoError(t, err)
	defer release()

	width.Store(120)
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGWINCH))

	require.Eventually(t, func() bool {
		return len(got.snapshot()) == 2
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, []float64{80, 120}, got.snapshot())
}
