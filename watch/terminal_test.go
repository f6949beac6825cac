package watch

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brokenalarms/astro-masonry/internal/logging"
)

// fakeTerminal returns a Terminal whose size is read from width.
func fakeTerminal(width *atomic.Int64) *Terminal {
	term := NewTerminal(0, logging.NewNop())
	term.getSize = func(int) (int, int, error) {
		return int(width.Load()), 24, nil
	}

	return term
}

func TestTerminal_Width(t *testing.T) {
	var width atomic.Int64
	width.Store(132)

	got, err := fakeTerminal(&width).Width()
	require.NoError(t, err)
	require.Equal(t, float64(132), got)
}

func TestTerminal_WidthError(t *testing.T) {
	term := NewTerminal(-1, nil)
	term.getSize = func(int) (int, int, error) {
		return 0, 0, errors.New("inappropriate ioctl for device")
	}

	_, err := term.Width()
	require.ErrorIs(t, err, ErrNotTerminal)

	_, err = term.Subscribe(t.Context(), func(float64) {})
	require.ErrorIs(t, err, ErrNotTerminal)
}

func TestTerminal_SubscribeReportsCurrentWidth(t *testing.T) {
	var width atomic.Int64
	width.Store(80)

	var got widthRecorder
	release, err := fakeTerminal(&width).Subscribe(t.Context(), got.notify)
	require.NoError(t, err)

	require.Equal(t, []float64{80}, got.snapshot())

	release()
	release()
}

func TestTerminal_ReportSkipsUnchanged(t *testing.T) {
	var width atomic.Int64
	width.Store(80)
	term := fakeTerminal(&width)

	var got widthRecorder
	last := term.report(80, got.notify)
	require.Equal(t, float64(80), last)
	require.Empty(t, got.snapshot())

	width.Store(100)
	last = term.report(last, got.notify)
	require.Equal(t, float64(100), last)
	require.Equal(t, []float64{100}, got.snapshot())
}
