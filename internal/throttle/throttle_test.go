package throttle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	values []float64
}

func (r *recorder) add(v float64) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]float64(nil), r.values...)
}

func TestThrottle_StateMachine(t *testing.T) {
	t.Run("leading edge fires immediately", func(t *testing.T) {
		th := New[int](time.Hour)
		defer th.Stop()

		fire, coalesced := th.Signal(1)
		require.True(t, fire)
		require.False(t, coalesced)
		require.False(t, th.Pending())
	})

	t.Run("signals inside the window coalesce to the latest", func(t *testing.T) {
		th := New[int](time.Hour)
		defer th.Stop()

		fire, _ := th.Signal(1)
		require.True(t, fire)

		for v := 2; v <= 5; v++ {
			fire, coalesced := th.Signal(v)
			require.False(t, fire)
			require.True(t, coalesced)
		}
		require.True(t, th.Pending())

		v, fire := th.Expire()
		require.True(t, fire)
		require.Equal(t, 5, v)
		require.False(t, th.Pending())

		// The trailing call opened a new window.
		fire, _ = th.Signal(6)
		require.False(t, fire)
	})

	t.Run("quiet window closes", func(t *testing.T) {
		th := New[int](time.Hour)
		defer th.Stop()

		th.Signal(1)
		_, fire := th.Expire()
		require.False(t, fire)

		fire, _ = th.Signal(2)
		require.True(t, fire)
	})

	t.Run("zero window disables throttling", func(t *testing.T) {
		th := New[int](0)

		for v := range 5 {
			fire, coalesced := th.Signal(v)
			require.True(t, fire)
			require.False(t, coalesced)
		}
		require.Nil(t, th.C())
	})

	t.Run("stop discards pending", func(t *testing.T) {
		th := New[int](time.Hour)
		th.Signal(1)
		th.Signal(2)
		th.Stop()

		require.False(t, th.Pending())
		fire, _ := th.Signal(3)
		require.True(t, fire)
		th.Stop()
	})
}

func TestThrottle_Run(t *testing.T) {
	t.Run("burst yields leading and one trailing call", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		in := make(chan float64, 16)
		rec := &recorder{}
		th := New[float64](50 * time.Millisecond)

		done := make(chan struct{})
		go func() {
			th.Run(ctx, in, rec.add)
			close(done)
		}()

		for i := 1; i <= 10; i++ {
			in <- float64(i * 100)
		}

		require.Eventually(t, func() bool {
			return len(rec.snapshot()) == 2
		}, time.Second, 5*time.Millisecond)

		// Give a spurious third call a chance to show up.
		time.Sleep(150 * time.Millisecond)
		require.Equal(t, []float64{100, 1000}, rec.snapshot())

		cancel()
		<-done
	})

	t.Run("signals after a quiet period fire again", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		in := make(chan float64)
		rec := &recorder{}
		go New[float64](20*time.Millisecond).Run(ctx, in, rec.add)

		in <- 1
		require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)

		time.Sleep(80 * time.Millisecond)
		in <- 2
		require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
		require.Equal(t, []float64{1, 2}, rec.snapshot())
	})

	t.Run("closed input stops the loop", func(t *testing.T) {
		in := make(chan float64)
		done := make(chan struct{})
		go func() {
			New[float64](time.Millisecond).Run(t.Context(), in, func(float64) {})
			close(done)
		}()

		close(in)
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Run did not return after input closed")
		}
	})
}
