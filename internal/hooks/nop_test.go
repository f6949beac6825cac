package hooks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brokenalarms/astro-masonry/types"
)

func TestNewNop(t *testing.T) {
	hooks := NewNop()

	require.NotNil(t, hooks.OnLayoutChanged)
	require.NotNil(t, hooks.OnError)
}

func TestNopHooks_OnLayoutChanged(t *testing.T) {
	hooks := NewNop()
	ctx := context.Background()

	prev := types.Layout{}
	next := types.Layout{
		Version:     1,
		Width:       800,
		ColumnCount: 2,
		Columns:     types.Columns{{{ID: "a"}}, {{ID: "b"}}},
	}

	require.NoError(t, hooks.OnLayoutChanged(ctx, prev, next))
}

func TestNopHooks_OnError(t *testing.T) {
	hooks := NewNop()

	require.NoError(t, hooks.OnError(context.Background(), errors.New("boom")))
	require.NoError(t, hooks.OnError(context.Background(), nil))
}

func TestFill(t *testing.T) {
	t.Run("nil hooks", func(t *testing.T) {
		h := Fill(nil)
		require.NotNil(t, h.OnLayoutChanged)
		require.NotNil(t, h.OnError)
	})

	t.Run("keeps custom callbacks", func(t *testing.T) {
		called := false
		h := Fill(&types.Hooks{
			OnError: func(context.Context, error) error {
				called = true
				return nil
			},
		})

		require.NotNil(t, h.OnLayoutChanged)
		require.NoError(t, h.OnError(context.Background(), errors.New("x")))
		require.True(t, called)
	})
}
