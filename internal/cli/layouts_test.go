package cli

import (
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	masonry "github.com/brokenalarms/astro-masonry"
	"github.com/brokenalarms/astro-masonry/publisher"
	masonrytest "github.com/brokenalarms/astro-masonry/testing"
)

func TestLayoutsCommand(t *testing.T) {
	_, nc := masonrytest.StartEmbeddedNATS(t)
	url := nc.ConnectedUrl()

	t.Run("missing bucket", func(t *testing.T) {
		_, err := execute(t, "layouts", "--nats", url, "--bucket", "absent")
		require.ErrorContains(t, err, "open bucket absent")
	})

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	pub, err := publisher.Open(t.Context(), js, "test-layouts", 0, "layout", "gallery", nil)
	require.NoError(t, err)

	t.Run("empty bucket", func(t *testing.T) {
		out, err := execute(t, "layouts", "--nats", url, "--bucket", "test-layouts")
		require.NoError(t, err)
		require.Empty(t, out)
	})

	require.NoError(t, pub.Publish(t.Context(), masonry.Layout{
		Version:     4,
		Width:       800,
		ColumnCount: 2,
		Columns:     masonry.Columns{{{ID: "a"}}, {{ID: "b"}}},
	}))

	t.Run("published layout", func(t *testing.T) {
		out, err := execute(t, "layouts", "--nats", url, "--bucket", "test-layouts")
		require.NoError(t, err)
		require.Contains(t, out, "gallery")
		require.Contains(t, out, "version=4")
		require.Contains(t, out, "columns=2")
		require.Contains(t, out, "items=2")
	})
}

func TestNotifyCommand(t *testing.T) {
	_, nc := masonrytest.StartEmbeddedNATS(t)

	msgs := make(chan *nats.Msg, 1)
	sub, err := nc.ChanSubscribe("test.width", msgs)
	require.NoError(t, err)
	defer func() { _ = sub.Unsubscribe() }()
	require.NoError(t, nc.Flush())

	_, err = execute(t, "notify", "--nats", nc.ConnectedUrl(), "--subject", "test.width", "--width", "640")
	require.NoError(t, err)

	select {
	case msg := <-msgs:
		require.Equal(t, "640", string(msg.Data))
	case <-time.After(2 * time.Second):
		t.Fatal("width signal not received")
	}
}

func TestNotifyCommand_RejectsNegativeWidth(t *testing.T) {
	_, err := execute(t, "notify", "--nats", "nats://127.0.0.1:1", "--width=-5")
	require.ErrorIs(t, err, masonry.ErrInvalidWidth)
}
