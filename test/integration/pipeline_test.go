package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	masonry "github.com/brokenalarms/astro-masonry"
	"github.com/brokenalarms/astro-masonry/publisher"
	"github.com/brokenalarms/astro-masonry/source"
	masonrytest "github.com/brokenalarms/astro-masonry/testing"
	"github.com/brokenalarms/astro-masonry/test/testutil"
	"github.com/brokenalarms/astro-masonry/watch"
)

// TestPipeline_NATSWidthsToKV drives a controller with widths published on a
// NATS subject and checks the snapshots that land in the KV bucket.
func TestPipeline_NATSWidthsToKV(t *testing.T) {
	_, nc := masonrytest.StartEmbeddedNATS(t)
	ctx := t.Context()

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	pub, err := publisher.Open(ctx, js, "it-layouts", 0, "layout", "gallery", masonrytest.NewTestLogger(t))
	require.NoError(t, err)

	items := testutil.Items(40, 1)
	table := testutil.GalleryTable()

	cfg := masonry.TestConfig()
	cfg.Name = "gallery"
	cfg.Breakpoints = table
	cfg.Options.SortByHeight = true

	ctrl, err := masonry.NewController(&cfg, source.NewStatic(items),
		masonry.WithPublisher(pub),
		masonry.WithLogger(masonrytest.NewTestLogger(t)),
	)
	require.NoError(t, err)

	require.NoError(t, ctrl.Start(ctx, 1280))
	defer func() { _ = ctrl.Stop(context.Background()) }()

	require.NoError(t, ctrl.Watch(ctx, watch.NewNATS(nc, "it.width", nil)))

	snap, err := pub.Get(ctx, "gallery")
	require.NoError(t, err)
	require.Equal(t, 4, snap.ColumnCount)
	require.Equal(t, masonry.StrategyShortestHeight, snap.Strategy)
	testutil.AssertLayoutConsistent(t, items, table, snap.Layout())

	ch, unsubscribe := ctrl.Subscribe()
	defer unsubscribe()

	for _, step := range []struct {
		width   float64
		columns int
	}{
		{width: 700, columns: 2},
		{width: 320, columns: 1},
		{width: 1000, columns: 3},
	} {
		require.NoError(t, watch.PublishWidth(nc, "it.width", step.width))

		layout, err := testutil.WaitForLayout(ctx, ch, testutil.ColumnCount(step.columns), 3*time.Second)
		require.NoError(t, err, "width %v", step.width)
		testutil.AssertLayoutConsistent(t, items, table, layout)

		require.Eventually(t, func() bool {
			snap, err := pub.Get(ctx, "gallery")
			return err == nil && snap.Version == layout.Version
		}, 3*time.Second, 20*time.Millisecond)

		snap, err := pub.Get(ctx, "gallery")
		require.NoError(t, err)
		require.Equal(t, publisher.FormatFingerprint(layout.Fingerprint()), snap.Fingerprint)
	}
}

// TestPipeline_SameColumnCountDoesNotPublish checks that widths resolving to
// the current column count leave the published snapshot untouched.
func TestPipeline_SameColumnCountDoesNotPublish(t *testing.T) {
	_, nc := masonrytest.StartEmbeddedNATS(t)
	ctx := t.Context()

	kv := masonrytest.CreateJetStreamKV(t, nc, "it-stable")
	pub := publisher.NewKV(kv, "layout", "gallery", nil)

	cfg := masonry.TestConfig()
	cfg.Name = "gallery"
	cfg.Breakpoints = testutil.GalleryTable()

	ctrl, err := masonry.NewController(&cfg, source.NewStatic(testutil.Items(12, 2)), masonry.WithPublisher(pub))
	require.NoError(t, err)
	require.NoError(t, ctrl.Start(ctx, 600))
	defer func() { _ = ctrl.Stop(context.Background()) }()

	for _, width := range []float64{500, 650, 768} {
		require.NoError(t, ctrl.Notify(width))
		time.Sleep(2 * cfg.ThrottleWindow)
	}

	snap, err := pub.Get(ctx, "gallery")
	require.NoError(t, err)
	require.Equal(t, int64(1), snap.Version)
	require.Equal(t, 2, snap.ColumnCount)
	require.Equal(t, int64(1), ctrl.Layout().Version)
}

// TestPipeline_ReloadPublishesNewItems re-reads a changed item source.
func TestPipeline_ReloadPublishesNewItems(t *testing.T) {
	_, nc := masonrytest.StartEmbeddedNATS(t)
	ctx := t.Context()

	kv := masonrytest.CreateJetStreamKV(t, nc, "it-reload")
	pub := publisher.NewKV(kv, "layout", "gallery", nil)

	items := testutil.Items(6, 3)
	src := source.NewStatic(items)

	cfg := masonry.TestConfig()
	cfg.Name = "gallery"
	cfg.Breakpoints = testutil.GalleryTable()

	ctrl, err := masonry.NewController(&cfg, src, masonry.WithPublisher(pub))
	require.NoError(t, err)
	require.NoError(t, ctrl.Start(ctx, 900))
	defer func() { _ = ctrl.Stop(context.Background()) }()

	more := testutil.Items(9, 3)
	src.Update(more)
	require.NoError(t, ctrl.Reload(ctx))

	snap, err := pub.Get(ctx, "gallery")
	require.NoError(t, err)
	require.Equal(t, int64(2), snap.Version)
	require.Equal(t, 9, snap.Columns.ItemCount())
	testutil.AssertLayoutConsistent(t, more, cfg.Breakpoints, snap.Layout())
}
