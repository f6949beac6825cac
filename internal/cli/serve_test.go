package cli

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	masonry "github.com/brokenalarms/astro-masonry"
	"github.com/brokenalarms/astro-masonry/breakpoint"
	"github.com/brokenalarms/astro-masonry/internal/heartbeat"
	"github.com/brokenalarms/astro-masonry/publisher"
	masonrytest "github.com/brokenalarms/astro-masonry/testing"
	"github.com/brokenalarms/astro-masonry/watch"
)

func TestRunServe(t *testing.T) {
	_, nc := masonrytest.StartEmbeddedNATS(t)
	items := writeFile(t, "items.yaml", testItems)

	cfg := masonry.TestConfig()
	cfg.Name = "gallery"
	cfg.Breakpoints = breakpoint.New(3, map[float64]int{600: 1, 900: 2})

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	var out syncBuffer
	c := New(io.Discard, LogInfo)
	done := make(chan error, 1)
	go func() {
		done <- c.runServe(ctx, &out, cfg, &configFlags{}, serveOptions{
			natsURL:      nc.ConnectedUrl(),
			subject:      "test.width",
			itemsPath:    items,
			initialWidth: 1200,
			cleanup:      true,

			heartbeatBucket:   "test-heartbeats",
			heartbeatInterval: 100 * time.Millisecond,
		})
	}()

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	var reader *publisher.KV
	require.Eventually(t, func() bool {
		kv, err := js.KeyValue(ctx, cfg.Publish.Bucket)
		if err != nil {
			return false
		}
		reader = publisher.NewKV(kv, cfg.Publish.KeyPrefix, cfg.Name, nil)
		snap, err := reader.Get(ctx, cfg.Name)

		return err == nil && snap.ColumnCount == 3
	}, 5*time.Second, 20*time.Millisecond)

	// Width signals arrive once the NATS watch is attached
	require.Eventually(t, func() bool {
		_ = watch.PublishWidth(nc, "test.width", 500)
		snap, err := reader.Get(ctx, cfg.Name)

		return err == nil && snap.ColumnCount == 1 && snap.Version == 2
	}, 5*time.Second, 50*time.Millisecond)

	var hbKV jetstream.KeyValue
	require.Eventually(t, func() bool {
		kv, err := js.KeyValue(ctx, "test-heartbeats")
		if err != nil {
			return false
		}
		hbKV = kv
		beat, err := heartbeat.Read(ctx, kv, heartbeatPrefix, cfg.Name)

		return err == nil && beat.Version == 2 && beat.ColumnCount == 1
	}, 5*time.Second, 20*time.Millisecond)

	require.Contains(t, out.String(), "3 columns")
	require.Contains(t, out.String(), "1 columns")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not exit after cancel")
	}

	// --cleanup removed the published layout
	_, err = reader.Get(t.Context(), cfg.Name)
	require.ErrorIs(t, err, jetstream.ErrKeyNotFound)

	// Stopping the heartbeat deletes its key
	_, err = heartbeat.Read(t.Context(), hbKV, heartbeatPrefix, cfg.Name)
	require.ErrorIs(t, err, jetstream.ErrKeyNotFound)
}

func TestRunServe_ConnectError(t *testing.T) {
	items := writeFile(t, "items.yaml", testItems)
	cfg := masonry.TestConfig()

	c := New(io.Discard, LogInfo)
	err := c.runServe(t.Context(), io.Discard, cfg, &configFlags{}, serveOptions{
		natsURL:   "nats://127.0.0.1:1",
		itemsPath: items,
	})
	require.ErrorContains(t, err, "connect to NATS")
}

func TestServeMetrics(t *testing.T) {
	c := New(io.Discard, LogInfo)

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "masonry_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	addr, shutdown, err := c.serveMetrics("127.0.0.1:0", reg)
	require.NoError(t, err)
	defer shutdown()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, "http://"+addr+"/metrics", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "masonry_test_total 1")
}
