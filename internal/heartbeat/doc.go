// Package heartbeat publishes liveness records for a layout service to a NATS
// KV bucket.
//
// A serving process writes "<prefix>.<name>" every interval. The bucket is
// created with a TTL of about three intervals, so the key disappears when the
// process dies and rendering glue can tell a stale layout from a live one.
//
// Each record is a JSON Beat carrying the time and the current layout version
// and column count.
//
// Example:
//
//	kv, _ := kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
//	    Bucket: "masonry-heartbeats",
//	    TTL:    6 * time.Second, // 3x interval
//	}, 0)
//	hb := heartbeat.New(kv, "hb", "gallery", 2*time.Second, status, logger)
//	if err := hb.Start(ctx); err != nil {
//	    return err
//	}
//	defer hb.Stop()
package heartbeat
