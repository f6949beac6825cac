package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	masonry "github.com/brokenalarms/astro-masonry"
	"github.com/brokenalarms/astro-masonry/internal/heartbeat"
	"github.com/brokenalarms/astro-masonry/internal/kvutil"
	"github.com/brokenalarms/astro-masonry/internal/metrics"
	"github.com/brokenalarms/astro-masonry/publisher"
	"github.com/brokenalarms/astro-masonry/watch"
)

// serveOptions are the serve command settings besides the layout config.
type serveOptions struct {
	natsURL      string
	subject      string
	itemsPath    string
	initialWidth float64
	metricsAddr  string
	cleanup      bool

	heartbeatBucket   string
	heartbeatInterval time.Duration
}

const (
	defaultHeartbeatBucket   = "masonry-heartbeats"
	defaultHeartbeatInterval = 2 * time.Second
	heartbeatPrefix          = "hb"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		opts  serveOptions
		flags configFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build layouts from NATS width signals and publish them to KV",
		Long: `Run a layout controller fed by width signals on a NATS subject.

Every layout whose column count changed is written to the JetStream KV bucket
configured under publish (default "masonry-layouts") at key "<keyPrefix>.<name>".
Widths are bare numbers or {"width": N} JSON objects. SIGHUP re-reads the item
file. Prometheus metrics are served on --metrics-addr at /metrics.`,
		Example: `  masonry serve --items items.yaml --config masonry.yaml --nats nats://localhost:4222
  masonry notify --width 1280`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd, c.libraryLogger())
			if err != nil {
				return err
			}

			return c.runServe(cmd.Context(), cmd.OutOrStdout(), cfg, &flags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.natsURL, "nats", nats.DefaultURL, "NATS server URL")
	cmd.Flags().StringVar(&opts.subject, "subject", watch.DefaultSubject, "subject carrying width signals")
	cmd.Flags().StringVarP(&opts.itemsPath, "items", "i", "", "item file (.yaml, .yml, .json, .toml)")
	cmd.Flags().Float64VarP(&opts.initialWidth, "width", "w", 1024, "initial container width")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", ":9090", "address for the /metrics endpoint (empty disables it)")
	cmd.Flags().BoolVar(&opts.cleanup, "cleanup", false, "delete the published layout on exit")
	cmd.Flags().StringVar(&opts.heartbeatBucket, "heartbeat-bucket", defaultHeartbeatBucket, "KV bucket for liveness heartbeats")
	cmd.Flags().DurationVar(&opts.heartbeatInterval, "heartbeat-interval", defaultHeartbeatInterval, "heartbeat interval (0 disables heartbeats)")
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("items")

	return cmd
}

// runServe runs until ctx is done.
func (c *CLI) runServe(ctx context.Context, out io.Writer, cfg masonry.Config, flags *configFlags, opts serveOptions) error {
	logger := c.libraryLogger()

	nc, err := nats.Connect(opts.natsURL, nats.Name(appName+"-"+cfg.Name))
	if err != nil {
		return fmt.Errorf("connect to NATS %s: %w", opts.natsURL, err)
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("create JetStream context: %w", err)
	}

	pub, err := publisher.Open(ctx, js, cfg.Publish.Bucket, cfg.Publish.TTL, cfg.Publish.KeyPrefix, cfg.Name, logger)
	if err != nil {
		return fmt.Errorf("open layout bucket: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	hooks := &masonry.Hooks{
		OnLayoutChanged: func(_ context.Context, _, next masonry.Layout) error {
			_, err := fmt.Fprintln(out, renderHeader(next))
			return err
		},
	}

	ctrl, err := c.newController(cfg, flags, opts.itemsPath,
		masonry.WithPublisher(pub),
		masonry.WithMetrics(metrics.NewPrometheus(reg, appName)),
		masonry.WithHooks(hooks),
	)
	if err != nil {
		return err
	}

	if err := ctrl.Start(ctx, opts.initialWidth); err != nil {
		return err
	}
	defer c.stopController(ctrl)

	if err := ctrl.Watch(ctx, watch.NewNATS(nc, opts.subject, logger)); err != nil {
		return err
	}

	if opts.heartbeatInterval > 0 {
		stop, err := c.startHeartbeat(ctx, js, cfg.Name, ctrl, opts)
		if err != nil {
			return err
		}
		defer stop()
	}

	if opts.metricsAddr != "" {
		_, shutdown, err := c.serveMetrics(opts.metricsAddr, reg)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	c.Logger.Info("serving layouts",
		"name", cfg.Name,
		"subject", opts.subject,
		"bucket", cfg.Publish.Bucket,
		"key", pub.Key())

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			if opts.cleanup {
				c.cleanupLayout(pub)
			}

			return nil
		case <-hup:
			c.Logger.Info("reloading items", "path", opts.itemsPath)
			if err := ctrl.Reload(ctx); err != nil {
				c.Logger.Error("reload failed", "error", err)
			}
		}
	}
}

// startHeartbeat publishes liveness records for cfg.Name until the returned
// function is called.
func (c *CLI) startHeartbeat(
	ctx context.Context,
	js jetstream.JetStream,
	name string,
	ctrl *masonry.Controller,
	opts serveOptions,
) (func(), error) {
	kv, err := kvutil.EnsureBucket(ctx, js, jetstream.KeyValueConfig{
		Bucket:      opts.heartbeatBucket,
		Description: "masonry layout service heartbeats",
		History:     1,
		TTL:         3 * opts.heartbeatInterval,
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("open heartbeat bucket: %w", err)
	}

	hb := heartbeat.New(kv, heartbeatPrefix, name, opts.heartbeatInterval, ctrl.Layout, c.libraryLogger())
	if err := hb.Start(ctx); err != nil {
		return nil, err
	}

	return func() {
		if err := hb.Stop(); err != nil {
			c.Logger.Warn("heartbeat did not stop cleanly", "error", err)
		}
	}, nil
}

// serveMetrics starts the /metrics endpoint. It returns the bound address and
// the shutdown function.
func (c *CLI) serveMetrics(addr string, reg *prometheus.Registry) (string, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.Logger.Error("metrics server failed", "error", err)
		}
	}()

	c.Logger.Info("metrics available", "url", "http://"+ln.Addr().String()+"/metrics")

	return ln.Addr().String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

func (c *CLI) cleanupLayout(pub *publisher.KV) {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if err := pub.Delete(ctx); err != nil {
		c.Logger.Warn("failed to delete published layout", "error", err)
	}
}
