package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/spf13/cobra"

	masonry "github.com/brokenalarms/astro-masonry"
	"github.com/brokenalarms/astro-masonry/publisher"
	"github.com/brokenalarms/astro-masonry/watch"
)

func (c *CLI) layoutsCommand() *cobra.Command {
	var (
		natsURL string
		bucket  string
		prefix  string
	)

	defaults := masonry.DefaultConfig().Publish

	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "List layouts published to a KV bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := nats.Connect(natsURL)
			if err != nil {
				return fmt.Errorf("connect to NATS %s: %w", natsURL, err)
			}
			defer nc.Close()

			js, err := jetstream.New(nc)
			if err != nil {
				return fmt.Errorf("create JetStream context: %w", err)
			}

			kv, err := js.KeyValue(cmd.Context(), bucket)
			if err != nil {
				return fmt.Errorf("open bucket %s: %w", bucket, err)
			}

			snaps, err := publisher.NewKV(kv, prefix, "", c.libraryLogger()).List(cmd.Context())
			if errors.Is(err, masonry.ErrNoKeysFound) {
				c.Logger.Info("no layouts published", "bucket", bucket)
				return nil
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, snap := range snaps {
				if _, err := fmt.Fprintf(out, "%s %s\n",
					StyleTitle.Render(snap.Name),
					StyleDim.Render(fmt.Sprintf("version=%d columns=%d width=%g strategy=%s items=%d fingerprint=%s published=%s",
						snap.Version, snap.ColumnCount, snap.Width, snap.Strategy,
						snap.Columns.ItemCount(), snap.Fingerprint, snap.PublishedAt.Format(time.RFC3339)))); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats", nats.DefaultURL, "NATS server URL")
	cmd.Flags().StringVar(&bucket, "bucket", defaults.Bucket, "KV bucket holding layouts")
	cmd.Flags().StringVar(&prefix, "key-prefix", defaults.KeyPrefix, "layout key prefix")

	return cmd
}

func (c *CLI) notifyCommand() *cobra.Command {
	var (
		natsURL string
		subject string
		width   float64
	)

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Publish a width signal on a NATS subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if width < 0 {
				return fmt.Errorf("%w: %g", masonry.ErrInvalidWidth, width)
			}

			nc, err := nats.Connect(natsURL)
			if err != nil {
				return fmt.Errorf("connect to NATS %s: %w", natsURL, err)
			}
			defer nc.Close()

			if err := watch.PublishWidth(nc, subject, width); err != nil {
				return err
			}
			if err := nc.FlushWithContext(cmd.Context()); err != nil {
				return err
			}

			c.Logger.Debug("width published", "subject", subject, "width", width)

			return nil
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats", nats.DefaultURL, "NATS server URL")
	cmd.Flags().StringVar(&subject, "subject", watch.DefaultSubject, "subject carrying width signals")
	cmd.Flags().Float64VarP(&width, "width", "w", 0, "container width")
	_ = cmd.MarkFlagRequired("width")

	return cmd
}
