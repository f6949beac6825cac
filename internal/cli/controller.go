package cli

import (
	"context"
	"time"

	masonry "github.com/brokenalarms/astro-masonry"
	"github.com/brokenalarms/astro-masonry/source"
	"github.com/brokenalarms/astro-masonry/strategy"
)

// stopTimeout bounds controller shutdown when a command exits.
const stopTimeout = 5 * time.Second

// newController builds a controller reading items from itemsPath. An explicit
// --strategy replaces the distributor chosen by the config flags.
func (c *CLI) newController(cfg masonry.Config, flags *configFlags, itemsPath string, opts ...masonry.Option) (*masonry.Controller, error) {
	kind, err := flags.kind(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Options.Debug {
		c.SetLogLevel(LogDebug)
	}

	if flags.strategy != "" {
		d, err := strategy.New(kind, nil)
		if err != nil {
			return nil, err
		}
		opts = append(opts, masonry.WithDistributor(d))
	}

	opts = append([]masonry.Option{masonry.WithLogger(c.libraryLogger())}, opts...)

	return masonry.NewController(&cfg, source.NewFile(itemsPath), opts...)
}

// stopController stops ctrl with a fresh timeout, since the command context is
// usually already cancelled at this point.
func (c *CLI) stopController(ctrl *masonry.Controller) {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if err := ctrl.Stop(ctx); err != nil {
		c.Logger.Warn("controller did not stop cleanly", "error", err)
	}
}
