package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	masonry "github.com/brokenalarms/astro-masonry"
	"github.com/brokenalarms/astro-masonry/breakpoint"
	"github.com/brokenalarms/astro-masonry/source"
	"github.com/brokenalarms/astro-masonry/types"
)

// configFlags are the layout configuration flags shared by several commands.
// Flags override values read from --config.
type configFlags struct {
	path            string
	breakpoints     string
	strategy        string
	sortByHeight    bool
	horizontalOrder bool
	debug           bool
}

func (f *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "config", "c", "", "configuration file (.yaml, .yml, .json, .toml)")
	cmd.Flags().StringVarP(&f.breakpoints, "breakpoints", "b", "", `breakpoint table as JSON or YAML, e.g. '{"default": 3, "600": 1}'`)
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", "", "placement strategy: sequential, fewest-items, shortest-height")
	cmd.Flags().BoolVar(&f.sortByHeight, "sort-by-height", false, "place each item in the shortest column")
	cmd.Flags().BoolVar(&f.horizontalOrder, "horizontal-order", false, "place each item in the column with the fewest items")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "log every width evaluation")
}

// load builds the effective configuration.
func (f *configFlags) load(cmd *cobra.Command, logger types.Logger) (masonry.Config, error) {
	cfg := masonry.DefaultConfig()
	if f.path != "" {
		loaded, err := masonry.LoadConfig(f.path)
		if err != nil {
			return masonry.Config{}, err
		}
		cfg = loaded
	}

	if f.breakpoints != "" {
		table, err := breakpoint.ParseOrFallback([]byte(f.breakpoints), logger)
		if err != nil {
			return masonry.Config{}, fmt.Errorf("--breakpoints: %w", err)
		}
		cfg.Breakpoints = table
	}

	flags := cmd.Flags()
	if flags.Changed("sort-by-height") {
		cfg.Options.SortByHeight = f.sortByHeight
	}
	if flags.Changed("horizontal-order") {
		cfg.Options.HorizontalOrder = f.horizontalOrder
	}
	if flags.Changed("debug") {
		cfg.Options.Debug = f.debug
	}

	if err := cfg.Validate(); err != nil {
		return masonry.Config{}, err
	}
	cfg.ValidateWithWarnings(logger)

	return cfg, nil
}

// kind returns the placement strategy: --strategy if set, else the config flags.
func (f *configFlags) kind(cfg masonry.Config) (masonry.Strategy, error) {
	if f.strategy == "" {
		return cfg.Options.Strategy(), nil
	}

	kind, err := types.ParseStrategy(f.strategy)
	if err != nil {
		return 0, fmt.Errorf("--strategy: %w", err)
	}

	return kind, nil
}

// loadItems reads an item file.
func loadItems(ctx context.Context, path string) ([]types.Item, error) {
	items, err := source.NewFile(path).ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load items %s: %w", path, err)
	}

	return items, nil
}
