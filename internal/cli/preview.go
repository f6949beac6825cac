package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	masonry "github.com/brokenalarms/astro-masonry"
	"github.com/brokenalarms/astro-masonry/watch"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

// scaledWidth converts terminal cells into container pixels.
type scaledWidth struct {
	src    masonry.WidthSource
	factor float64
}

func (s scaledWidth) Subscribe(ctx context.Context, notify func(width float64)) (func(), error) {
	return s.src.Subscribe(ctx, func(width float64) {
		notify(width * s.factor)
	})
}

func (c *CLI) previewCommand() *cobra.Command {
	var (
		itemsPath string
		cellWidth float64
		flags     configFlags
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Live column preview that follows terminal resizes",
		Long: `Render the layout of an item file in the terminal and re-render it whenever
a resize changes the column count.

The terminal width in cells is multiplied by --cell-width to get the container
width the breakpoint table is resolved against. Press Ctrl+C to exit.`,
		Example: `  masonry preview --items items.yaml --breakpoints '{"default": 4, "480": 1, "800": 2}'`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cellWidth <= 0 {
				return fmt.Errorf("--cell-width must be positive, got %g", cellWidth)
			}

			cfg, err := flags.load(cmd, c.libraryLogger())
			if err != nil {
				return err
			}

			term := watch.NewStdoutTerminal(c.libraryLogger())

			return c.runPreview(cmd.Context(), cmd.OutOrStdout(), cfg, &flags, itemsPath, scaledWidth{src: term, factor: cellWidth})
		},
	}

	cmd.Flags().StringVarP(&itemsPath, "items", "i", "", "item file (.yaml, .yml, .json, .toml)")
	cmd.Flags().Float64Var(&cellWidth, "cell-width", 8, "container pixels per terminal cell")
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("items")

	return cmd
}

// runPreview renders every layout the controller produces until ctx is done.
// The initial width is the first width src reports.
func (c *CLI) runPreview(
	ctx context.Context,
	out io.Writer,
	cfg masonry.Config,
	flags *configFlags,
	itemsPath string,
	src scaledWidth,
) error {
	ctrl, err := c.newController(cfg, flags, itemsPath)
	if err != nil {
		return err
	}

	initial := make(chan float64, 1)
	release, err := src.Subscribe(ctx, func(width float64) {
		select {
		case initial <- width:
		default:
		}
	})
	if err != nil {
		return err
	}
	var width float64
	select {
	case width = <-initial:
		release()
	case <-ctx.Done():
		release()
		return nil
	}

	if err := ctrl.Start(ctx, width); err != nil {
		return err
	}
	defer c.stopController(ctrl)

	layouts, unsubscribe := ctrl.Subscribe()
	defer unsubscribe()

	if err := ctrl.Watch(ctx, src); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case layout, ok := <-layouts:
			if !ok {
				return nil
			}
			cells := int(layout.Width / src.factor)
			if _, err := fmt.Fprintf(out, "%s%s\n%s\n", clearScreen, renderHeader(layout), renderColumns(layout, cells)); err != nil {
				return err
			}
		}
	}
}
