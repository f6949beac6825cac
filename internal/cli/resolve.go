package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	masonry "github.com/brokenalarms/astro-masonry"
)

func (c *CLI) resolveCommand() *cobra.Command {
	var (
		width float64
		flags configFlags
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the column count for a width",
		Long: `Print the column count a breakpoint table yields for a width.

Thresholds are scanned in ascending order and the first threshold t with
width <= t wins. Widths above every threshold use the table's default.
A malformed table falls back to {default: 2} with a warning.`,
		Example: `  masonry resolve --width 700 --breakpoints '{"default": 3, "600": 1, "900": 2}'`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd, c.libraryLogger())
			if err != nil {
				return err
			}

			c.Logger.Debug("resolving", "width", width, "breakpoints", cfg.Breakpoints.String())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), masonry.Resolve(width, cfg.Breakpoints))

			return err
		},
	}

	cmd.Flags().Float64VarP(&width, "width", "w", 0, "container width")
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("width")

	return cmd
}
