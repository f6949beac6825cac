package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	masonry "github.com/brokenalarms/astro-masonry"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func (c *CLI) layoutCommand() *cobra.Command {
	var (
		width     float64
		itemsPath string
		format    string
		render    bool
		flags     configFlags
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Distribute items into columns for a width",
		Long: `Resolve the column count for a width and distribute the items of an item
file into that many columns.

Item files are YAML, JSON or TOML lists of {id, height} entries.`,
		Example: `  masonry layout --width 1024 --items items.yaml --config masonry.yaml
  masonry layout -w 480 -i items.json --sort-by-height --render`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd, c.libraryLogger())
			if err != nil {
				return err
			}
			kind, err := flags.kind(cfg)
			if err != nil {
				return err
			}

			items, err := loadItems(cmd.Context(), itemsPath)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			layout, err := masonry.Build(items, width, cfg.Breakpoints, kind, nil)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Distributed %d items into %d columns", len(items), layout.ColumnCount))

			out := cmd.OutOrStdout()
			if render {
				_, err = fmt.Fprintf(out, "%s\n%s\n", renderHeader(layout), renderColumns(layout, int(width)))
				return err
			}

			switch format {
			case formatJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")

				return enc.Encode(layout)
			case formatText:
				return writeText(out, layout)
			default:
				return fmt.Errorf("unknown format %q (want %s or %s)", format, formatText, formatJSON)
			}
		},
	}

	cmd.Flags().Float64VarP(&width, "width", "w", 0, "container width")
	cmd.Flags().StringVarP(&itemsPath, "items", "i", "", "item file (.yaml, .yml, .json, .toml)")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json")
	cmd.Flags().BoolVar(&render, "render", false, "draw the columns in the terminal (width in cells)")
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("items")

	return cmd
}
