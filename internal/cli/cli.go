// Package cli implements the masonry command-line interface.
//
// # Commands
//
//   - resolve: Print the column count for a width
//   - layout: Distribute an item file into columns for one width
//   - preview: Live column preview that follows terminal resizes
//   - serve: Build layouts from NATS width signals and publish them to KV
//   - layouts: List layouts published to a KV bucket
//   - notify: Publish a width signal on a NATS subject
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging via
// github.com/charmbracelet/log.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const appName = "masonry"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
// Typically called from main with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Masonry decides responsive column layouts",
		Long: `Masonry resolves container widths to column counts through a breakpoint
table and distributes an ordered item list into those columns.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(versionTemplate())

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.layoutsCommand())
	root.AddCommand(c.notifyCommand())

	return root
}

func versionTemplate() string {
	tmpl := appName + " " + version + "\n"
	if commit != "" {
		tmpl += "commit: " + commit + "\n"
	}
	if date != "" {
		tmpl += "built: " + date + "\n"
	}

	return tmpl
}
