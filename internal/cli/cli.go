// Package cli implements the tilegrid command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "tilegrid"

	// defaultFile is the snapshot file used when no store is given.
	defaultFile = "layout.json"

	// defaultKey is the store key used when none is given.
	defaultKey = "default"

	// defaultAddr is the listen address of the serve command.
	defaultAddr = "localhost:8080"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Persistent flags.
	file       string
	storeURL   string
	key        string
	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
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
		Use:          appName,
		Short:        "Tilegrid edits rectangular tile layouts",
		Long:         `Tilegrid edits layouts made of non-overlapping rectangles that exactly cover a 100x100 container. Every edit is checked against size, lock and group rules before it is applied.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVarP(&c.file, "file", "f", defaultFile, "layout snapshot file")
	pf.StringVar(&c.storeURL, "store", "", "store URL (memory:, file:DIR, sqlite:PATH, redis://..., mongodb://...); overrides --file")
	pf.StringVar(&c.key, "key", defaultKey, "layout key within --store")
	pf.StringVarP(&c.configPath, "config", "c", "", "configuration file (.toml, .yaml or .json)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.initCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.seamsCommand())
	root.AddCommand(c.clampCommand())
	root.AddCommand(c.splitCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.insertCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.seamResizeCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.adjustCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.completionCommand())

	return root
}
