// Package cli implements the handlermap command-line interface.
//
// # Commands
//
//   - export: Fetch call handler menu entries into a CSV or XLSX row file
//   - render: Draw one diagram per call handler from a row file
//   - serve: Run the web interface driving both steps
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so commands and the packages they drive
// share one configured logger.
//
// # Configuration
//
// Defaults come from ~/.config/handlermap/config.toml (see package config);
// flags given on the command line take precedence.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/handlermap/pkg/buildinfo"
	"github.com/matzehuels/handlermap/pkg/config"
	"github.com/matzehuels/handlermap/pkg/diagram"
)

const (
	// appName is the application name used for display.
	appName = "handlermap"

	// passwordEnv supplies the API password when --password is not given.
	passwordEnv = "HANDLERMAP_PASSWORD"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	raster     diagram.Rasterizer // nil selects Graphviz and librsvg
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
		Use:   appName,
		Short: "handlermap exports and draws voicemail call handler menus",
		Long: `handlermap fetches the keypad menus of all non-primary call handlers from a
voicemail administration API, flattens them into a CSV or XLSX file, and draws
one diagram per call handler as PNG and PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/handlermap/config.toml)")

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration file selected by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}
