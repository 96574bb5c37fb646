package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/handlermap/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		outputDir string
		insecure  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web interface",
		Long: `Serve starts an HTTP server with a page that runs an export with live
progress, offers the row file for download, and shows the rendered diagrams.
Generated files are kept in the output directory.`,
		Example: `  handlermap serve
  handlermap serve --addr 127.0.0.1:8080 --output-dir /var/lib/handlermap`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("output-dir") {
				cfg.Server.OutputDir = outputDir
			}
			if cmd.Flags().Changed("insecure") {
				cfg.Remote.InsecureSkipVerify = insecure
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.Remote.InsecureSkipVerify {
				printWarning("TLS certificate verification is disabled")
			}

			ctx := cmd.Context()
			err = server.New(cfg, loggerFromContext(ctx)).Run(ctx)
			if errors.Is(err, context.Canceled) || errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":5000", "listen address")
	cmd.Flags().StringVar(&outputDir, "output-dir", "static", "directory for generated files")
	cmd.Flags().BoolVar(&insecure, "insecure", false, "skip TLS certificate verification towards the API")

	return cmd
}
