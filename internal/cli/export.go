package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/handlermap/pkg/errors"
	"github.com/matzehuels/handlermap/pkg/export"
	"github.com/matzehuels/handlermap/pkg/integrations"
	"github.com/matzehuels/handlermap/pkg/integrations/unity"
)

// defaultExportFile is written when --output is not given.
const defaultExportFile = "call_handler_menu_entries.csv"

type exportOptions struct {
	baseURL  string
	username string
	password string
	output   string
	insecure bool
	timeout  time.Duration
	plain    bool
}

func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export call handler menu entries to a CSV or XLSX file",
		Long: `Export fetches every non-primary call handler and its menu entries and
writes one row per menu entry. The file format follows the extension of
--output (.csv or .xlsx).

The password is read from $HANDLERMAP_PASSWORD when --password is omitted.`,
		Example: `  handlermap export --url cuc.example.com --user admin -o menus.csv
  HANDLERMAP_PASSWORD=secret handlermap export --url https://cuc.example.com:8443 --user admin -o menus.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("insecure") {
				opts.insecure = cfg.Remote.InsecureSkipVerify
			}
			if !cmd.Flags().Changed("timeout") {
				opts.timeout = cfg.Remote.Timeout.Duration
			}
			if opts.password == "" {
				opts.password = os.Getenv(passwordEnv)
			}
			return c.runExport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.baseURL, "url", "", "server address, e.g. cuc.example.com (https is assumed)")
	cmd.Flags().StringVarP(&opts.username, "user", "u", "", "API username")
	cmd.Flags().StringVar(&opts.password, "password", "", "API password (default $"+passwordEnv+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultExportFile, "output file (.csv or .xlsx)")
	cmd.Flags().BoolVar(&opts.insecure, "insecure", false, "skip TLS certificate verification")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (0 for none)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "log progress lines instead of the interactive view")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, opts exportOptions) error {
	logger := loggerFromContext(ctx)

	baseURL, err := errors.NormalizeBaseURL(opts.baseURL)
	if err != nil {
		return err
	}
	if opts.insecure {
		printWarning("TLS certificate verification is disabled")
	}
	client := unity.NewClient(baseURL, integrations.Options{
		Username:           opts.username,
		Password:           opts.password,
		InsecureSkipVerify: opts.insecure,
		Timeout:            opts.timeout,
	})

	prog := newProgress(logger)
	logger.Info("Exporting call handlers", "url", client.CallHandlersURL(), "output", opts.output)

	var final export.Event
	if opts.plain || !isatty.IsTerminal(os.Stderr.Fd()) {
		final, err = exportPlain(ctx, export.New(client, logger), opts.output, logger)
	} else {
		final, err = exportInteractive(ctx, export.New(client, quietLogger(logger)), opts.output)
	}
	if err != nil {
		return err
	}

	switch final.Kind {
	case export.KindDone:
		prog.done("Export complete")
		printSuccess("Exported call handler menus")
		printFile(opts.output)
		return nil
	case export.KindError:
		return fmt.Errorf("export failed: %s", final.Data)
	default:
		return fmt.Errorf("export ended without a result")
	}
}

// exportPlain logs each progress event and returns the terminal event.
func exportPlain(ctx context.Context, exp *export.Exporter, output string, logger *log.Logger) (export.Event, error) {
	var final export.Event
	for ev := range exp.Stream(ctx, output) {
		if p, total, ok := ev.Counts(); ok {
			logger.Infof("Exported %d/%d call handlers", p, total)
		}
		if ev.Terminal() {
			final = ev
		}
	}
	if err := ctx.Err(); err != nil {
		return final, err
	}
	return final, nil
}

// exportInteractive shows a progress bar until the export ends or the user quits.
func exportInteractive(ctx context.Context, exp *export.Exporter, output string) (export.Event, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newExportModel(exp.Stream(ctx, output), cancel)
	result, err := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx)).Run()
	if err != nil {
		if ctx.Err() != nil {
			return export.Event{}, context.Canceled
		}
		return export.Event{}, fmt.Errorf("progress view: %w", err)
	}

	m := result.(exportModel)
	if m.aborted {
		return export.Event{}, context.Canceled
	}
	return m.final, nil
}
