package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/handlermap/pkg/diagram"
	"github.com/matzehuels/handlermap/pkg/render/nodelink"
)

type renderOptions struct {
	outputDir string
	prefix    string
	noMerge   bool
	scale     float64
	manifest  string
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <rows-file>",
		Short: "Draw one diagram per call handler from an exported row file",
		Long: `Render reads a CSV or XLSX file written by export and draws one diagram per
call handler as PNG and PDF into <output>/<prefix>_images/. Unless --no-merge
is given, all PDFs are combined into <output>/<prefix>_combined.pdf.

Requires librsvg (rsvg-convert) for PNG and PDF conversion.`,
		Example: `  handlermap render menus.csv -o diagrams
  handlermap render menus.xlsx --prefix site_a --no-merge --manifest site_a.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("prefix") {
				opts.prefix = cfg.Render.Prefix
			}
			if !cmd.Flags().Changed("scale") {
				opts.scale = cfg.Render.Scale
			}
			if !cmd.Flags().Changed("no-merge") {
				opts.noMerge = !cfg.Render.Merge
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", ".", "output directory")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "handler_graph", "name prefix of the images folder and combined PDF")
	cmd.Flags().BoolVar(&opts.noMerge, "no-merge", false, "skip the combined PDF")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2.0, "PNG resolution factor")
	cmd.Flags().StringVar(&opts.manifest, "manifest", "", "also write the manifest as JSON to this file")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOptions) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	raster := c.raster
	if raster == nil {
		raster = nodelink.Rasterizer{Scale: opts.scale}
	}
	renderer := diagram.NewRenderer(raster, logger)

	spinner := newSpinnerWithContext(ctx, os.Stderr, "Rendering call handler diagrams...")
	spinner.Start()
	m, err := renderer.Render(ctx, input, diagram.Options{
		OutputDir: opts.outputDir,
		Prefix:    opts.prefix,
		Merge:     !opts.noMerge,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %d call handlers", len(m.PNGMapping)))
	prog.done("Render complete")

	for _, p := range m.PNGFiles {
		printFile(filepath.Join(opts.outputDir, filepath.FromSlash(p)))
	}
	if m.MergedPDF != nil {
		printKeyValue("Combined", filepath.Join(opts.outputDir, *m.MergedPDF))
	}

	if opts.manifest != "" {
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.manifest, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		printKeyValue("Manifest", opts.manifest)
	}
	return nil
}
