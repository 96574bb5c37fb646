package diagram

import (
	"context"
	stdio "io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/handlermap/pkg/errors"
	"github.com/matzehuels/handlermap/pkg/io"
	"github.com/matzehuels/handlermap/pkg/observability"
	"github.com/matzehuels/handlermap/pkg/render"
	"github.com/matzehuels/handlermap/pkg/render/nodelink"
)

// Rasterizer converts DOT source to PNG and PDF. [nodelink.Rasterizer] is
// the production implementation.
type Rasterizer interface {
	PNG(ctx context.Context, dot string) ([]byte, error)
	PDF(ctx context.Context, dot string) ([]byte, error)
}

// MergeFunc concatenates the PDFs at inputs into output.
type MergeFunc func(inputs []string, output string) error

// Options configures one render.
type Options struct {
	OutputDir string // receives the images folder and the combined document
	Prefix    string // names the images folder and the combined document
	Merge     bool   // write a combined document
}

// Renderer draws handler diagrams.
type Renderer struct {
	raster Rasterizer
	merge  MergeFunc
	logger *log.Logger
}

// NewRenderer creates a Renderer that merges with [render.MergePDFs].
// A nil raster uses [nodelink.Rasterizer] at scale 2; a nil logger discards output.
func NewRenderer(raster Rasterizer, logger *log.Logger) *Renderer {
	if raster == nil {
		raster = nodelink.Rasterizer{Scale: 2}
	}
	if logger == nil {
		logger = log.New(stdio.Discard)
	}
	return &Renderer{raster: raster, merge: render.MergePDFs, logger: logger}
}

// WithMerge replaces the PDF merge function.
func (r *Renderer) WithMerge(fn MergeFunc) *Renderer {
	r.merge = fn
	return r
}

// Render draws every handler found in the row file at input.
func (r *Renderer) Render(ctx context.Context, input string, opts Options) (m *Manifest, err error) {
	var handlers int
	start := time.Now()
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, input)
	defer func() {
		hooks.OnRenderComplete(ctx, handlers, time.Since(start), err)
	}()

	if err := errors.ValidateFilename(opts.Prefix); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid prefix %q", opts.Prefix)
	}

	rows, err := io.ReadRows(input)
	if err != nil {
		return nil, err
	}
	groups := io.GroupRows(rows)
	r.logger.Info("Rendering call handlers", "input", input, "handlers", len(groups), "rows", len(rows))

	if err := os.MkdirAll(filepath.Join(opts.OutputDir, ImagesDir(opts.Prefix)), 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "create images directory")
	}

	m = newManifest()
	used := stems{}
	var pdfs []string
	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		g, collisions, err := Build(group.Name, group.Rows)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "build graph of %q", group.Name)
		}
		for _, id := range collisions {
			r.logger.Warn("Duplicate touchtone key, later entry replaces earlier one", "handler", group.Name, "node", id)
		}
		dot := nodelink.ToDOT(g)

		stem := used.next(group.Name)
		if stem != SafeName(group.Name) {
			r.logger.Warn("File name already taken, using a numbered one", "handler", group.Name, "stem", stem)
		}
		pngRel := imagePath(opts.Prefix, stem, ".png")
		if err := r.write(ctx, opts.OutputDir, pngRel, dot, r.raster.PNG); err != nil {
			return nil, err
		}
		pdfRel := imagePath(opts.Prefix, stem, ".pdf")
		if err := r.write(ctx, opts.OutputDir, pdfRel, dot, r.raster.PDF); err != nil {
			return nil, err
		}

		m.PNGFiles = append(m.PNGFiles, pngRel)
		m.PDFFiles = append(m.PDFFiles, pdfRel)
		m.PNGMapping = append(m.PNGMapping, Mapping{HandlerName: group.Name, PNGFile: pngRel})
		pdfs = append(pdfs, filepath.Join(opts.OutputDir, filepath.FromSlash(pdfRel)))
		handlers++
		r.logger.Debug("Rendered call handler", "name", group.Name, "nodes", g.NodeCount(), "edges", g.EdgeCount(), "png", pngRel)
	}

	if opts.Merge && len(pdfs) > 0 {
		name := CombinedName(opts.Prefix)
		if err := r.merge(pdfs, filepath.Join(opts.OutputDir, name)); err != nil {
			return nil, err
		}
		m.MergedPDF = &name
		r.logger.Info("Merged documents", "file", name, "pages", len(pdfs))
	}
	return m, nil
}

func (r *Renderer) write(ctx context.Context, dir, rel, dot string, convert func(context.Context, string) ([]byte, error)) error {
	data, err := convert(ctx, dot)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, filepath.FromSlash(rel)), data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", rel)
	}
	return nil
}
