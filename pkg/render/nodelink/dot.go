package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/handlermap/pkg/dag"
	"github.com/matzehuels/handlermap/pkg/errors"
	"github.com/matzehuels/handlermap/pkg/render"
)

// Fill colors of the two node kinds.
const (
	HandlerFill = "#cfe2f3"
	EntryFill   = "#f8f9fa"
)

// ToDOT converts a handler graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or a [Rasterizer].
//
// Handler nodes are drawn as light blue boxes, entry nodes as light grey boxes.
// Nodes and edges keep the graph's insertion order.
func ToDOT(g *dag.DAG) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", g.Name())
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [shape=box, style=filled, fontname=\"Helvetica\", fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(fmtAttrs(*n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s;\n", quote(e.From), quote(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n dag.Node) []string {
	fill := EntryFill
	if n.Kind == dag.NodeKindHandler {
		fill = HandlerFill
	}
	return []string{"label=" + quote(n.Label), "fillcolor=" + quote(fill)}
}

// quote renders s as a DOT double-quoted string. Line breaks become the
// centered-line escape \n; other control characters are dropped.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r < 0x20 || r == 0x7f:
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// RenderSVG renders a DOT graph to SVG using the Graphviz library compiled
// into the binary. Returns the SVG bytes ready for conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render SVG")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// Rasterizer turns DOT source into PNG images and single-page PDFs via SVG.
// Both conversions require librsvg (rsvg-convert).
type Rasterizer struct {
	// Scale is the PNG resolution factor; values <= 0 mean 1.
	Scale float64
}

// PNG renders dot as a PNG image.
func (r Rasterizer) PNG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	scale := r.Scale
	if scale <= 0 {
		scale = 1
	}
	return render.ToPNG(ctx, svg, scale)
}

// PDF renders dot as a single-page PDF.
func (r Rasterizer) PDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
