// Package render provides format conversion for handler diagrams.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both take a context so a
// cancelled request stops the child process.
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Merging
//
// [MergePDFs] concatenates single-page documents into one file using pdfcpu,
// preserving input order.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage turns a handler graph into Graphviz DOT and SVG.
//
// [nodelink]: github.com/matzehuels/handlermap/pkg/render/nodelink
package render
