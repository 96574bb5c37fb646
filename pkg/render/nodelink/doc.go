// Package nodelink renders call handler graphs as node-link diagrams.
//
// # Overview
//
// Each diagram is a small tree drawn top to bottom with Graphviz: the call
// handler as a light blue box and its menu entries as light grey boxes below
// it, each connected by an arrow.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g)
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PNG or PDF output, use a [Rasterizer]:
//
//	r := nodelink.Rasterizer{Scale: 2.0}
//	png, err := r.PNG(ctx, dot)
//	pdf, err := r.PDF(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
