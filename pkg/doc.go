// Package pkg provides the libraries behind handlermap.
//
// # Overview
//
// handlermap documents the keypad menus of voicemail call handlers in two
// steps: an export that flattens the remote configuration into a row file,
// and a renderer that draws one diagram per call handler from that file.
//
// # Architecture
//
//	Voicemail administration API
//	         ↓
//	    [integrations/unity] (call handlers, menu entries)
//	         ↓
//	    [export] (status events, row writing)
//	         ↓
//	    [io] (CSV / XLSX row file)
//	         ↓
//	    [diagram] (grouping, graph building, manifest)
//	         ↓
//	    [render/nodelink] → [render] (DOT → SVG → PNG/PDF, merge)
//
// [server] exposes both steps over HTTP; [config], [errors] and
// [observability] are shared by all packages.
//
// [integrations/unity]: github.com/matzehuels/handlermap/pkg/integrations/unity
// [export]: github.com/matzehuels/handlermap/pkg/export
// [io]: github.com/matzehuels/handlermap/pkg/io
// [diagram]: github.com/matzehuels/handlermap/pkg/diagram
// [render/nodelink]: github.com/matzehuels/handlermap/pkg/render/nodelink
// [render]: github.com/matzehuels/handlermap/pkg/render
// [server]: github.com/matzehuels/handlermap/pkg/server
// [config]: github.com/matzehuels/handlermap/pkg/config
// [errors]: github.com/matzehuels/handlermap/pkg/errors
// [observability]: github.com/matzehuels/handlermap/pkg/observability
package pkg
