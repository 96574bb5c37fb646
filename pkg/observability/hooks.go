// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries call the registered hooks at well-defined points; the binary
// decides what, if anything, listens. The defaults are no-ops, so nothing
// needs to be configured for the exporter or renderer to work.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExportHooks(&myExportHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Export().OnExportStart(ctx, outputPath)
//	// ... export ...
//	observability.Export().OnExportComplete(ctx, handlers, rows, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from the call handler exporter.
type ExportHooks interface {
	OnExportStart(ctx context.Context, output string)
	// OnHandlerExported fires once per call handler, after its rows are written.
	OnHandlerExported(ctx context.Context, handler string, entries int)
	OnExportComplete(ctx context.Context, handlers, rows int, duration time.Duration, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the diagram renderer.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, input string)
	OnRenderComplete(ctx context.Context, handlers int, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, TLS failure).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string)                            {}
func (NoopExportHooks) OnHandlerExported(context.Context, string, int)                   {}
func (NoopExportHooks) OnExportComplete(context.Context, int, int, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                       {}
func (NoopRenderHooks) OnRenderComplete(context.Context, int, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	exportHooks ExportHooks = NoopExportHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetExportHooks registers custom export hooks. Nil is ignored.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetRenderHooks registers custom render hooks. Nil is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exportHooks = NoopExportHooks{}
	renderHooks = NoopRenderHooks{}
	httpHooks = NoopHTTPHooks{}
}
