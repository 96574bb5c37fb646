package export

import (
	"context"
	"fmt"
	stdio "io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/handlermap/pkg/errors"
	"github.com/matzehuels/handlermap/pkg/integrations/unity"
	"github.com/matzehuels/handlermap/pkg/io"
	"github.com/matzehuels/handlermap/pkg/observability"
)

// Source provides the remote collections an export reads.
// [unity.Client] is the production implementation.
type Source interface {
	CallHandlers(ctx context.Context) (*unity.CallHandlerList, error)
	MenuEntries(ctx context.Context, uri string) ([]unity.MenuEntry, error)
}

// Exporter writes the menu entries of all non-primary call handlers to a row file.
type Exporter struct {
	source Source
	logger *log.Logger
}

// New creates an Exporter reading from source. A nil logger discards output.
func New(source Source, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.New(stdio.Discard)
	}
	return &Exporter{source: source, logger: logger}
}

// Run exports to outputPath, calling emit after each call handler and once
// more with a done event after the file is closed. An error from emit stops
// the run and is returned. Run itself never emits error events.
func (e *Exporter) Run(ctx context.Context, outputPath string, emit func(Event) error) (err error) {
	var handlers, rows int
	start := time.Now()
	hooks := observability.Export()
	hooks.OnExportStart(ctx, outputPath)
	defer func() {
		hooks.OnExportComplete(ctx, handlers, rows, time.Since(start), err)
	}()

	list, err := e.source.CallHandlers(ctx)
	if err != nil {
		return err
	}
	total := unity.ParseTotal(list.Total)
	e.logger.Info("Fetched call handlers", "count", len(list.CallHandlers), "total", total)

	w, err := io.Create(outputPath)
	if err != nil {
		return err
	}
	closed := false
	defer func() {
		if !closed {
			w.Close()
		}
	}()

	for _, h := range list.CallHandlers {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := h.Name()
		n := 0
		if uri := h.MenuEntriesURI.String(); uri != "" {
			entries, err := e.source.MenuEntries(ctx, uri)
			if err != nil {
				return errors.Annotate(err, errors.ErrCodeNetwork, "menu entries of %q", name)
			}
			for _, entry := range entries {
				if err := w.Write(NewRow(name, entry)); err != nil {
					return errors.Annotate(err, errors.ErrCodeInternal, "write row of %q", name)
				}
			}
			n = len(entries)
			rows += n
		} else {
			e.logger.Debug("Call handler has no menu entries URI", "name", name)
		}
		if err := w.Flush(); err != nil {
			return errors.Annotate(err, errors.ErrCodeInternal, "write rows of %q", name)
		}

		handlers++
		hooks.OnHandlerExported(ctx, name, n)
		e.logger.Debug("Exported call handler", "name", name, "entries", n, "progress", fmt.Sprintf("%d/%d", handlers, total))
		if err := emit(Progress(handlers, total)); err != nil {
			return err
		}
	}

	closed = true
	if err := w.Close(); err != nil {
		return errors.Annotate(err, errors.ErrCodeInternal, "close %s", outputPath)
	}
	e.logger.Info("Export complete", "file", outputPath, "handlers", handlers, "rows", rows)
	return emit(Done(filepath.Base(outputPath)))
}

// Stream runs the export on a new goroutine and returns its events.
//
// The channel holds at most one pending event, so the export advances only as
// fast as the consumer reads. The channel is closed after a terminal event.
// Failures are delivered as an error event. If ctx is cancelled the export
// stops, no terminal event is sent, and the file handle and connections are
// released.
func (e *Exporter) Stream(ctx context.Context, outputPath string) <-chan Event {
	ch := make(chan Event, 1)
	go func() {
		defer close(ch)
		send := func(ev Event) error {
			select {
			case ch <- ev:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := e.Run(ctx, outputPath, send); err != nil {
			if ctx.Err() != nil {
				e.logger.Debug("Export cancelled", "file", outputPath)
				return
			}
			e.logger.Error("Export failed", "file", outputPath, "err", err)
			_ = send(Failure(err))
		}
	}()
	return ch
}

// NewRow joins a menu entry with its handler's name into a row, translating
// the action code to its label.
func NewRow(handler string, entry unity.MenuEntry) io.Row {
	return io.Row{
		HandlerName:       handler,
		MenuEntryID:       entry.ObjectID.String(),
		TouchtoneKey:      entry.TouchtoneKey.String(),
		ActionCode:        entry.Action.String(),
		ActionDescription: entry.ActionLabel(),
		EntryDisplayName:  entry.DisplayName.String(),
		TransferNumber:    entry.TransferNumber.String(),
		TransferType:      entry.TransferType.String(),
		TransferRings:     entry.TransferRings.String(),
	}
}
