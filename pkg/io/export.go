package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/handlermap/pkg/errors"
)

// SheetName is the worksheet that holds rows in the XLSX encoding.
const SheetName = "MenuEntries"

// RowWriter appends rows to a row file. The header is written on creation.
type RowWriter interface {
	Write(r Row) error
	// Flush makes rows written so far durable where the encoding allows it.
	Flush() error
	Close() error
}

// Create creates or truncates the row file at path, writes the header and
// returns a writer for the encoding implied by the extension.
func Create(path string) (RowWriter, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatXLSX:
		return NewXLSXWriter(path)
	default:
		f, err := os.Create(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
		}
		w, err := NewCSVWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return w, nil
	}
}

// CSVWriter writes the CSV encoding.
type CSVWriter struct {
	w      *csv.Writer
	closer io.Closer
}

// NewCSVWriter writes the header to w and returns a writer for data rows.
// If w is an io.Closer it is closed by [CSVWriter.Close].
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	out := &CSVWriter{w: cw}
	if c, ok := w.(io.Closer); ok {
		out.closer = c
	}
	if err := cw.Write(Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return out, nil
}

// Write appends one row.
func (w *CSVWriter) Write(r Row) error {
	return w.w.Write(r.Values())
}

// Flush writes buffered rows to the underlying writer.
func (w *CSVWriter) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// Close flushes and closes the underlying writer.
func (w *CSVWriter) Close() error {
	err := w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// XLSXWriter writes the XLSX encoding. The workbook is saved on Close.
type XLSXWriter struct {
	path string
	file *excelize.File
	sw   *excelize.StreamWriter
	next int
}

// NewXLSXWriter starts a workbook that will be saved to path.
func NewXLSXWriter(path string) (*XLSXWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   "Call handler menu entries",
		Subject: "handlermap row file",
		Version: strconv.Itoa(FormatVersion),
	}); err != nil {
		f.Close()
		return nil, err
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		f.Close()
		return nil, err
	}
	w := &XLSXWriter{path: path, file: f, sw: sw, next: 1}
	if err := w.writeRecord(Columns); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return w, nil
}

func (w *XLSXWriter) writeRecord(values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, w.next)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := w.sw.SetRow(cell, cells); err != nil {
		return err
	}
	w.next++
	return nil
}

// Write appends one row.
func (w *XLSXWriter) Write(r Row) error {
	return w.writeRecord(r.Values())
}

// Flush is a no-op; the workbook is only complete once saved.
func (w *XLSXWriter) Flush() error { return nil }

// Close saves the workbook.
func (w *XLSXWriter) Close() error {
	defer w.file.Close()
	if err := w.sw.Flush(); err != nil {
		return err
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save %s", w.path)
	}
	return nil
}

var (
	_ RowWriter = (*CSVWriter)(nil)
	_ RowWriter = (*XLSXWriter)(nil)
)
