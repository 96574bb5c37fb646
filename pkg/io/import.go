package io

import (
	"encoding/csv"
	stderrors "errors"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/handlermap/pkg/errors"
)

// ReadCSV decodes a CSV row file from r.
//
// The first record must be a header naming all nine columns; a UTF-8 byte
// order mark before it is ignored. Records may be shorter or longer than the
// header; missing cells read as "". ReadCSV does not close r.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	first, err := cr.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "row file is empty")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read header")
	}
	h, err := parseHeader(first)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read row %d", len(rows)+1)
		}
		rows = append(rows, h.row(record))
	}
	return rows, nil
}

// ReadXLSX decodes the XLSX encoding from the workbook at path. Rows are read
// from the "MenuEntries" sheet, or the first sheet if it is absent.
func ReadXLSX(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook %s", path)
	}
	defer f.Close()

	sheet := SheetName
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(0)
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read sheet %q", sheet)
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "row file is empty")
	}

	h, err := parseHeader(records[0])
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, h.row(record))
	}
	return rows, nil
}

// ReadRows reads the row file at path using the encoding implied by its
// extension. A missing file yields an error with code FILE_NOT_FOUND.
func ReadRows(path string) ([]Row, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "row file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "stat %s", path)
	}

	if format == FormatXLSX {
		return ReadXLSX(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadCSV(f)
}
