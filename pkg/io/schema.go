package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/handlermap/pkg/errors"
)

// FormatVersion identifies the column set in [Columns].
const FormatVersion = 1

// Column names, in file order.
const (
	ColHandlerName       = "CallHandlerName"
	ColMenuEntryID       = "MenuEntryObjectId"
	ColTouchtoneKey      = "TouchtoneKey"
	ColActionCode        = "ActionCode"
	ColActionDescription = "ActionDescription"
	ColEntryDisplayName  = "MenuEntryDisplayName"
	ColTransferNumber    = "TransferNumber"
	ColTransferType      = "TransferType"
	ColTransferRings     = "TransferRings"
)

// Columns is the header row of a version 1 row file.
var Columns = []string{
	ColHandlerName,
	ColMenuEntryID,
	ColTouchtoneKey,
	ColActionCode,
	ColActionDescription,
	ColEntryDisplayName,
	ColTransferNumber,
	ColTransferType,
	ColTransferRings,
}

// Row is one menu entry joined with the name of its call handler.
type Row struct {
	HandlerName       string
	MenuEntryID       string
	TouchtoneKey      string
	ActionCode        string
	ActionDescription string
	EntryDisplayName  string
	TransferNumber    string
	TransferType      string
	TransferRings     string
}

// Values returns the row's fields in [Columns] order.
func (r Row) Values() []string {
	return []string{
		r.HandlerName,
		r.MenuEntryID,
		r.TouchtoneKey,
		r.ActionCode,
		r.ActionDescription,
		r.EntryDisplayName,
		r.TransferNumber,
		r.TransferType,
		r.TransferRings,
	}
}

// Group is the rows of one call handler, in file order.
type Group struct {
	Name string
	Rows []Row
}

// GroupRows groups rows by handler name. Groups are ordered by first
// appearance and rows keep their relative order within a group.
func GroupRows(rows []Row) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, r := range rows {
		i, ok := index[r.HandlerName]
		if !ok {
			i = len(groups)
			index[r.HandlerName] = i
			groups = append(groups, Group{Name: r.HandlerName})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	return groups
}

// header maps column names to their position in a file's header row.
type header map[string]int

// parseHeader validates that record names every column of [Columns].
func parseHeader(record []string) (header, error) {
	h := make(header, len(record))
	for i, name := range record {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}

	var missing []string
	for _, col := range Columns {
		if _, ok := h[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "row file is missing columns: %s", strings.Join(missing, ", "))
	}
	return h, nil
}

// row builds a Row from a data record. Short records yield empty fields.
func (h header) row(record []string) Row {
	get := func(col string) string {
		if i := h[col]; i < len(record) {
			return record[i]
		}
		return ""
	}
	return Row{
		HandlerName:       get(ColHandlerName),
		MenuEntryID:       get(ColMenuEntryID),
		TouchtoneKey:      get(ColTouchtoneKey),
		ActionCode:        get(ColActionCode),
		ActionDescription: get(ColActionDescription),
		EntryDisplayName:  get(ColEntryDisplayName),
		TransferNumber:    get(ColTransferNumber),
		TransferType:      get(ColTransferType),
		TransferRings:     get(ColTransferRings),
	}
}

// Format is a row file encoding.
type Format string

// Supported encodings.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatOf returns the encoding implied by path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported row file extension %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}
