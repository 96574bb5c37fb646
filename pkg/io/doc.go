// Package io reads and writes the row file exchanged between the exporter and
// the diagram renderer.
//
// # Row Format
//
// A row file has one header row followed by one row per menu entry. The nine
// columns, in this order, are the serialization contract:
//
//	CallHandlerName, MenuEntryObjectId, TouchtoneKey, ActionCode,
//	ActionDescription, MenuEntryDisplayName, TransferNumber, TransferType,
//	TransferRings
//
// The exact header identifies [FormatVersion] 1. No extra column is added for
// the version so that existing consumers keyed on the nine names keep working.
//
// # Encodings
//
// Two encodings are supported, chosen by file extension:
//
//   - .csv: UTF-8 text, comma-separated, CRLF line endings, quoted as needed
//   - .xlsx: one worksheet named "MenuEntries" with the same header and rows;
//     the workbook's document properties record the format version
//
// # Writing
//
// Use [Create] to open a [RowWriter] for a path:
//
//	w, err := io.Create("static/entries.csv")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	err = w.Write(row)
//
// # Reading
//
// Use [ReadRows] for a path or [ReadCSV] for any io.Reader. Readers locate
// columns by header name, so column order is not significant on input, but
// every one of the nine columns must be present. Missing cells read as "".
//
//	rows, err := io.ReadRows("static/entries.csv")
//	groups := io.GroupRows(rows)
package io
