// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

package sheet

import (
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"
)

// WorkbookMIME is the MIME type of an Office Open XML workbook (.xlsx).
const WorkbookMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrNotWorkbook is returned when a file passed to OpenXLSX isn't an .xlsx workbook.
var ErrNotWorkbook = errors.New("expected an Excel workbook (.xlsx)")

// XLSX is a Sink backed by the first worksheet of an Excel workbook.
// Cells which aren't written keep their formatting when the workbook is saved.
type XLSX struct {
	file  *excelize.File
	sheet string
	rows  [][]string
	// err is the first error from writing a cell, returned by Save.
	err error
}

// NewXLSX returns a workbook with one worksheet holding the given header row.
func NewXLSX(headers ...string) *XLSX {
	f := excelize.NewFile()
	x := &XLSX{file: f, sheet: f.GetSheetName(0)}
	for i, h := range headers {
		x.WriteCell(0, i, h)
	}
	return x
}

// OpenXLSX reads an .xlsx workbook. Other files, including older Excel formats, are rejected before parsing.
func OpenXLSX(path string) (*XLSX, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %v failed: %w", path, err)
	}
	if !isWorkbook(mtype) {
		return nil, fmt.Errorf("%w, got %v: %v", ErrNotWorkbook, mtype.String(), path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %v failed: %w", path, err)
	}
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%w, no worksheets: %v", ErrNotWorkbook, path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("reading worksheet %q of %v failed: %w", sheets[0], path, err)
	}
	return &XLSX{file: f, sheet: sheets[0], rows: rows}, nil
}

// Save writes the workbook to a file, replacing it if it exists.
func (x *XLSX) Save(path string) error {
	if x.err != nil {
		return x.err
	}
	return x.file.SaveAs(path)
}

// Close releases the workbook's temporary files.
func (x *XLSX) Close() error {
	return x.file.Close()
}

// FindColumn implements Sink.
func (x *XLSX) FindColumn(header string) (int, bool) {
	if len(x.rows) == 0 {
		return 0, false
	}
	return findHeader(x.rows[0], header)
}

// EnsureColumn implements Sink.
func (x *XLSX) EnsureColumn(header string) int {
	if col, ok := x.FindColumn(header); ok {
		return col
	}
	col := 0
	if len(x.rows) != 0 {
		col = len(x.rows[0])
	}
	x.WriteCell(0, col, header)
	return col
}

// ReadColumn implements Sink.
func (x *XLSX) ReadColumn(col int, skipHeader bool) []string {
	return readColumn(x, col, skipHeader)
}

// WriteCell implements Sink.
func (x *XLSX) WriteCell(row, col int, value string) {
	x.rows = grow(x.rows, row, col)
	x.rows[row][col] = value
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err == nil {
		err = x.file.SetCellStr(x.sheet, cell, value)
	}
	if err != nil && x.err == nil {
		x.err = fmt.Errorf("writing row %v column %v failed: %w", row, col, err)
	}
}

// Value implements Sink.
func (x *XLSX) Value(row, col int) string {
	return cellValue(x.rows, row, col)
}

// RowCount implements Sink.
func (x *XLSX) RowCount() int {
	return len(x.rows)
}

func isWorkbook(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is(WorkbookMIME) {
			return true
		}
	}
	return false
}
