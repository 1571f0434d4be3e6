// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

// Package sheet reads OCLC numbers from, and writes holdings to, tabular files with a header row.
package sheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// OCLCHeader is the header of the column holding OCLC numbers.
const OCLCHeader = "OCLC Number"

var (
	// ErrColumnNotFound is returned when a sheet has no column with the needed header.
	ErrColumnNotFound = errors.New("column not found")
	// ErrUnknownOCLCNumber is returned when writing a result for an OCLC number which isn't in the sheet.
	ErrUnknownOCLCNumber = errors.New("unknown OCLC number")
	// ErrUnsupportedFormat is returned by Open for files which are neither CSV nor .xlsx.
	ErrUnsupportedFormat = errors.New("expected a CSV file or an Excel workbook (.xlsx)")
)

// Sink is a table of string cells. Row 0 is the header row.
// Reading a cell which doesn't exist returns "", and writing one grows the table.
type Sink interface {
	// FindColumn returns the index of the first column whose header, trimmed of spaces, is header.
	FindColumn(header string) (int, bool)
	// EnsureColumn returns the index of the column with the header, appending one to the header row if there isn't one.
	EnsureColumn(header string) int
	// ReadColumn returns every value in the column, optionally skipping the header row.
	ReadColumn(col int, skipHeader bool) []string
	WriteCell(row, col int, value string)
	Value(row, col int) string
	RowCount() int
}

// Document is a Sink read from, and saved to, a file.
type Document interface {
	Sink
	Save(path string) error
	Close() error
}

// Open reads a CSV file or the first worksheet of an .xlsx workbook, chosen by the file's content.
func Open(path string) (Document, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %v failed: %w", path, err)
	}
	switch {
	case isWorkbook(mtype):
		x, err := OpenXLSX(path)
		if err != nil {
			return nil, err
		}
		return x, nil
	case isText(mtype):
		c, err := OpenCSV(path)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w, got %v: %v", ErrUnsupportedFormat, mtype.String(), path)
}

// MustFindColumn is FindColumn, returning ErrColumnNotFound if there is no such column.
func MustFindColumn(s Sink, header string) (int, error) {
	col, ok := s.FindColumn(header)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, header)
	}
	return col, nil
}

// OCLCNumbers returns the values of the OCLC Number column, skipping the header and blank cells.
// Values are returned as they appear in the sheet.
func OCLCNumbers(s Sink) ([]string, error) {
	col, err := MustFindColumn(s, OCLCHeader)
	if err != nil {
		return nil, err
	}
	numbers := []string{}
	for _, v := range s.ReadColumn(col, true) {
		if strings.TrimSpace(v) == "" {
			continue
		}
		numbers = append(numbers, v)
	}
	return numbers, nil
}

func findHeader(headers []string, header string) (int, bool) {
	for i, h := range headers {
		if strings.TrimSpace(h) == header {
			return i, true
		}
	}
	return 0, false
}

func readColumn(s Sink, col int, skipHeader bool) []string {
	start := 0
	if skipHeader {
		start = 1
	}
	values := []string{}
	for row := start; row < s.RowCount(); row++ {
		values = append(values, s.Value(row, col))
	}
	return values
}

// grow pads rows so the cell at row, col exists.
func grow(rows [][]string, row, col int) [][]string {
	for len(rows) <= row {
		rows = append(rows, []string{})
	}
	for len(rows[row]) <= col {
		rows[row] = append(rows[row], "")
	}
	return rows
}

func cellValue(rows [][]string, row, col int) string {
	if row < 0 || row >= len(rows) || col < 0 || col >= len(rows[row]) {
		return ""
	}
	return rows[row][col]
}
