// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotText is returned when a file passed to OpenCSV isn't plain text.
var ErrNotText = errors.New("expected a CSV file")

// CSV is an in-memory Sink, read from and written as CSV.
type CSV struct {
	rows [][]string
}

// NewCSV returns an empty sheet with the given header row.
func NewCSV(headers ...string) *CSV {
	c := &CSV{}
	for i, h := range headers {
		c.WriteCell(0, i, h)
	}
	return c
}

// OpenCSV reads a CSV file. Files which aren't text, like Excel workbooks, are rejected before parsing.
func OpenCSV(path string) (*CSV, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %v failed: %w", path, err)
	}
	if !isText(mtype) {
		return nil, fmt.Errorf("%w, got %v: %v", ErrNotText, mtype.String(), path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %v failed: %w", path, err)
	}
	return c, nil
}

// ReadCSV parses CSV. Rows may have different numbers of fields.
func ReadCSV(r io.Reader) (*CSV, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return &CSV{rows: rows}, nil
}

// Save writes the sheet to a file, replacing it if it exists.
func (c *CSV) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := f.Close()
		if err == nil {
			err = closeErr
		}
	}()
	_, err = c.WriteTo(f)
	return err
}

// WriteTo implements io.WriterTo. Short rows are padded so every row has as many fields as the widest.
func (c *CSV) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	writer := csv.NewWriter(cw)
	width := 0
	for _, row := range c.rows {
		width = max(width, len(row))
	}
	for _, row := range c.rows {
		padded := make([]string, width)
		copy(padded, row)
		err := writer.Write(padded)
		if err != nil {
			return cw.n, err
		}
	}
	writer.Flush()
	return cw.n, writer.Error()
}

// FindColumn implements Sink.
func (c *CSV) FindColumn(header string) (int, bool) {
	if len(c.rows) == 0 {
		return 0, false
	}
	return findHeader(c.rows[0], header)
}

// EnsureColumn implements Sink.
func (c *CSV) EnsureColumn(header string) int {
	if col, ok := c.FindColumn(header); ok {
		return col
	}
	col := 0
	if len(c.rows) != 0 {
		col = len(c.rows[0])
	}
	c.WriteCell(0, col, header)
	return col
}

// ReadColumn implements Sink.
func (c *CSV) ReadColumn(col int, skipHeader bool) []string {
	return readColumn(c, col, skipHeader)
}

// WriteCell implements Sink.
func (c *CSV) WriteCell(row, col int, value string) {
	c.rows = grow(c.rows, row, col)
	c.rows[row][col] = value
}

// Value implements Sink.
func (c *CSV) Value(row, col int) string {
	return cellValue(c.rows, row, col)
}

// RowCount implements Sink.
func (c *CSV) RowCount() int {
	return len(c.rows)
}

// Close implements Document. There is nothing to release.
func (c *CSV) Close() error {
	return nil
}

func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
