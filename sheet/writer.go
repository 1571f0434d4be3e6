// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

package sheet

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cu-library/holdingstoolkit/holdings"
)

// Column headers and values written by Writer.
const (
	NRLFHeader       = "NRLF"
	SRLFHeader       = "SRLF"
	OtherUCHeader    = "Other UC"
	HathiTrustHeader = "Hathi Trust"

	NRLFValue = "nrlf"
	SRLFValue = "srlf"
)

// WriterOptions selects the columns a Writer fills.
type WriterOptions struct {
	RLF        bool
	UC         bool
	HathiTrust bool
}

// Writer writes holdings results into the row of a sheet with the matching OCLC number.
// It is not safe for concurrent use.
type Writer struct {
	sink   Sink
	opts   WriterOptions
	logger *zap.Logger

	nrlfCol int
	srlfCol int
	ucCol   int
	htCol   int
	rows    map[string]int
}

// NewWriter adds any missing result columns to the sheet and indexes its rows by OCLC number.
// When an OCLC number appears more than once, results are written to its first row.
func NewWriter(sink Sink, opts WriterOptions, logger *zap.Logger) (*Writer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	oclcCol, err := MustFindColumn(sink, OCLCHeader)
	if err != nil {
		return nil, err
	}
	w := &Writer{sink: sink, opts: opts, logger: logger, rows: map[string]int{}}
	if opts.RLF {
		w.nrlfCol = sink.EnsureColumn(NRLFHeader)
		w.srlfCol = sink.EnsureColumn(SRLFHeader)
	}
	if opts.UC {
		w.ucCol = sink.EnsureColumn(OtherUCHeader)
	}
	if opts.HathiTrust {
		w.htCol = sink.EnsureColumn(HathiTrustHeader)
	}
	// Start at 1 to skip the header row.
	for row := 1; row < sink.RowCount(); row++ {
		n := sink.Value(row, oclcCol)
		if strings.TrimSpace(n) == "" {
			continue
		}
		if first, ok := w.rows[n]; ok {
			logger.Warn("skipping duplicate OCLC number", zap.String("oclc", n), zap.Int("row", row), zap.Int("first_row", first))
			continue
		}
		w.rows[n] = row
	}
	return w, nil
}

// Write fills the selected columns in the row for the result's OCLC number.
// Cells are only written when there is something to record.
func (w *Writer) Write(result holdings.Result) error {
	row, ok := w.rows[result.OCLCNumber]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownOCLCNumber, result.OCLCNumber)
	}
	if w.opts.RLF {
		if result.NRLF() {
			w.sink.WriteCell(row, w.nrlfCol, NRLFValue)
		}
		if result.SRLF() {
			w.sink.WriteCell(row, w.srlfCol, SRLFValue)
		}
	}
	if w.opts.UC {
		if uc := result.UCSymbols(); len(uc) != 0 {
			w.sink.WriteCell(row, w.ucCol, strings.Join(uc, ","))
		}
	}
	if w.opts.HathiTrust && result.RecordURL != "" {
		w.sink.WriteCell(row, w.htCol, result.RecordURL)
	}
	return nil
}

// WriteAll writes every result, returning the errors for results which couldn't be written.
func (w *Writer) WriteAll(results []holdings.Result) []error {
	errs := []error{}
	for _, r := range results {
		err := w.Write(r)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
