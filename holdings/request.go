// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

package holdings

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cu-library/holdingstoolkit/oclc"
	"github.com/cu-library/holdingstoolkit/symbols"
)

type options struct {
	symbols   []string
	recordURL bool
}

// Option changes what a holdings request looks up.
type Option func(*options)

// WithSymbols sets the WorldCat institution symbols to look up. The default is symbols.All().
// A nil or empty slice turns off the WorldCat lookup.
func WithSymbols(syms []string) Option {
	return func(o *options) {
		o.symbols = append([]string(nil), syms...)
	}
}

// WithRecordURL turns the HathiTrust record URL lookup on or off. The default is on.
func WithRecordURL(include bool) Option {
	return func(o *options) {
		o.recordURL = include
	}
}

func newOptions(opts []Option) options {
	o := options{symbols: symbols.All(), recordURL: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Request looks up the holdings for one OCLC number.
type Request struct {
	oclcNumber string
	symbols    SymbolsQuery
	recordURL  RecordURLQuery
	logger     *zap.Logger
}

// OCLCNumber is the number being looked up.
func (r *Request) OCLCNumber() string { return r.oclcNumber }

// SymbolsQuery returns the WorldCat query, or nil if symbols weren't requested.
func (r *Request) SymbolsQuery() SymbolsQuery { return r.symbols }

// RecordURLQuery returns the HathiTrust query, or nil if the record URL wasn't requested.
func (r *Request) RecordURLQuery() RecordURLQuery { return r.recordURL }

// Execute runs the lookups concurrently and waits for both.
// Errors from either lookup are stored in the Result, they never stop the other lookup.
func (r *Request) Execute(ctx context.Context) Result {
	result := Result{OCLCNumber: r.oclcNumber, Symbols: []string{}}
	var g errgroup.Group
	if r.symbols != nil {
		g.Go(func() error {
			syms, err := r.symbols.Execute(ctx)
			if err != nil {
				r.logger.Warn("WorldCat lookup failed",
					zap.String("oclc", r.oclcNumber), zap.String("uri", r.symbols.URI()), zap.Error(err))
				result.SymbolsErr = err
				return nil
			}
			result.Symbols = dedupe(syms)
			return nil
		})
	}
	if r.recordURL != nil {
		g.Go(func() error {
			recordURL, err := r.recordURL.Execute(ctx)
			if err != nil {
				r.logger.Warn("HathiTrust lookup failed",
					zap.String("oclc", r.oclcNumber), zap.String("uri", r.recordURL.URI()), zap.Error(err))
				result.RecordURLErr = err
				return nil
			}
			result.RecordURL = recordURL
			return nil
		})
	}
	// Each goroutine writes its own fields of result, so neither needs a lock.
	_ = g.Wait()
	r.logger.Debug("holdings resolved",
		zap.String("oclc", r.oclcNumber),
		zap.Strings("symbols", result.Symbols),
		zap.String("record_url", result.RecordURL))
	return result
}

func newRequest(sources Sources, logger *zap.Logger, oclcNumber string, o options) (*Request, error) {
	oclcNumber, err := oclc.Validate(oclcNumber)
	if err != nil {
		return nil, err
	}
	if len(o.symbols) == 0 && !o.recordURL {
		return nil, ErrEmptyRequest
	}
	r := &Request{oclcNumber: oclcNumber, logger: logger}
	if len(o.symbols) != 0 {
		r.symbols, err = sources.SymbolsQuery(oclcNumber, o.symbols)
		if err != nil {
			return nil, err
		}
	}
	if o.recordURL {
		r.recordURL, err = sources.RecordURLQuery(oclcNumber)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}
