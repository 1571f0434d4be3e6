// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

package holdings

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cu-library/holdingstoolkit/api"
	"github.com/cu-library/holdingstoolkit/config"
	"github.com/cu-library/holdingstoolkit/hathitrust"
	"github.com/cu-library/holdingstoolkit/worldcat"
)

// Resolver builds and runs holdings requests.
type Resolver struct {
	Sources Sources
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Workers bounds the requests in flight during bulk lookups. Defaults to the number of CPUs.
	Workers int
}

// NewResolver returns a Resolver which calls the real WorldCat and HathiTrust APIs.
// A nil cfg reads the settings from the LIT_ environment variables.
func NewResolver(cfg config.Provider, client worldcat.Getter, auth worldcat.TokenSource, logger *zap.Logger) *Resolver {
	if cfg == nil {
		cfg = &config.Env{}
	}
	return &Resolver{
		Sources: Services{Config: cfg, Client: client, Auth: auth},
		Logger:  logger,
	}
}

// NewRequest validates the OCLC number and options, and builds the queries they need.
func (r *Resolver) NewRequest(oclcNumber string, opts ...Option) (*Request, error) {
	return newRequest(r.Sources, r.logger(), oclcNumber, newOptions(opts))
}

// Resolve looks up the holdings for one OCLC number.
// The returned error is only for invalid input; lookup failures are stored in the Result.
func (r *Resolver) Resolve(ctx context.Context, oclcNumber string, opts ...Option) (Result, error) {
	req, err := r.NewRequest(oclcNumber, opts...)
	if err != nil {
		return Result{}, err
	}
	return req.Execute(ctx), nil
}

// ResolveAll looks up the holdings for every OCLC number using a pool of workers.
// Results are in the same order as oclcNumbers. An OCLC number which can't be looked up gets a
// Result with the construction error in place of the lookup errors. progress, if not nil, is
// called once each number is done.
func (r *Resolver) ResolveAll(ctx context.Context, oclcNumbers []string, opts []Option, progress func()) []Result {
	o := newOptions(opts)
	results := make([]Result, len(oclcNumbers))
	var mu sync.Mutex
	jobs, wg := api.StartConcurrent(r.workers())
	for i, n := range oclcNumbers {
		jobs <- func() {
			defer func() {
				if progress != nil {
					mu.Lock()
					progress()
					mu.Unlock()
				}
			}()
			req, err := newRequest(r.Sources, r.logger(), n, o)
			if err != nil {
				r.logger().Error("skipping OCLC number", zap.String("oclc", n), zap.Error(err))
				results[i] = failed(n, o, err)
				return
			}
			results[i] = req.Execute(ctx)
		}
	}
	api.StopConcurrent(jobs, wg)
	return results
}

// ResolveRecordURLBatch looks up the HathiTrust record URLs for up to hathitrust.MaxBatchSize OCLC numbers in one request.
func (r *Resolver) ResolveRecordURLBatch(ctx context.Context, oclcNumbers []string) (map[string]string, error) {
	q, err := r.Sources.RecordURLBatchQuery(oclcNumbers)
	if err != nil {
		return nil, err
	}
	return q.Execute(ctx)
}

// ResolveRecordURLs looks up the HathiTrust record URLs for any number of OCLC numbers, in batches.
// The URLs from every batch which succeeded are returned, along with an error for each batch which didn't.
func (r *Resolver) ResolveRecordURLs(ctx context.Context, oclcNumbers []string) (map[string]string, []error) {
	recordURLs := map[string]string{}
	errs := []error{}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for start := 0; start < len(oclcNumbers); start += hathitrust.MaxBatchSize {
		batch := oclcNumbers[start:min(start+hathitrust.MaxBatchSize, len(oclcNumbers))]
		g.Go(func() error {
			found, err := r.ResolveRecordURLBatch(gctx, batch)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				r.logger().Warn("HathiTrust batch lookup failed", zap.Int("start", start), zap.Int("size", len(batch)), zap.Error(err))
				errs = append(errs, fmt.Errorf("batch starting at index %v: %w", start, err))
				return nil // keep the other batches
			}
			for n, u := range found {
				recordURLs[n] = u
			}
			return nil
		})
	}
	_ = g.Wait()
	return recordURLs, errs
}

func (r *Resolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *Resolver) workers() int {
	if r.Workers < 1 {
		return runtime.NumCPU()
	}
	return r.Workers
}

// failed is the Result for an OCLC number whose request couldn't be built.
func failed(oclcNumber string, o options, err error) Result {
	result := Result{OCLCNumber: oclcNumber, Symbols: []string{}}
	if len(o.symbols) != 0 || !o.recordURL {
		result.SymbolsErr = err
	}
	if o.recordURL {
		result.RecordURLErr = err
	}
	return result
}
