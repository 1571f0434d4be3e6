// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

// Package holdings combines WorldCat institution holdings and HathiTrust record URLs for works
// identified by OCLC number.
//
// The two lookups for a work run concurrently, and a failure in one never affects the other.
// Each Result carries the data from both sources along with a separate error for each.
package holdings

//go:generate mockgen -source=holdings.go -destination=mocks_test.go -package=holdings

import (
	"context"
	"errors"

	"github.com/cu-library/holdingstoolkit/config"
	"github.com/cu-library/holdingstoolkit/hathitrust"
	"github.com/cu-library/holdingstoolkit/worldcat"
)

// ErrEmptyRequest is returned when a request would look up neither institution symbols nor a record URL.
var ErrEmptyRequest = errors.New("holdings request must be for WorldCat institution symbols, HathiTrust record URL, or both")

// SymbolsQuery finds which of a set of institutions hold a work. worldcat.Query is a SymbolsQuery.
type SymbolsQuery interface {
	URI() string
	Execute(ctx context.Context) ([]string, error)
}

// RecordURLQuery finds the HathiTrust record URL for a work. *hathitrust.RecordURLRequest is a RecordURLQuery.
type RecordURLQuery interface {
	URI() string
	Execute(ctx context.Context) (string, error)
}

// RecordURLBatchQuery finds the HathiTrust record URLs for a batch of works.
type RecordURLBatchQuery interface {
	Execute(ctx context.Context) (map[string]string, error)
}

// Sources builds the queries sent to WorldCat and HathiTrust.
// Building a query validates its input; constructor errors are caller errors.
type Sources interface {
	SymbolsQuery(oclcNumber string, syms []string) (SymbolsQuery, error)
	RecordURLQuery(oclcNumber string) (RecordURLQuery, error)
	RecordURLBatchQuery(oclcNumbers []string) (RecordURLBatchQuery, error)
}

// Services is the Sources backed by the real WorldCat and HathiTrust APIs.
type Services struct {
	Config config.Provider
	Client worldcat.Getter
	// Auth is only needed for the WorldCat v2 protocol.
	Auth worldcat.TokenSource
}

// SymbolsQuery builds a WorldCat query for the configured protocol.
func (s Services) SymbolsQuery(oclcNumber string, syms []string) (SymbolsQuery, error) {
	q, err := worldcat.Builder{Config: s.Config, Client: s.Client, Auth: s.Auth}.Build(oclcNumber, syms)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// RecordURLQuery builds a HathiTrust single record query.
func (s Services) RecordURLQuery(oclcNumber string) (RecordURLQuery, error) {
	q, err := hathitrust.NewRecordURLRequest(s.Config, s.Client, oclcNumber)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// RecordURLBatchQuery builds a HathiTrust batch query.
func (s Services) RecordURLBatchQuery(oclcNumbers []string) (RecordURLBatchQuery, error) {
	q, err := hathitrust.NewRecordURLBatchRequest(s.Config, s.Client, oclcNumbers)
	if err != nil {
		return nil, err
	}
	return q, nil
}
