// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

// Package worldcat looks up which institutions hold a work in WorldCat.
//
// Two generations of the WorldCat API are supported. The legacy Search API (v1) is called with a
// WSKey and returns ISO 20775 holdings XML. The Search API v2 is called with an OAuth bearer token
// and returns JSON. Both are exposed as a Query, selected by the configured protocol.
// https://developer.api.oclc.org/wcv1#/Holdings
// https://developer.api.oclc.org/wcv2#/Member%20General%20Holdings
package worldcat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cu-library/holdingstoolkit/config"
	"github.com/cu-library/holdingstoolkit/oclc"
	"github.com/cu-library/holdingstoolkit/symbols"
)

// Getter sends GET requests. *api.Client is a Getter.
type Getter interface {
	Get(ctx context.Context, rawURL string, params url.Values, header http.Header) ([]byte, error)
}

// TokenSource supplies bearer tokens. *auth.Authenticator is a TokenSource.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Query is a request for the institutions, out of a requested set of symbols, which hold a work.
type Query interface {
	// OCLCNumber is the number of the work being looked up.
	OCLCNumber() string
	// Symbols are the requested institution symbols.
	Symbols() []string
	// URI is the request URI, without query parameters.
	URI() string
	// Params are the query parameters sent with the request.
	Params() url.Values
	// Execute calls WorldCat and returns the requested symbols which hold the work.
	// A symbol which wasn't requested is never returned.
	Execute(ctx context.Context) ([]string, error)
}

// Builder builds queries for the protocol generation named by Config.
type Builder struct {
	Config config.Provider
	Client Getter
	// Auth is only needed for the v2 protocol.
	Auth TokenSource
}

// Build validates the OCLC number and symbols, then returns a query for them.
func (b Builder) Build(oclcNumber string, syms []string) (Query, error) {
	var q Query
	var err error
	switch b.Config.Protocol() {
	case config.ProtocolV1:
		q, err = NewLibrariesRequest(b.Config, b.Client, oclcNumber, syms)
	case config.ProtocolV2:
		q, err = NewHoldingsRequest(b.Config, b.Client, b.Auth, oclcNumber, syms)
	default:
		err = fmt.Errorf("unknown WorldCat protocol %q", b.Config.Protocol())
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

// request holds what both protocol generations share.
type request struct {
	oclcNumber string
	symbols    []string
	cfg        config.Provider
	client     Getter
}

func newRequest(cfg config.Provider, client Getter, oclcNumber string, syms []string) (request, error) {
	oclcNumber, err := oclc.Validate(oclcNumber)
	if err != nil {
		return request{}, err
	}
	syms, err = symbols.Validate(syms)
	if err != nil {
		return request{}, err
	}
	return request{
		oclcNumber: oclcNumber,
		symbols:    append([]string(nil), syms...),
		cfg:        cfg,
		client:     client,
	}, nil
}

// OCLCNumber implements Query.
func (r request) OCLCNumber() string { return r.oclcNumber }

// Symbols implements Query.
func (r request) Symbols() []string { return append([]string(nil), r.symbols...) }

// requested drops any symbol WorldCat returned which wasn't asked for.
// WorldCat shouldn't return holdings for other institutions, but this is checked on every response.
func (r request) requested(found []string) []string {
	return symbols.Intersect(found, r.symbols)
}
