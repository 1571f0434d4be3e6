// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

package worldcat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/cu-library/holdingstoolkit/api"
	"github.com/cu-library/holdingstoolkit/config"
)

// ErrNoTokenSource is returned when a v2 query is executed without a way to get a bearer token.
var ErrNoTokenSource = errors.New("the WorldCat v2 protocol requires a token source")

// BibsHoldings stores the parts of a v2 bibs-holdings response which we use.
type BibsHoldings struct {
	NumberOfRecords int `json:"numberOfRecords"`
	BriefRecords    []struct {
		OCLCNumber         string `json:"oclcNumber"`
		Title              string `json:"title"`
		InstitutionHolding struct {
			TotalHoldingCount int `json:"totalHoldingCount"`
			BriefHoldings     []struct {
				OCLCSymbol      string `json:"oclcSymbol"`
				InstitutionName string `json:"institutionName"`
			} `json:"briefHoldings"`
		} `json:"institutionHolding"`
	} `json:"briefRecords"`
}

// InstitutionSymbols returns the trimmed oclcSymbol of every brief holding, in response order.
func (b BibsHoldings) InstitutionSymbols() []string {
	syms := []string{}
	for _, rec := range b.BriefRecords {
		for _, h := range rec.InstitutionHolding.BriefHoldings {
			if s := strings.TrimSpace(h.OCLCSymbol); s != "" {
				syms = append(syms, s)
			}
		}
	}
	return syms
}

// HoldingsRequest is a v2 query, authorized by an OAuth bearer token.
type HoldingsRequest struct {
	request
	auth TokenSource
}

// NewHoldingsRequest returns a v2 query for the OCLC number and symbols.
func NewHoldingsRequest(cfg config.Provider, client Getter, auth TokenSource, oclcNumber string, syms []string) (*HoldingsRequest, error) {
	r, err := newRequest(cfg, client, oclcNumber, syms)
	if err != nil {
		return nil, err
	}
	return &HoldingsRequest{request: r, auth: auth}, nil
}

// URI implements Query.
func (r *HoldingsRequest) URI() string {
	return api.AppendPath(r.cfg.BaseURI(config.WorldCat), "bibs-holdings")
}

// Params implements Query.
func (r *HoldingsRequest) Params() url.Values {
	return url.Values{
		"oclcNumber":   {r.oclcNumber},
		"heldBySymbol": {strings.Join(r.symbols, ",")},
	}
}

// Header returns the headers sent with the request, including a current bearer token.
func (r *HoldingsRequest) Header(ctx context.Context) (http.Header, error) {
	if r.auth == nil {
		return nil, ErrNoTokenSource
	}
	token, err := r.auth.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	header.Set("Accept", "application/json")
	return header, nil
}

// Execute implements Query.
func (r *HoldingsRequest) Execute(ctx context.Context) ([]string, error) {
	header, err := r.Header(ctx)
	if err != nil {
		return nil, err
	}
	body, err := r.client.Get(ctx, r.URI(), r.Params(), header)
	if err != nil {
		return nil, err
	}
	holdings := BibsHoldings{}
	err = json.Unmarshal(body, &holdings)
	if err != nil {
		return nil, api.DataError("bibs-holdings JSON", err, body)
	}
	return r.requested(holdings.InstitutionSymbols()), nil
}
