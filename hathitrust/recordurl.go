// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

package hathitrust

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/cu-library/holdingstoolkit/api"
	"github.com/cu-library/holdingstoolkit/config"
	"github.com/cu-library/holdingstoolkit/oclc"
)

// RecordURLRequest looks up the record URL for one OCLC number.
type RecordURLRequest struct {
	oclcNumber string
	cfg        config.Provider
	client     Getter
}

// NewRecordURLRequest validates the OCLC number and returns a request for it.
func NewRecordURLRequest(cfg config.Provider, client Getter, oclcNumber string) (*RecordURLRequest, error) {
	oclcNumber, err := oclc.Validate(oclcNumber)
	if err != nil {
		return nil, err
	}
	return &RecordURLRequest{oclcNumber: oclcNumber, cfg: cfg, client: client}, nil
}

// OCLCNumber is the number being looked up.
func (r *RecordURLRequest) OCLCNumber() string { return r.oclcNumber }

// URI is like https://catalog.hathitrust.org/api/volumes/brief/oclc/10045193.json
func (r *RecordURLRequest) URI() string {
	return api.AppendPath(volumesBaseURI(r.cfg), "oclc", url.PathEscape(r.oclcNumber+".json"))
}

// Execute returns the record URL, or "" if HathiTrust has no record for the number.
func (r *RecordURLRequest) Execute(ctx context.Context) (string, error) {
	body, err := r.client.Get(ctx, r.URI(), nil, nil)
	if err != nil {
		return "", err
	}
	doc := struct {
		Records json.RawMessage `json:"records"`
	}{}
	err = json.Unmarshal(body, &doc)
	if err != nil {
		return "", api.DataError("HathiTrust volumes JSON", err, body)
	}
	recordURL, err := recordURLFrom(doc.Records, r.oclcNumber)
	if err != nil {
		return "", api.DataError("HathiTrust records", err, body)
	}
	return recordURL, nil
}
