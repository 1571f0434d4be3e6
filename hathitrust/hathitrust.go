// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

// Package hathitrust finds the HathiTrust catalog record URL for digitized works, using the
// brief form of the HathiTrust Bibliographic API.
// https://www.hathitrust.org/bib_api
package hathitrust

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"

	"github.com/cu-library/holdingstoolkit/api"
	"github.com/cu-library/holdingstoolkit/config"
)

// Getter sends GET requests. *api.Client is a Getter.
type Getter interface {
	Get(ctx context.Context, rawURL string, params url.Values, header http.Header) ([]byte, error)
}

// Record is a brief HathiTrust catalog record.
type Record struct {
	RecordURL *string  `json:"recordURL"`
	Titles    []string `json:"titles"`
	OCLCs     []string `json:"oclcs"`
	ISBNs     []string `json:"isbns"`
}

// Holds reports whether the record lists the OCLC number.
func (r Record) Holds(oclcNumber string) bool {
	return slices.Contains(r.OCLCs, oclcNumber)
}

// URL returns the record URL, or "" if the record has none.
func (r Record) URL() string {
	if r.RecordURL == nil {
		return ""
	}
	return *r.RecordURL
}

// volumesBaseURI is the parent of both the single and batch endpoints.
func volumesBaseURI(cfg config.Provider) string {
	return api.AppendPath(cfg.BaseURI(config.HathiTrust), "volumes", "brief")
}

// recordURLFrom returns the URL of the first record, in document order, which lists the OCLC number.
// A missing or null records value has no URL.
func recordURLFrom(records json.RawMessage, oclcNumber string) (string, error) {
	if len(records) == 0 || string(records) == "null" {
		return "", nil
	}
	d := json.NewDecoder(bytes.NewReader(records))
	t, err := d.Token()
	if err != nil {
		return "", err
	}
	switch t {
	case json.Delim('{'):
	case json.Delim('['):
		// An empty result is sometimes sent as an array.
		return "", nil
	default:
		return "", fmt.Errorf("records is a %T, not an object", t)
	}
	for d.More() {
		// The record ID.
		_, err = d.Token()
		if err != nil {
			return "", err
		}
		rec := Record{}
		err = d.Decode(&rec)
		if err != nil {
			return "", err
		}
		if rec.Holds(oclcNumber) {
			return rec.URL(), nil
		}
	}
	return "", nil
}
