// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

package hathitrust

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/cu-library/holdingstoolkit/api"
	"github.com/cu-library/holdingstoolkit/config"
	"github.com/cu-library/holdingstoolkit/oclc"
)

// MaxBatchSize is the most OCLC numbers HathiTrust accepts in one multi-ID request.
const MaxBatchSize = 20

var (
	// ErrEmptyBatch is returned when a batch is built with no OCLC numbers.
	ErrEmptyBatch = errors.New("no OCLC numbers provided")
	// ErrBatchTooLarge is returned when a batch is built with more than MaxBatchSize OCLC numbers.
	ErrBatchTooLarge = errors.New("too many OCLC numbers")
)

// RecordURLBatchRequest looks up the record URLs for up to MaxBatchSize OCLC numbers in one request.
type RecordURLBatchRequest struct {
	oclcNumbers []string
	cfg         config.Provider
	client      Getter
}

// NewRecordURLBatchRequest checks the batch size, validates the OCLC numbers, and returns a request for them.
func NewRecordURLBatchRequest(cfg config.Provider, client Getter, oclcNumbers []string) (*RecordURLBatchRequest, error) {
	if len(oclcNumbers) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(oclcNumbers) > MaxBatchSize {
		return nil, fmt.Errorf("%w: expected <= %v, was %v", ErrBatchTooLarge, MaxBatchSize, len(oclcNumbers))
	}
	oclcNumbers, err := oclc.ValidateAll(oclcNumbers)
	if err != nil {
		return nil, err
	}
	return &RecordURLBatchRequest{
		oclcNumbers: append([]string(nil), oclcNumbers...),
		cfg:         cfg,
		client:      client,
	}, nil
}

// OCLCNumbers are the numbers being looked up, in request order.
func (r *RecordURLBatchRequest) OCLCNumbers() []string {
	return append([]string(nil), r.oclcNumbers...)
}

// URI is like https://catalog.hathitrust.org/api/volumes/brief/json/oclc:10045193%7Coclc:85833285
func (r *RecordURLBatchRequest) URI() string {
	keys := make([]string, 0, len(r.oclcNumbers))
	for _, n := range r.oclcNumbers {
		keys = append(keys, key(n))
	}
	return api.AppendPath(volumesBaseURI(r.cfg), "json", url.PathEscape(strings.Join(keys, "|")))
}

// Execute returns a map from OCLC number to record URL.
// Numbers HathiTrust has no record for are left out, as are keys in the response which weren't requested.
func (r *RecordURLBatchRequest) Execute(ctx context.Context) (map[string]string, error) {
	body, err := r.client.Get(ctx, r.URI(), nil, nil)
	if err != nil {
		return nil, err
	}
	entries := map[string]json.RawMessage{}
	err = json.Unmarshal(body, &entries)
	if err != nil {
		return nil, api.DataError("HathiTrust batch JSON", err, body)
	}
	recordURLs := map[string]string{}
	for _, n := range r.oclcNumbers {
		entry, ok := entries[key(n)]
		if !ok {
			continue
		}
		recordURL, err := entryRecordURL(entry, n)
		if err != nil {
			return nil, api.DataError(fmt.Sprintf("HathiTrust batch entry %v", key(n)), err, body)
		}
		if recordURL != "" {
			recordURLs[n] = recordURL
		}
	}
	return recordURLs, nil
}

// entryRecordURL handles both shapes of batch entry:
// {"records": {id: record, ...}, "items": [...]} and a record object itself.
func entryRecordURL(entry json.RawMessage, oclcNumber string) (string, error) {
	if bytes.HasPrefix(bytes.TrimSpace(entry), []byte("[")) {
		return "", nil
	}
	fields := map[string]json.RawMessage{}
	err := json.Unmarshal(entry, &fields)
	if err != nil {
		return "", err
	}
	if records, ok := fields["records"]; ok {
		return recordURLFrom(records, oclcNumber)
	}
	rec := Record{}
	err = json.Unmarshal(entry, &rec)
	if err != nil {
		return "", err
	}
	if rec.OCLCs != nil && !rec.Holds(oclcNumber) {
		return "", nil
	}
	return rec.URL(), nil
}

func key(oclcNumber string) string {
	return "oclc:" + oclcNumber
}
