// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

// Package subcommandtest runs fake WorldCat and HathiTrust services for subcommand tests.
package subcommandtest

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/cu-library/holdingstoolkit/api"
	"github.com/cu-library/holdingstoolkit/config"
	"github.com/cu-library/holdingstoolkit/holdings"
	"github.com/cu-library/holdingstoolkit/subcommand"
)

// Catalog is the data served by Upstream.
type Catalog struct {
	// Symbols maps an OCLC number to the institutions which hold it.
	Symbols map[string][]string
	// RecordURLs maps an OCLC number to its HathiTrust record URL.
	RecordURLs map[string]string
	// Fail lists OCLC numbers whose lookups return a 500.
	Fail map[string]bool
}

// Upstream is a fake WorldCat v1 and HathiTrust API.
type Upstream struct {
	*httptest.Server
	Catalog Catalog
	// Requests counts the requests received.
	Requests atomic.Int32
}

// NewUpstream starts a fake API which is closed when the test ends.
func NewUpstream(t *testing.T, c Catalog) *Upstream {
	t.Helper()
	u := &Upstream{Catalog: c}
	mux := http.NewServeMux()
	mux.HandleFunc("/wc/catalog/content/libraries/", u.libraries)
	mux.HandleFunc("/ht/volumes/brief/oclc/", u.volume)
	mux.HandleFunc("/ht/volumes/brief/json/", u.batch)
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.Requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(u.Close)
	return u
}

// Config points at the fake API.
func (u *Upstream) Config() config.Config {
	return config.Config{
		WorldCatProtocol:  config.ProtocolV1,
		WorldCatBaseURL:   u.URL + "/wc/",
		WorldCatAPIKey:    "wskey",
		HathiTrustBaseURL: u.URL + "/ht/",
	}
}

// Env returns a subcommand environment using the fake API, with output collected in out.
func (u *Upstream) Env(t *testing.T, out *bytes.Buffer) subcommand.Env {
	logger := zaptest.NewLogger(t)
	return subcommand.Env{
		Config:   u.Config(),
		Resolver: holdings.NewResolver(u.Config(), &api.Client{Client: u.Client()}, nil, logger),
		Logger:   logger,
		Out:      out,
	}
}

type librariesXML struct {
	XMLName xml.Name `xml:"holdings"`
	Holding []struct {
		Value string `xml:"institutionIdentifier>value"`
	} `xml:"holding"`
}

func (u *Upstream) libraries(w http.ResponseWriter, r *http.Request) {
	n := path.Base(r.URL.Path)
	if u.Catalog.Fail[n] {
		http.Error(w, "unavailable", http.StatusInternalServerError)
		return
	}
	requested := map[string]bool{}
	for _, s := range strings.Split(r.URL.Query().Get("oclcsymbol"), ",") {
		requested[s] = true
	}
	doc := librariesXML{}
	for _, s := range u.Catalog.Symbols[n] {
		if requested[s] {
			doc.Holding = append(doc.Holding, struct {
				Value string `xml:"institutionIdentifier>value"`
			}{s})
		}
	}
	w.Header().Set("Content-Type", "application/xml")
	_ = xml.NewEncoder(w).Encode(doc)
}

type record struct {
	RecordURL string   `json:"recordURL"`
	OCLCs     []string `json:"oclcs"`
}

func (u *Upstream) records(n string) map[string]record {
	records := map[string]record{}
	if url, ok := u.Catalog.RecordURLs[n]; ok {
		records[path.Base(url)] = record{RecordURL: url, OCLCs: []string{n}}
	}
	return records
}

func (u *Upstream) volume(w http.ResponseWriter, r *http.Request) {
	n := strings.TrimSuffix(path.Base(r.URL.Path), ".json")
	if u.Catalog.Fail[n] {
		http.Error(w, "unavailable", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"records": u.records(n), "items": []any{}})
}

func (u *Upstream) batch(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{}
	for _, key := range strings.Split(path.Base(r.URL.Path), "|") {
		n := strings.TrimPrefix(key, "oclc:")
		if u.Catalog.Fail[n] {
			http.Error(w, "unavailable", http.StatusInternalServerError)
			return
		}
		resp[key] = map[string]any{"records": u.records(n), "items": []any{}}
	}
	_ = json.NewEncoder(w).Encode(resp)
}
