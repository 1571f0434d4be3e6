// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

package holdings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cu-library/holdingstoolkit/api"
	"github.com/cu-library/holdingstoolkit/auth"
	"github.com/cu-library/holdingstoolkit/config"
	"github.com/cu-library/holdingstoolkit/hathitrust"
	"github.com/cu-library/holdingstoolkit/symbols"
)

// upstream serves the WorldCat v1 and v2, OCLC token and HathiTrust endpoints from testdata.
// WorldCat requests block until the client gives up if stall is closed.
func upstream(t *testing.T, stall <-chan struct{}) *httptest.Server {
	t.Helper()
	read := func(path string) []byte {
		b, err := os.ReadFile(filepath.FromSlash(path))
		require.NoError(t, err)
		return b
	}
	libraries := read("../worldcat/testdata/10045193-all.xml")
	bibsHoldings := read("../worldcat/testdata/85833285-all.json")
	volumes := read("../hathitrust/testdata/10045193.json")
	notFound := read("../hathitrust/testdata/not-found.json")
	batch := read("../hathitrust/testdata/batch.json")

	stalled := func(w http.ResponseWriter, r *http.Request) bool {
		select {
		case <-stall:
			<-r.Context().Done()
			return true
		default:
			return false
		}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/webservices/catalog/content/libraries/10045193", func(w http.ResponseWriter, r *http.Request) {
		if !stalled(w, r) {
			_, _ = w.Write(libraries)
		}
	})
	mux.HandleFunc("/v2/bibs-holdings", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tk_1" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		_, _ = w.Write(bibsHoldings)
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"tk_1","token_type":"bearer","expires_in":1199}`)
	})
	mux.HandleFunc("/api/volumes/brief/oclc/10045193.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(volumes)
	})
	mux.HandleFunc("/api/volumes/brief/oclc/85833285.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(notFound)
	})
	mux.HandleFunc("/api/volumes/brief/json/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(batch)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func v1Resolver(t *testing.T, ts *httptest.Server) *Resolver {
	cfg := config.Config{
		WorldCatProtocol:  config.ProtocolV1,
		WorldCatBaseURL:   ts.URL + "/webservices/",
		WorldCatAPIKey:    "wskey",
		HathiTrustBaseURL: ts.URL + "/api/",
	}
	return NewResolver(cfg, &api.Client{Client: ts.Client()}, nil, zaptest.NewLogger(t))
}

func TestServicesResolve(t *testing.T) {
	ts := upstream(t, nil)
	r := v1Resolver(t, ts)
	result, err := r.Resolve(context.Background(), "10045193")
	require.NoError(t, err)
	assert.Equal(t, Result{
		OCLCNumber: "10045193",
		Symbols:    []string{"CLU", "CUY"},
		RecordURL:  "https://catalog.hathitrust.org/Record/102321413",
	}, result)
}

func TestServicesConfigFromEnvironment(t *testing.T) {
	ts := upstream(t, nil)
	t.Setenv(config.EnvWorldCatProtocol, config.ProtocolV1)
	t.Setenv(config.EnvWorldCatBaseURL, ts.URL+"/webservices/")
	t.Setenv(config.EnvWorldCatAPIKey, "wskey")
	t.Setenv(config.EnvHathiTrustBaseURL, ts.URL+"/api/")
	r := NewResolver(nil, &api.Client{Client: ts.Client()}, nil, zaptest.NewLogger(t))
	result, err := r.Resolve(context.Background(), "10045193")
	require.NoError(t, err)
	assert.Equal(t, []string{"CLU", "CUY"}, result.Symbols)
	assert.Equal(t, "https://catalog.hathitrust.org/Record/102321413", result.RecordURL)
}

func TestServicesWorldCatTimeout(t *testing.T) {
	stall := make(chan struct{})
	close(stall)
	ts := upstream(t, stall)
	r := v1Resolver(t, ts)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	req, err := r.NewRequest("10045193")
	require.NoError(t, err)
	// Fetch the record URL first so the shared deadline can only hit WorldCat.
	recordURL, err := req.RecordURLQuery().Execute(context.Background())
	require.NoError(t, err)
	result := req.Execute(ctx)
	assert.ErrorIs(t, result.SymbolsErr, api.ErrSourceUnavailable)
	assert.Equal(t, []string{}, result.Symbols)
	assert.Equal(t, recordURL, result.RecordURL)
	assert.NoError(t, result.RecordURLErr)
}

func TestServicesV2(t *testing.T) {
	ts := upstream(t, nil)
	cfg := config.Config{
		WorldCatProtocol:  config.ProtocolV2,
		WorldCatBaseURL:   ts.URL + "/v2",
		WorldCatAPIKey:    "key",
		WorldCatAPISecret: "secret",
		OCLCTokenURL:      ts.URL + "/token",
		HathiTrustBaseURL: ts.URL + "/api",
	}
	client := &api.Client{Client: ts.Client()}
	r := NewResolver(cfg, client, auth.New(cfg, client), zaptest.NewLogger(t))
	result, err := r.Resolve(context.Background(), "85833285", WithSymbols(symbols.UC()))
	require.NoError(t, err)
	assert.Equal(t, []string{"CUI", "CUY", "MERUC"}, result.Symbols)
	assert.False(t, result.NRLF())
	assert.Equal(t, "", result.RecordURL)
	assert.NoError(t, result.Err())
}

func TestServicesRecordURLs(t *testing.T) {
	ts := upstream(t, nil)
	r := v1Resolver(t, ts)
	numbers := []string{
		"1097551039", "1057635605", "744914764", "841051175", "553365107",
		"916723577", "50478533", "1037810804", "1106476939", "1019839414",
		"1202732743", "1232187285", "43310158", "786872103", "17401297",
		"39281966", "1088664799", "959808903", "1183717747", "840927703",
	}
	got, err := r.ResolveRecordURLBatch(context.Background(), numbers)
	require.NoError(t, err)
	assert.Len(t, got, 10)
	assert.Equal(t, "https://catalog.hathitrust.org/Record/102799570", got["1097551039"])

	_, err = r.ResolveRecordURLBatch(context.Background(), append(numbers, "10045193"))
	assert.ErrorIs(t, err, hathitrust.ErrBatchTooLarge)

	all, errs := r.ResolveRecordURLs(context.Background(), append(numbers, "10045193"))
	assert.Empty(t, errs)
	assert.Len(t, all, 10)
}
