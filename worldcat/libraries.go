// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

package worldcat

import (
	"context"
	"encoding/xml"
	"net/url"
	"strings"

	"github.com/cu-library/holdingstoolkit/api"
	"github.com/cu-library/holdingstoolkit/config"
)

// LibrariesXML stores the parts of an ISO 20775 holdings document from the v1 libraries endpoint which we use.
// The root element isn't checked when unmarshalling; a document with another root, like a
// diagnostics response, has no holdings.
type LibrariesXML struct {
	XMLName  xml.Name
	Holdings []struct {
		InstitutionIdentifiers []string `xml:"institutionIdentifier>value"`
		PhysicalLocation       string   `xml:"physicalLocation"`
	} `xml:"holding"`
}

// InstitutionSymbols returns the trimmed values at /holdings/holding/institutionIdentifier/value.
func (l LibrariesXML) InstitutionSymbols() []string {
	syms := []string{}
	if l.XMLName.Local != "holdings" {
		return syms
	}
	for _, h := range l.Holdings {
		for _, v := range h.InstitutionIdentifiers {
			if v = strings.TrimSpace(v); v != "" {
				syms = append(syms, v)
			}
		}
	}
	return syms
}

// LibrariesRequest is a v1 query, authorized by a WSKey in the query string.
type LibrariesRequest struct {
	request
}

// NewLibrariesRequest returns a v1 query for the OCLC number and symbols.
func NewLibrariesRequest(cfg config.Provider, client Getter, oclcNumber string, syms []string) (*LibrariesRequest, error) {
	r, err := newRequest(cfg, client, oclcNumber, syms)
	if err != nil {
		return nil, err
	}
	return &LibrariesRequest{r}, nil
}

// URI implements Query. The OCLC number is the last path segment.
func (r *LibrariesRequest) URI() string {
	return api.AppendPath(r.cfg.BaseURI(config.WorldCat), "catalog", "content", "libraries", url.PathEscape(r.oclcNumber))
}

// Params implements Query.
func (r *LibrariesRequest) Params() url.Values {
	return url.Values{
		"oclcsymbol":   {strings.Join(r.symbols, ",")},
		"servicelevel": {"full"},
		"frbrGrouping": {"off"},
		"wskey":        {r.cfg.APIKey()},
	}
}

// Execute implements Query.
func (r *LibrariesRequest) Execute(ctx context.Context) ([]string, error) {
	body, err := r.client.Get(ctx, r.URI(), r.Params(), nil)
	if err != nil {
		return nil, err
	}
	libraries := LibrariesXML{}
	err = xml.Unmarshal(body, &libraries)
	if err != nil {
		return nil, api.DataError("libraries XML", err, body)
	}
	return r.requested(libraries.InstitutionSymbols()), nil
}
