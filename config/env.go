// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

package config

import (
	"os"
	"sync"
)

// Env is a Provider which reads the LIT_ environment variables the first time each value is needed.
// Values can be overridden with Set, and Reset forgets both overrides and cached values,
// which lets tests change the environment between cases.
type Env struct {
	mu     sync.Mutex
	values map[string]string
	// Lookup defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Set overrides the value for an environment variable name, like EnvWorldCatAPIKey.
func (e *Env) Set(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.values == nil {
		e.values = map[string]string{}
	}
	e.values[name] = value
}

// Reset drops every cached and overridden value.
func (e *Env) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.values = nil
}

// Validate checks the protocol and that every URL parses.
func (e *Env) Validate() error {
	return validate(e)
}

// BaseURI implements Provider.
func (e *Env) BaseURI(service string) string {
	switch service {
	case WorldCat:
		return worldCatBaseURL(e.get(EnvWorldCatBaseURL), e.Protocol())
	case HathiTrust:
		return orDefault(e.get(EnvHathiTrustBaseURL), DefaultHathiTrustBaseURL)
	}
	return ""
}

// Protocol implements Provider.
func (e *Env) Protocol() string { return orDefault(e.get(EnvWorldCatProtocol), DefaultProtocol) }

// APIKey implements Provider.
func (e *Env) APIKey() string { return e.get(EnvWorldCatAPIKey) }

// APISecret implements Provider.
func (e *Env) APISecret() string { return e.get(EnvWorldCatAPISecret) }

// TokenURI implements Provider.
func (e *Env) TokenURI() string { return orDefault(e.get(EnvOCLCTokenURL), DefaultOCLCTokenURL) }

func (e *Env) get(name string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if v, ok := e.values[name]; ok {
		return v
	}
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, _ := lookup(name)
	if e.values == nil {
		e.values = map[string]string{}
	}
	e.values[name] = v
	return v
}
