// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

// Package auth gets and refreshes the OAuth bearer tokens required by the WorldCat Search API v2.
package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cu-library/holdingstoolkit/config"
)

// DefaultScope is the OAuth scope needed to read institution holdings.
const DefaultScope = "wcapi:view_institution_holdings"

// ErrAuthenticationFailed is returned when a token can't be obtained.
var ErrAuthenticationFailed = errors.New("authentication failed")

// expiresAtLayouts are the formats OCLC has used for the expires_at field.
var expiresAtLayouts = []string{
	"2006-01-02 15:04:05Z07:00",
	time.RFC3339,
}

// Poster sends POST requests. *api.Client is a Poster.
type Poster interface {
	Post(ctx context.Context, rawURL string, header http.Header, content io.Reader) ([]byte, error)
}

// Token is an access token from the OCLC token endpoint.
// https://www.oclc.org/developer/api/keys/oauth/client-credentials-grant.en.html
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	RawExpires  string    `json:"expires_at"`
	ExpiresAt   time.Time `json:"-"`
}

// Authenticator caches one client credentials token and fetches a new one when it expires.
// It is safe for concurrent use; callers block while a token is being fetched.
type Authenticator struct {
	// Config supplies the token URL, API key and secret, read each time a token is fetched.
	Config config.Provider
	// Client sends the token request.
	Client Poster
	// Scope defaults to DefaultScope.
	Scope string
	// Now defaults to time.Now.
	Now func() time.Time

	mu    sync.Mutex
	token *Token
}

// New returns an Authenticator with no cached token.
func New(cfg config.Provider, client Poster) *Authenticator {
	return &Authenticator{Config: cfg, Client: client}
}

// AccessToken returns a valid access token, fetching a new one if none is cached
// or the cached one expires at or before the current time.
// Failures are not retried.
func (a *Authenticator) AccessToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.token != nil && a.now().Before(a.token.ExpiresAt) {
		return a.token.AccessToken, nil
	}
	token, err := a.fetch(ctx)
	if err != nil {
		return "", err
	}
	a.token = token
	return token.AccessToken, nil
}

// Token returns a copy of the cached token, if there is one.
func (a *Authenticator) Token() (Token, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.token == nil {
		return Token{}, false
	}
	return *a.token, true
}

// SetToken replaces the cached token.
func (a *Authenticator) SetToken(t Token) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = &t
}

// Reset drops the cached token.
func (a *Authenticator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = nil
}

func (a *Authenticator) fetch(ctx context.Context) (*Token, error) {
	key, secret := a.Config.APIKey(), a.Config.APISecret()
	if key == "" || secret == "" {
		return nil, fmt.Errorf("%w: a WorldCat API key and secret are required", ErrAuthenticationFailed)
	}
	tokenURL, err := a.tokenURL()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
	header := http.Header{}
	header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(key+":"+secret)))
	header.Set("Accept", "application/json")
	body, err := a.Client.Post(ctx, tokenURL, header, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: requesting token: %w", ErrAuthenticationFailed, err)
	}
	token := &Token{}
	err = json.Unmarshal(body, token)
	if err != nil {
		return nil, fmt.Errorf("%w: unmarshalling token JSON failed: %w", ErrAuthenticationFailed, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: no access_token in token response", ErrAuthenticationFailed)
	}
	token.ExpiresAt = a.expiry(token)
	return token, nil
}

func (a *Authenticator) tokenURL() (string, error) {
	u, err := url.Parse(a.Config.TokenURI())
	if err != nil {
		return "", fmt.Errorf("parsing token URL: %w", err)
	}
	scope := a.Scope
	if scope == "" {
		scope = DefaultScope
	}
	q := u.Query()
	q.Set("grant_type", "client_credentials")
	q.Set("scope", scope)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// expiry prefers the absolute expires_at, then expires_in. A token with neither is treated as already expired.
func (a *Authenticator) expiry(t *Token) time.Time {
	for _, layout := range expiresAtLayouts {
		if at, err := time.Parse(layout, t.RawExpires); err == nil {
			return at
		}
	}
	if t.ExpiresIn > 0 {
		return a.now().Add(time.Duration(t.ExpiresIn) * time.Second)
	}
	return a.now()
}

func (a *Authenticator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
