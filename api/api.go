// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

// Package api provides the HTTP client used to call the WorldCat, OCLC OAuth and HathiTrust APIs.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"
)

const (
	// RequestTimeout is the amount of time the tool will wait for API calls to complete before they are cancelled.
	RequestTimeout = 30 * time.Second

	// DefaultRequestsPerSecond is the default client side rate limit, shared by all upstream services.
	DefaultRequestsPerSecond = 10
)

var (
	// ErrSourceUnavailable is returned when an API can't be reached or answers with a non-2xx status.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSourceDataInvalid is returned when an API response body can't be parsed.
	ErrSourceDataInvalid = errors.New("source data invalid")
)

// Client is a custom HTTP client for the holdings APIs.
type Client struct {
	// Client is the embedded http client.
	*http.Client
	// Limiter, if set, is waited on before every request.
	Limiter *rate.Limiter
	// UserAgent, if set, is sent with every request.
	UserAgent string
}

// NewLimiter returns a limiter allowing rps requests per second, one at a time.
// An rps of zero or less means no limit.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// StatusError is returned when an API responds with a status outside 200-299.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v %v failed [%v]\n%v", e.Method, e.URL, e.StatusCode, e.Body)
}

// Unwrap makes a StatusError match ErrSourceUnavailable.
func (e *StatusError) Unwrap() error {
	return ErrSourceUnavailable
}

// DataError wraps a parse failure with ErrSourceDataInvalid, keeping the body for debugging.
func DataError(what string, err error, body []byte) error {
	return fmt.Errorf("%w: unmarshalling %v failed: %w\n%v", ErrSourceDataInvalid, what, err, string(body))
}

// Get sends a GET request to rawURL with params added to its query string.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values, header http.Header) (body []byte, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return body, err
	}
	if len(params) != 0 {
		q := u.Query()
		for k, vs := range params {
			q[k] = vs
		}
		u.RawQuery = q.Encode()
	}
	r, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return body, err
	}
	copyHeader(r.Header, header)
	return c.Do(ctx, r)
}

// Post sends a POST request to rawURL.
func (c *Client) Post(ctx context.Context, rawURL string, header http.Header, content io.Reader) (body []byte, err error) {
	r, err := http.NewRequest("POST", rawURL, content)
	if err != nil {
		return body, err
	}
	copyHeader(r.Header, header)
	return c.Do(ctx, r)
}

// Do makes HTTP requests with the Client.
// Requests are not retried. Network failures and non-2xx responses are returned as errors which match
// ErrSourceUnavailable. The response bodies are copied or drained, then closed.
// See https://golang.org/pkg/net/http/#Client.Do
func (c *Client) Do(ctx context.Context, r *http.Request) (body []byte, err error) {
	// Create a new context with a timeout so a stalled server can't hang the caller.
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()
	// The query string can carry credentials, keep it out of errors.
	target := redact(r.URL)
	if c.Limiter != nil {
		err = c.Limiter.Wait(ctx)
		if err != nil {
			return body, fmt.Errorf("%w: %v %v: %w", ErrSourceUnavailable, r.Method, target, redactErr(err, target))
		}
	}
	if c.UserAgent != "" {
		r.Header.Set("User-Agent", c.UserAgent)
	}
	// Create a new request with the new context.
	r = r.WithContext(ctx)
	httpClient := c.Client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(r)
	// "An error is returned if caused by client policy (such as CheckRedirect),
	//  or failure to speak HTTP (such as a network connectivity problem).
	//  A non-2xx status code doesn't cause an error."
	if err != nil {
		return body, fmt.Errorf("%w: %v %v: %w", ErrSourceUnavailable, r.Method, target, redactErr(err, target))
	}
	body, err = io.ReadAll(resp.Body)
	if err != nil {
		_ = resp.Body.Close()
		return body, fmt.Errorf("%w: reading %v %v: %w", ErrSourceUnavailable, r.Method, target, redactErr(err, target))
	}
	err = resp.Body.Close()
	if err != nil {
		return body, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return body, &StatusError{Method: r.Method, URL: target, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// AppendPath joins already escaped path segments onto a base URL, like "https://host/api/" + "volumes" + "brief".
func AppendPath(base string, segments ...string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.Join(segments, "/")
}

func copyHeader(dst, src http.Header) {
	for k, vs := range src {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}

func redact(u *url.URL) string {
	clean := *u
	clean.RawQuery = ""
	clean.User = nil
	return clean.String()
}

// redactErr replaces the URL carried by a *url.Error, which includes the query string, with target.
func redactErr(err error, target string) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = target
	}
	return err
}

// StartWorkers starts n workers (NumCPU if n < 1) in a worker pool which run jobs from the jobs channel until it is closed.
func StartWorkers(wg *sync.WaitGroup, jobs <-chan func(), n int) {
	if n < 1 {
		n = runtime.NumCPU()
	}
	for worker := 0; worker < n; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				job()
			}
		}()
	}
}

// StartConcurrent initializes the job channel and wait group for concurrent job processing.
func StartConcurrent(n int) (chan<- func(), *sync.WaitGroup) {
	jobs := make(chan func())
	wg := &sync.WaitGroup{}
	StartWorkers(wg, jobs, n)
	return jobs, wg
}

// StopConcurrent closes the jobs channel and waits for processing to end.
func StopConcurrent(jobs chan<- func(), wg *sync.WaitGroup) {
	close(jobs)
	wg.Wait()
}

// DefaultProgressBar returns a progress bar with common options already set.
func DefaultProgressBar(max int, desc string) *progressbar.ProgressBar {
	bar := progressbar.NewOptions(
		max,
		progressbar.OptionSetWriter(log.Writer()),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetWidth(10),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionFullWidth(),
	)
	bar.Describe(desc)
	_ = bar.RenderBlank()
	return bar
}
