// Package dune fetches query results from the Dune Analytics API.
package dune

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/huangsam/launchpad/internal/contract"
	"github.com/huangsam/launchpad/schema"
)

// Client retrieves the latest results of saved Dune queries.
type Client struct {
	cfg       contract.UpstreamConfig
	transport http.RoundTripper // nil means a fresh transport per call
	observe   func(status int, seconds float64)
}

var _ contract.RowFetcher = &Client{} // Compile-time check

// Option customizes a Client.
type Option func(*Client)

// WithTransport overrides the HTTP transport, mainly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// WithObserver registers a callback receiving the status code and latency of each call.
// A status of 0 means the request never got a response.
func WithObserver(fn func(status int, seconds float64)) Option {
	return func(c *Client) {
		c.observe = fn
	}
}

// NewClient creates a client for the given upstream configuration.
func NewClient(cfg contract.UpstreamConfig, opts ...Option) *Client {
	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// resultEnvelope is the subset of the results payload we read.
type resultEnvelope struct {
	Result *struct {
		Rows []schema.Row `json:"rows"`
	} `json:"result"`
}

// ResultsURL builds the results endpoint for a query.
func (c *Client) ResultsURL(queryID int, limit int) string {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	return fmt.Sprintf("%s/query/%d/results?%s", c.cfg.BaseURL, queryID, params.Encode())
}

// FetchRows performs a single GET of the latest query result and returns its rows.
// Missing result or rows fields yield an empty set. Non-2xx statuses return *HTTPStatusError.
func (c *Client) FetchRows(ctx context.Context, queryID int, limit int) (schema.ResultSet, error) {
	target := c.ResultsURL(queryID, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(c.cfg.APIKeyHeader, c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	client := c.newHTTPClient()
	defer client.CloseIdleConnections()

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		c.record(0, start)
		return nil, fmt.Errorf("request to %s failed: %w", redact(target), err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.record(resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body so the error can carry upstream's reason.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        redact(target),
			Body:       string(body),
		}
	}

	var envelope resultEnvelope
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&envelope); err != nil {
		return nil, &DecodeError{URL: redact(target), Err: err}
	}
	if envelope.Result == nil || envelope.Result.Rows == nil {
		return schema.ResultSet{}, nil
	}
	return schema.ResultSet(envelope.Result.Rows), nil
}

// newHTTPClient returns a client scoped to a single call.
func (c *Client) newHTTPClient() *http.Client {
	rt := c.transport
	if rt == nil {
		rt = &http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			DisableKeepAlives: true,
		}
	}
	return &http.Client{
		Transport: rt,
		Timeout:   c.cfg.Timeout,
	}
}

func (c *Client) record(status int, start time.Time) {
	if c.observe != nil {
		c.observe(status, time.Since(start).Seconds())
	}
}

// redact strips any query string credentials a caller may have put in the base URL.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
