// Package remote fetches the transaction collection from an HTTP endpoint
// serving a JSON array.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"txdash/internal/core"
	"txdash/internal/source"
)

// maxBodyBytes bounds how much of the upstream response is decoded.
const maxBodyBytes = 64 << 20

type Client struct {
	url     string
	timeout time.Duration
	http    *http.Client
}

var _ source.Source = (*Client)(nil)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled default client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for url. timeout bounds each Fetch; zero disables it.
func New(url string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		url:     url,
		timeout: timeout,
		http:    newHTTPClientWithPooling(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newHTTPClientWithPooling creates an HTTP client with connection pooling
// and transport-level timeouts. The overall deadline comes from the
// request context.
func newHTTPClientWithPooling() *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		ForceAttemptHTTP2: true,
	}

	return &http.Client{Transport: transport}
}

// Fetch downloads and decodes the whole collection.
func (c *Client) Fetch(ctx context.Context) ([]core.Transaction, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %w", source.ErrUnavailable, c.url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", source.ErrUnavailable, c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%w: get %s: unexpected status %d", source.ErrUnavailable, c.url, resp.StatusCode)
	}

	var txs []core.Transaction
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&txs); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: read %s: %w", source.ErrUnavailable, c.url, ctxErr)
		}
		return nil, fmt.Errorf("%w: decode %s: %w", source.ErrMalformed, c.url, err)
	}

	slog.DebugContext(ctx, "Fetched transactions", "source", "http", "url", c.url, "count", len(txs), "duration_ms", time.Since(start).Milliseconds())
	return txs, nil
}
