// Package cartola is a read-only client for the public Cartola FC API. The
// dashboard and the historical loader use it; the batch pipeline never does.
package cartola

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cartolab/cartolab/pkg/metrics"
)

const (
	defaultBaseURL = "https://api.cartola.globo.com"
	defaultTimeout = 10 * time.Second

	maxErrorBody = 4096
)

// Client calls the Cartola FC API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a Client with defaults applied.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MarketStatus fetches the current market state: active round, open/closed
// code, rosters submitted and the closing timestamp.
func (c *Client) MarketStatus(ctx context.Context) (*MarketStatus, error) {
	var status MarketStatus
	if err := c.getJSON(ctx, "/mercado/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// MarketRoster fetches the current season's player roster.
func (c *Client) MarketRoster(ctx context.Context) ([]MarketAthlete, error) {
	var payload struct {
		Atletas []MarketAthlete `json:"atletas"`
	}
	if err := c.getJSON(ctx, "/atletas/mercado", &payload); err != nil {
		return nil, err
	}
	return payload.Atletas, nil
}

// Clubs fetches the club reference table, keyed by club id.
func (c *Client) Clubs(ctx context.Context) (map[string]Club, error) {
	var clubs map[string]Club
	if err := c.getJSON(ctx, "/clubes", &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordCartolaRequest(path, "error")
		return fmt.Errorf("%w: %s: %w", ErrUpstream, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordCartolaRequest(path, "error")
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s: status %d body=%q", ErrUpstream, path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordCartolaRequest(path, "error")
		return fmt.Errorf("%w: decode %s: %w", ErrUpstream, path, err)
	}
	metrics.RecordCartolaRequest(path, "success")
	return nil
}
