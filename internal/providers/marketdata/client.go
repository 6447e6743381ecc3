package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/market-data-watch/internal/domain/market"
	"github.com/preston-bernstein/market-data-watch/internal/providers"
)

var (
	errNullSnapshot = errors.New("snapshot body is null")
	errTrailingData = errors.New("unexpected data after snapshot")
)

// Config controls how the client reaches the market data endpoint.
type Config struct {
	BaseURL    string
	Path       string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client reads snapshots from a single parameterless market data endpoint.
type Client struct {
	url        string
	httpClient httpDoer
}

// NewClient constructs a market data client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		url:        normalizeBaseURL(cfg.BaseURL) + normalizePath(cfg.Path),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// URL returns the endpoint the client polls.
func (c *Client) URL() string {
	return c.url
}

// FetchSnapshot issues one GET and decodes the body as a list of instruments.
// Non-2xx statuses, malformed bodies and bodies failing validation are all errors.
func (c *Client) FetchSnapshot(ctx context.Context) ([]market.Instrument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", providerName, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", providerName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var payload *[]market.Instrument
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&payload); err != nil {
		return nil, &providers.DecodeError{Provider: providerName, Err: err}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &providers.DecodeError{Provider: providerName, Err: errTrailingData}
	}
	if payload == nil {
		return nil, &providers.DecodeError{Provider: providerName, Err: errNullSnapshot}
	}
	if err := market.Validate(*payload); err != nil {
		return nil, &providers.DecodeError{Provider: providerName, Err: err}
	}
	return *payload, nil
}
