package sportsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the balldontlie v1 API
const DefaultBaseURL = "https://api.balldontlie.io/v1"

// DefaultTimeout bounds every outbound call
const DefaultTimeout = 8 * time.Second

// Config holds configuration for the sports API client
type Config struct {
	BaseURL string
	// APIKey is sent as a bearer token; never logged
	APIKey  string
	Timeout time.Duration
}

// DefaultConfig returns the production base URL and timeout without a key
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// Client issues authenticated GET requests to the sports API.
// It never retries and never returns an error: failures are logged and
// reported as an absent (nil) result.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new sports API client
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Get fetches path with the given query and returns the raw JSON body,
// or nil if the request failed for any reason
func (c *Client) Get(ctx context.Context, path string, query url.Values) json.RawMessage {
	body, err := c.get(ctx, path, query)
	if err != nil {
		c.logger.Warn("sports API request failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return body
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if !json.Valid(respBody) {
		return nil, errors.New("malformed response body")
	}

	return json.RawMessage(respBody), nil
}
