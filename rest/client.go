// Package rest is the concrete HTTP backend behind every resource: request
// construction, authentication, parameter encoding, response decoding and
// API error mapping. It supplies the fetch primitive the pagination engine
// drives; retry and backoff policy, when wanted, belong to wrappers around
// this layer, never to the query or pagination core.
package rest

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.rocketlane.com/api"

// Environment variables honored by NewClientFromEnv.
const (
	EnvAPIKey  = "ROCKETLANE_API_KEY"
	EnvBaseURL = "ROCKETLANE_BASE_URL"
)

// Client performs authenticated HTTP calls against the remote API. It is
// safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a client. An API key is required; everything else has
// defaults.
func NewClient(opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.apiKey == "" {
		return nil, fmt.Errorf("rest: API key is required: use WithAPIKey or NewClientFromEnv")
	}
	return &Client{
		baseURL: cfg.baseURL,
		apiKey:  cfg.apiKey,
		http:    &http.Client{Timeout: cfg.timeout},
		logger:  cfg.logger,
	}, nil
}

// NewClientFromEnv creates a client configured from the environment,
// loading a .env file first when one is present. Explicit options override
// environment values.
func NewClientFromEnv(opts ...Option) (*Client, error) {
	// Missing .env is fine; the variables may be set directly.
	_ = godotenv.Load()

	base := []Option{}
	if key := os.Getenv(EnvAPIKey); key != "" {
		base = append(base, WithAPIKey(key))
	}
	if url := os.Getenv(EnvBaseURL); url != "" {
		base = append(base, WithBaseURL(url))
	}
	return NewClient(append(base, opts...)...)
}

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, nil, out)
}

// Post performs a POST request with a JSON body and decodes the response.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, in, out)
}

// Put performs a PUT request with a JSON body and decodes the response.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, in, out)
}

// Delete performs a DELETE request, discarding any response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// List performs a GET request with the flat parameter map encoded into the
// query string, decoding the page envelope into out.
func (c *Client) List(ctx context.Context, path string, params map[string]any, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}
