// Package configapi is a minimal client for the control-plane configuration
// API. The only call this library needs is the organization-scoped secret
// persistence config lookup.
package configapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hookwire/hookwire/secrets"
)

const maxErrorBody = 1024 // cap on error response body included in messages

// Scope identifies the scope of a persistence config lookup.
type Scope string

// ScopeOrganization scopes the lookup to an organization.
const ScopeOrganization Scope = "organization"

// Client calls the configuration API.
type Client struct {
	baseURL   string
	authToken string
	client    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithAuthToken sets a bearer token attached to every API call.
func WithAuthToken(token string) Option {
	return func(c *Client) { c.authToken = token }
}

// New creates a configuration API client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

type persistenceConfigRequest struct {
	ScopeType Scope  `json:"scope_type"`
	ScopeID   string `json:"scope_id"`
}

// GetSecretPersistenceConfig fetches the runtime secret persistence
// descriptor for the given scope.
func (c *Client) GetSecretPersistenceConfig(ctx context.Context, scope Scope, scopeID string) (*secrets.PersistenceConfig, error) {
	body, err := json.Marshal(persistenceConfigRequest{ScopeType: scope, ScopeID: scopeID})
	if err != nil {
		return nil, fmt.Errorf("configapi: encode request: %w", err)
	}

	url := c.baseURL + "/api/v1/secret_persistence_config/get"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("configapi: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("configapi: get secret persistence config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return nil, fmt.Errorf("configapi: get secret persistence config: status %d: %s", resp.StatusCode, snippet)
	}

	var cfg secrets.PersistenceConfig
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("configapi: decode response: %w", err)
	}

	return &cfg, nil
}
