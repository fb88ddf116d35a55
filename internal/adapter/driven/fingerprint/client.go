// Package fingerprint implements the IdentificationClient port against the
// Fingerprint Server API.
package fingerprint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ericfisherdev/devicegate/internal/domain/model"
	"github.com/ericfisherdev/devicegate/internal/domain/port/driven"
)

// The service is pinned to the EU region of the Fingerprint Server API.
const euBaseURL = "https://eu.api.fpjs.io"

// Compile-time interface satisfaction check.
var _ driven.IdentificationClient = (*Client)(nil)

// Client implements the driven.IdentificationClient port over the Fingerprint
// Server API events endpoint. One attempt per call, no retries; the provider
// is expected to answer within the inbound request's lifetime.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a Client for the EU region authenticated with the given
// secret API key.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    euBaseURL,
		apiKey:     apiKey,
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base
// URL. This constructor is intended for testing, allowing injection of an
// httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, apiKey string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    u.String(),
		apiKey:     apiKey,
	}, nil
}

// GetEvent resolves a request token to an interpreted identification event.
// Provider-side failures map to the port sentinels: token problems to
// ErrInvalidRequestToken, unknown or expired tokens to ErrEventNotFound, and
// everything else (transport errors included) to a wrapped opaque error.
func (c *Client) GetEvent(ctx context.Context, requestID string) (*model.IdentificationEvent, error) {
	endpoint := c.baseURL + "/events/" + url.PathEscape(requestID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build event request: %w", err)
	}
	req.Header.Set("Auth-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch event %s: %w", requestID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyProviderError(resp)
	}

	var payload eventPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode event %s: %w", requestID, err)
	}

	return interpret(&payload)
}
