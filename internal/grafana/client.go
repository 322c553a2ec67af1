// Package grafana implements the gateway to a Grafana server's datasource
// API: datasource discovery, Loki datasource resolution, and proxied Loki
// queries.
package grafana

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// maxResponseBytes caps response reads to prevent memory issues on oversized
// query results.
const maxResponseBytes = 1024 * 1024 * 48

// Client is a Grafana API gateway bound to a single base URL and API key.
// Every request carries the key as a bearer token. The Loki datasource id is
// resolved lazily on first use and cached for the lifetime of the client.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu               sync.Mutex
	lokiDatasourceID string
}

// NewClient creates a gateway for the Grafana instance at baseURL. A trailing
// slash on baseURL is stripped.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &bearerAuthTransport{
				apiKey:    apiKey,
				transport: http.DefaultTransport,
			},
		},
	}
}

// bearerAuthTransport is an http.RoundTripper that injects Bearer token
// authentication. It wraps an underlying transport and adds the
// Authorization header to all requests.
type bearerAuthTransport struct {
	apiKey    string
	transport http.RoundTripper
}

// RoundTrip implements http.RoundTripper by adding Bearer token authentication.
func (t *bearerAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	return t.transport.RoundTrip(req)
}

// get executes a GET against path (relative to the base URL) and decodes the
// JSON response into out. Non-2xx responses and transport failures are
// returned as *UpstreamError carrying the upstream status and body, so the
// detail is never lost on the way to the caller.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &UpstreamError{Op: op, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UpstreamError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(bodyBytes))}
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("%s: unmarshalling response: %w", op, err)
	}

	return nil
}
