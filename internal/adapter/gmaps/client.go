// Package gmaps provides the HTTP binding to the Google Maps REST API.
package gmaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mapforge/mapforge/internal/domain"
)

// statusOK is the provider status value signalling a successful call.
const statusOK = "OK"

// Cache is the read-through cache consulted before hitting the provider.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Client talks to the mapping provider's REST API. The API key is bound at
// construction and appended as a query parameter to every call.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      Cache
	cacheTTL   time.Duration
}

// NewClient creates a provider client with the given base URL and API key.
// Outgoing requests are traced via otelhttp.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// SetCache attaches a read-through response cache. Only provider-OK responses
// are cached.
func (c *Client) SetCache(cache Cache, ttl time.Duration) {
	c.cache = cache
	c.cacheTTL = ttl
}

// envelope is the subset of every provider response used for error mapping.
type envelope struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// Get performs a GET against the given provider endpoint (e.g. "/geocode/json")
// and returns the raw JSON document. A non-2xx HTTP status or a provider
// status other than "OK" is reported as a domain upstream error carrying the
// provider's status string.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	// Cache key excludes the API key; it is constant per process.
	cacheKey := endpoint + "?" + params.Encode()
	if c.cache != nil {
		if data, ok := c.cache.Get(ctx, cacheKey); ok {
			return data, nil
		}
	}

	query := url.Values{}
	for k, vs := range params {
		query[k] = vs
	}
	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.Upstreamf("provider request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.Upstreamf("read provider response: %v", err)
	}

	var env envelope
	_ = json.Unmarshal(data, &env)

	if resp.StatusCode != http.StatusOK {
		return nil, domain.Upstreamf("provider returned HTTP %d, status %s", resp.StatusCode, env.Status)
	}
	if env.Status != statusOK {
		if env.ErrorMessage != "" {
			return nil, domain.Upstreamf("provider status %s: %s", env.Status, env.ErrorMessage)
		}
		return nil, domain.Upstreamf("provider status %s", env.Status)
	}

	if c.cache != nil {
		c.cache.Set(ctx, cacheKey, data, c.cacheTTL)
	}
	return data, nil
}
