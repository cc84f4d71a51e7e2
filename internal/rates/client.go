// Package rates fetches the USD->NGN spot rate from an external provider.
//
// Every call is a fresh round trip: there is deliberately no cache, so every
// caller pays the full latency and observes transient provider failures
// identically. A production hardening pass could add a short-lived cache with
// an explicit staleness bound; this client does not.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charlesegbo631-code/watchme/internal/domain"
)

const defaultBaseURL = "https://v6.exchangerate-api.com/v6"

const requestTimeout = 15 * time.Second

// Client talks to the exchange-rate provider.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type Option func(*Client)

// WithBaseURL overrides the provider endpoint (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type latestResponse struct {
	Result          string             `json:"result"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// USDToNGN fetches the current USD->NGN rate.
func (c *Client) USDToNGN(ctx context.Context) (float64, error) {
	if c.apiKey == "" {
		return 0, fmt.Errorf("%w: exchange rate API key not set", domain.ErrConfiguration)
	}

	url := fmt.Sprintf("%s/%s/latest/USD", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: build rate request: %v", domain.ErrUpstream, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch rate: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: rate provider returned %d", domain.ErrUpstream, resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("%w: decode rate response: %v", domain.ErrUpstream, err)
	}

	ngn, ok := body.ConversionRates["NGN"]
	if !ok || ngn <= 0 {
		return 0, fmt.Errorf("%w: NGN rate missing from provider response", domain.ErrUpstream)
	}
	return ngn, nil
}
