package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charlesegbo631-code/watchme/internal/domain"
)

const paystackBaseURL = "https://api.paystack.co"

const paystackTimeout = 20 * time.Second

// PaystackClient drives the hosted-checkout (redirect) rail. Initialize
// returns an authorization URL the buyer is sent to; the gateway-issued
// reference becomes the ledger's payment reference before the buyer has paid.
type PaystackClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

type PaystackOption func(*PaystackClient)

// WithPaystackBaseURL overrides the API endpoint (used by tests).
func WithPaystackBaseURL(u string) PaystackOption {
	return func(c *PaystackClient) { c.baseURL = u }
}

func NewPaystackClient(secretKey string, opts ...PaystackOption) *PaystackClient {
	c := &PaystackClient{
		secretKey: secretKey,
		baseURL:   paystackBaseURL,
		client:    &http.Client{Timeout: paystackTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InitializeInput carries the charge total in kobo plus a metadata blob of
// the cart and customer, snapshotted on the provider side.
type InitializeInput struct {
	Email      string
	AmountKobo int64
	Metadata   any
}

type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type paystackInitData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type paystackVerifyData struct {
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// InitializeTransaction submits an initialize request and returns the
// authorization URL and gateway reference.
func (c *PaystackClient) InitializeTransaction(ctx context.Context, in InitializeInput) (InitializeResult, error) {
	if c.secretKey == "" {
		return InitializeResult{}, fmt.Errorf("%w: paystack secret key not set", domain.ErrConfiguration)
	}

	payload, err := json.Marshal(map[string]any{
		"email":    in.Email,
		"amount":   in.AmountKobo,
		"currency": "NGN",
		"metadata": in.Metadata,
	})
	if err != nil {
		return InitializeResult{}, fmt.Errorf("%w: marshal initialize payload: %v", domain.ErrUpstream, err)
	}

	data, err := c.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(payload))
	if err != nil {
		return InitializeResult{}, err
	}

	var init paystackInitData
	if err := json.Unmarshal(data, &init); err != nil {
		return InitializeResult{}, fmt.Errorf("%w: decode initialize response: %v", domain.ErrUpstream, err)
	}
	if init.Reference == "" || init.AuthorizationURL == "" {
		return InitializeResult{}, fmt.Errorf("%w: initialize response missing reference", domain.ErrUpstream)
	}
	return InitializeResult{
		AuthorizationURL: init.AuthorizationURL,
		AccessCode:       init.AccessCode,
		Reference:        init.Reference,
	}, nil
}

type PaystackVerifyResult struct {
	Status     VerifyStatus
	AmountKobo int64
}

// VerifyTransaction performs the synchronous poll-and-verify call for a
// reference issued by InitializeTransaction.
func (c *PaystackClient) VerifyTransaction(ctx context.Context, reference string) (PaystackVerifyResult, error) {
	if c.secretKey == "" {
		return PaystackVerifyResult{}, fmt.Errorf("%w: paystack secret key not set", domain.ErrConfiguration)
	}

	data, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return PaystackVerifyResult{}, err
	}

	var v paystackVerifyData
	if err := json.Unmarshal(data, &v); err != nil {
		return PaystackVerifyResult{}, fmt.Errorf("%w: decode verify response: %v", domain.ErrUpstream, err)
	}

	result := PaystackVerifyResult{AmountKobo: v.Amount}
	switch v.Status {
	case "success":
		result.Status = VerifySuccess
	case "failed", "abandoned", "reversed":
		result.Status = VerifyFailed
	default:
		result.Status = VerifyPending
	}
	return result, nil
}

func (c *PaystackClient) do(ctx context.Context, method, path string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build paystack request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: paystack request: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read paystack response: %v", domain.ErrUpstream, err)
	}

	var env paystackEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: decode paystack envelope: %v", domain.ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Status {
		return nil, fmt.Errorf("%w: paystack returned %d: %s", domain.ErrUpstream, resp.StatusCode, env.Message)
	}
	return env.Data, nil
}
