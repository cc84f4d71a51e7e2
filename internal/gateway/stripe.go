package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charlesegbo631-code/watchme/internal/domain"
)

const stripeBaseURL = "https://api.stripe.com"

const stripeTimeout = 20 * time.Second

// StripeClient drives the marketplace-split rail. A payment intent carries an
// application fee equal to the merchant profit and a transfer destination
// pointing at the supplier's connected account; the caller completes payment
// client-side with the returned secret and places the order afterwards.
type StripeClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

type StripeOption func(*StripeClient)

// WithStripeBaseURL overrides the API endpoint (used by tests).
func WithStripeBaseURL(u string) StripeOption {
	return func(c *StripeClient) { c.baseURL = u }
}

func NewStripeClient(secretKey string, opts ...StripeOption) *StripeClient {
	c := &StripeClient{
		secretKey: secretKey,
		baseURL:   stripeBaseURL,
		client:    &http.Client{Timeout: stripeTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type IntentInput struct {
	AmountCents         int64
	ApplicationFeeCents int64
	SupplierAccountID   string
	CustomerEmail       string
}

type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
}

type stripeErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// CreatePaymentIntent opens an intent with the profit split attached.
func (c *StripeClient) CreatePaymentIntent(ctx context.Context, in IntentInput) (Intent, error) {
	if c.secretKey == "" {
		return Intent{}, fmt.Errorf("%w: stripe secret key not set", domain.ErrConfiguration)
	}
	if in.SupplierAccountID == "" {
		return Intent{}, fmt.Errorf("%w: supplier account id not set", domain.ErrConfiguration)
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(in.AmountCents, 10))
	form.Set("currency", "usd")
	form.Set("application_fee_amount", strconv.FormatInt(in.ApplicationFeeCents, 10))
	form.Set("transfer_data[destination]", in.SupplierAccountID)
	form.Set("automatic_payment_methods[enabled]", "true")
	if in.CustomerEmail != "" {
		form.Set("receipt_email", in.CustomerEmail)
	}

	return c.do(ctx, http.MethodPost, "/v1/payment_intents", strings.NewReader(form.Encode()))
}

// GetPaymentIntent re-retrieves an intent so its status can be checked before
// an order is placed against it.
func (c *StripeClient) GetPaymentIntent(ctx context.Context, id string) (Intent, error) {
	if c.secretKey == "" {
		return Intent{}, fmt.Errorf("%w: stripe secret key not set", domain.ErrConfiguration)
	}
	return c.do(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(id), nil)
}

func (c *StripeClient) do(ctx context.Context, method, path string, body io.Reader) (Intent, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: build stripe request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: stripe request: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: read stripe response: %v", domain.ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb stripeErrorBody
		_ = json.Unmarshal(raw, &eb)
		return Intent{}, fmt.Errorf("%w: stripe returned %d: %s", domain.ErrUpstream, resp.StatusCode, eb.Error.Message)
	}

	var intent Intent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return Intent{}, fmt.Errorf("%w: decode stripe response: %v", domain.ErrUpstream, err)
	}
	if intent.ID == "" {
		return Intent{}, fmt.Errorf("%w: stripe response missing intent id", domain.ErrUpstream)
	}
	return intent, nil
}
