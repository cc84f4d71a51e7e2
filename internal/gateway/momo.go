package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charlesegbo631-code/watchme/internal/domain"
	"github.com/google/uuid"
)

const momoBaseURL = "https://api.momopay.example.com"

const momoTimeout = 20 * time.Second

// MomoClient drives the mobile-money rail. The payment reference is generated
// locally, the full request body is signed with a keyed hash, and the
// provider's synchronous response is returned verbatim without being parsed
// for success or failure.
//
// This rail has no confirmation channel: the provider never calls back and
// there is no verify endpoint, so its orders stay pending until an
// out-of-band process reconciles them.
type MomoClient struct {
	apiKey  string
	secret  string
	baseURL string
	client  *http.Client
}

type MomoOption func(*MomoClient)

// WithMomoBaseURL overrides the API endpoint (used by tests).
func WithMomoBaseURL(u string) MomoOption {
	return func(c *MomoClient) { c.baseURL = u }
}

func NewMomoClient(apiKey, secret string, opts ...MomoOption) *MomoClient {
	c := &MomoClient{
		apiKey:  apiKey,
		secret:  secret,
		baseURL: momoBaseURL,
		client:  &http.Client{Timeout: momoTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type MomoInvoiceInput struct {
	AmountKobo int64
	Customer   domain.Customer
	Items      []domain.CartItem
}

type MomoInvoiceResult struct {
	Reference   string
	RawResponse []byte
}

// CreateInvoice builds and signs an invoice-creation request. The returned
// RawResponse is the provider's body exactly as received.
func (c *MomoClient) CreateInvoice(ctx context.Context, in MomoInvoiceInput) (MomoInvoiceResult, error) {
	if c.apiKey == "" || c.secret == "" {
		return MomoInvoiceResult{}, fmt.Errorf("%w: momo credentials not set", domain.ErrConfiguration)
	}

	reference := "MM-" + uuid.NewString()
	payload, err := json.Marshal(map[string]any{
		"reference": reference,
		"amount":    in.AmountKobo,
		"currency":  "NGN",
		"customer": map[string]string{
			"name":  in.Customer.Name,
			"email": in.Customer.Email,
			"phone": in.Customer.Phone,
		},
		"items": in.Items,
	})
	if err != nil {
		return MomoInvoiceResult{}, fmt.Errorf("%w: marshal invoice payload: %v", domain.ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/invoices", bytes.NewReader(payload))
	if err != nil {
		return MomoInvoiceResult{}, fmt.Errorf("%w: build invoice request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("X-Momo-Signature", Sign(payload, c.secret))

	resp, err := c.client.Do(req)
	if err != nil {
		return MomoInvoiceResult{}, fmt.Errorf("%w: momo request: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return MomoInvoiceResult{}, fmt.Errorf("%w: read momo response: %v", domain.ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return MomoInvoiceResult{}, fmt.Errorf("%w: momo returned %d", domain.ErrUpstream, resp.StatusCode)
	}

	return MomoInvoiceResult{Reference: reference, RawResponse: raw}, nil
}

// Sign computes the hex-encoded HMAC-SHA256 of payload under secret.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
