package gateway

import (
	"crypto/hmac"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charlesegbo631-code/watchme/internal/domain"
)

// WebhookEvent is the parsed form of a pushed gateway event. IntentID is the
// payment-intent identifier the local order is keyed by.
type WebhookEvent struct {
	Type     string
	IntentID string
}

type webhookBody struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

// ParseWebhookEvent decodes a raw webhook payload. Signature verification is
// separate (VerifyWebhookSignature) so an unverified parse is an explicit,
// visible choice at the call site.
func ParseWebhookEvent(payload []byte) (WebhookEvent, error) {
	var body webhookBody
	if err := json.Unmarshal(payload, &body); err != nil {
		return WebhookEvent{}, fmt.Errorf("%w: decode webhook payload: %v", domain.ErrValidation, err)
	}
	if body.Type == "" {
		return WebhookEvent{}, fmt.Errorf("%w: webhook payload missing event type", domain.ErrValidation)
	}
	return WebhookEvent{Type: body.Type, IntentID: body.Data.Object.ID}, nil
}

// VerifyWebhookSignature checks a Stripe-style signature header of the form
// "t=<timestamp>,v1=<hex hmac>" where the MAC covers "<timestamp>.<payload>"
// under the shared webhook secret.
func VerifyWebhookSignature(payload []byte, header, secret string) error {
	var timestamp, signature string
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			signature = value
		}
	}
	if timestamp == "" || signature == "" {
		return domain.ErrInvalidSignature
	}

	signed := make([]byte, 0, len(timestamp)+1+len(payload))
	signed = append(signed, timestamp...)
	signed = append(signed, '.')
	signed = append(signed, payload...)

	expected := Sign(signed, secret)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return domain.ErrInvalidSignature
	}
	return nil
}
