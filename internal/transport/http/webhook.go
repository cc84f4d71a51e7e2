package http

import (
	"context"
	"io"
	"net/http"
)

const signatureHeader = "Stripe-Signature"

const maxWebhookBody = 1 << 20

// WebhookProcessor consumes a raw gateway event.
type WebhookProcessor interface {
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}

// HandleWebhook receives pushed gateway events. The body is read raw because
// the signature covers the exact bytes sent. Anything that passes the
// signature check is acknowledged with {"received": true} — gateways retry
// unacknowledged deliveries indefinitely — while signature mismatches and
// unparseable payloads get a descriptive 400.
func HandleWebhook(svc WebhookProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "unreadable webhook body")
			return
		}

		// Signature mismatches and unparseable payloads map to 400; a ledger
		// failure maps to 500 and stays unacknowledged so the gateway
		// redelivers.
		if err := svc.HandleWebhook(r.Context(), payload, r.Header.Get(signatureHeader)); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"received": true})
	}
}
