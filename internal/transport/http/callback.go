package http

import (
	"context"
	"net/http"

	"github.com/charlesegbo631-code/watchme/internal/domain"
)

// PaystackVerifier is the poll-and-verify side of reconciliation.
type PaystackVerifier interface {
	VerifyPaystack(ctx context.Context, reference string) (domain.Order, error)
}

// HandlePaystackCallback verifies a reference the buyer was redirected back
// with. Success returns the settled order; an unconfirmed payment is the
// caller's 400, and the order stays pending.
func HandlePaystackCallback(svc PaystackVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reference := r.URL.Query().Get("reference")
		if reference == "" {
			writeError(w, http.StatusBadRequest, codeValidationError, "reference query parameter is required")
			return
		}

		order, err := svc.VerifyPaystack(r.Context(), reference)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"order":   orderPayload(order),
		})
	}
}
