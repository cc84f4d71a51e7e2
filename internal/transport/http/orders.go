package http

import (
	"context"
	"net/http"

	"github.com/charlesegbo631-code/watchme/internal/domain"
)

// OrderLister lists recorded orders, newest first.
type OrderLister interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

// HandleListOrders returns every recorded order, newest first.
func HandleListOrders(ledger OrderLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := ledger.ListOrders(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		payload := make([]orderResponse, 0, len(orders))
		for _, o := range orders {
			payload = append(payload, orderPayload(o))
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"orders":  payload,
		})
	}
}
