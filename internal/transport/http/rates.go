package http

import (
	"context"
	"net/http"
)

// RateSource provides the USD->NGN spot rate.
type RateSource interface {
	USDToNGN(ctx context.Context) (float64, error)
}

// HandleRates exposes the live rate table. USD is the base currency, so its
// entry is always 1.
func HandleRates(src RateSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rate, err := src.USDToNGN(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"rates": map[string]float64{
				"USD": 1,
				"NGN": rate,
			},
		})
	}
}
