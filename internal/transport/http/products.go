package http

import (
	"context"
	"net/http"

	"github.com/charlesegbo631-code/watchme/internal/domain"
)

// Catalog serves the product list with NGN prices attached.
type Catalog interface {
	ListWithLivePricing(ctx context.Context) ([]domain.PricedProduct, error)
}

// HandleListProducts returns the catalog priced at the live rate.
func HandleListProducts(catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := catalog.ListWithLivePricing(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"products": products,
		})
	}
}
