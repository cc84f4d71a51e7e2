package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charlesegbo631-code/watchme/internal/app"
	"github.com/charlesegbo631-code/watchme/internal/domain"
)

// PaystackOrderCreator is the minimal interface for the redirect-checkout rail.
type PaystackOrderCreator interface {
	CreatePaystackOrder(ctx context.Context, in app.CheckoutInput) (app.PaystackOrderResult, error)
}

// MomoOrderCreator is the minimal interface for the mobile-money rail.
type MomoOrderCreator interface {
	CreateMomoOrder(ctx context.Context, in app.CheckoutInput) (app.MomoOrderResult, error)
}

// StripeIntentCreator is the minimal interface for opening a payment intent.
type StripeIntentCreator interface {
	CreateStripeIntent(ctx context.Context, in app.CheckoutInput) (app.StripeIntentResult, error)
}

// StripeOrderPlacer is the minimal interface for placing an order against a
// completed intent.
type StripeOrderPlacer interface {
	PlaceStripeOrder(ctx context.Context, in app.PlaceStripeOrderInput) (domain.Order, error)
}

type createOrderRequest struct {
	CartItems []domain.CartItem `json:"cartItems"`
	Customer  domain.Customer   `json:"customer"`
	Currency  string            `json:"currency"`
}

func (r createOrderRequest) validate() error {
	if len(r.CartItems) == 0 {
		return domain.ErrEmptyCart
	}
	for i, item := range r.CartItems {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: cartItems[%d].quantity must be positive", domain.ErrValidation, i)
		}
		if item.Price < 0 || item.SupplierCost < 0 {
			return fmt.Errorf("%w: cartItems[%d] has a negative amount", domain.ErrValidation, i)
		}
	}
	return nil
}

func decodeCreateOrder(w http.ResponseWriter, r *http.Request) (createOrderRequest, bool) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return createOrderRequest{}, false
	}
	if err := req.validate(); err != nil {
		writeServiceError(w, err)
		return createOrderRequest{}, false
	}
	return req, true
}

// HandleCreatePaystackOrder initiates a hosted-checkout payment and returns
// the redirect URL for the buyer.
func HandleCreatePaystackOrder(svc PaystackOrderCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeCreateOrder(w, r)
		if !ok {
			return
		}

		res, err := svc.CreatePaystackOrder(r.Context(), app.CheckoutInput{
			Items:    req.CartItems,
			Customer: req.Customer,
			Currency: req.Currency,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":          true,
			"authorizationUrl": res.AuthorizationURL,
			"reference":        res.Reference,
			"totalNgn":         res.TotalNGN,
			"totalKobo":        res.TotalKobo,
		})
	}
}

// HandleCreateMomoOrder initiates a mobile-money invoice.
func HandleCreateMomoOrder(svc MomoOrderCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeCreateOrder(w, r)
		if !ok {
			return
		}

		res, err := svc.CreateMomoOrder(r.Context(), app.CheckoutInput{
			Items:    req.CartItems,
			Customer: req.Customer,
			Currency: req.Currency,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"reference": res.Reference,
			"totalNgn":  res.TotalNGN,
			"totalKobo": res.TotalKobo,
		})
	}
}

// HandleCreateStripeIntent opens a payment intent and hands the client secret
// back for client-side completion.
func HandleCreateStripeIntent(svc StripeIntentCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeCreateOrder(w, r)
		if !ok {
			return
		}

		res, err := svc.CreateStripeIntent(r.Context(), app.CheckoutInput{
			Items:    req.CartItems,
			Customer: req.Customer,
			Currency: req.Currency,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"clientSecret": res.ClientSecret,
			"reference":    res.Reference,
			"totalUsd":     res.TotalUSD,
			"amount":       res.AmountCents,
		})
	}
}

type placeStripeOrderRequest struct {
	PaymentIntentID string            `json:"paymentIntentId"`
	CartItems       []domain.CartItem `json:"cartItems"`
	Customer        domain.Customer   `json:"customer"`
}

// HandlePlaceStripeOrder records the order for a completed intent.
func HandlePlaceStripeOrder(svc StripeOrderPlacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req placeStripeOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		order, err := svc.PlaceStripeOrder(r.Context(), app.PlaceStripeOrderInput{
			PaymentIntentID: req.PaymentIntentID,
			Items:           req.CartItems,
			Customer:        req.Customer,
		})
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

type orderResponse struct {
	Reference     string          `json:"reference"`
	LocalOrderID  string          `json:"localOrderId"`
	Status        string          `json:"status"`
	Customer      domain.Customer `json:"customer"`
	Items         json.RawMessage `json:"items"`
	TotalMinorUSD int64           `json:"totalMinorUsd"`
	TotalMinorNGN int64           `json:"totalMinorNgn"`
	CreatedAt     time.Time       `json:"createdAt"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
}

func orderPayload(o domain.Order) orderResponse {
	items := json.RawMessage(o.ItemsSnapshot)
	if len(items) == 0 {
		items = json.RawMessage("[]")
	}
	return orderResponse{
		Reference:     o.PaymentReference,
		LocalOrderID:  o.LocalOrderID,
		Status:        string(o.Status),
		Customer:      o.Customer,
		Items:         items,
		TotalMinorUSD: o.TotalMinorUSD,
		TotalMinorNGN: o.TotalMinorNGN,
		CreatedAt:     o.CreatedAt,
		ProcessedAt:   o.ProcessedAt,
	}
}
