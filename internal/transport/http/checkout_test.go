package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charlesegbo631-code/watchme/internal/app"
	"github.com/charlesegbo631-code/watchme/internal/domain"
)

const validCartBody = `{
	"cartItems": [{"id": "w1", "title": "Field Watch", "price": 20.00, "supplierCost": 12.00, "quantity": 1}],
	"customer": {"name": "Ada", "email": "ada@example.com", "state": "Lagos"},
	"currency": "NGN"
}`

func TestHandleCreatePaystackOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		result         app.PaystackOrderResult
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name: "success",
			body: validCartBody,
			result: app.PaystackOrderResult{
				AuthorizationURL: "https://checkout.paystack.com/abc123",
				Reference:        "ps_ref_1",
				TotalNGN:         4000,
				TotalKobo:        400000,
			},
			expectedStatus: http.StatusOK,
			expectedSubstr: `"authorizationUrl":"https://checkout.paystack.com/abc123"`,
		},
		{
			name:           "malformed body",
			body:           `{"cartItems": [`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: `"code":"invalid_request_body"`,
		},
		{
			name:           "empty cart",
			body:           `{"cartItems": [], "customer": {"state": "Lagos"}, "currency": "NGN"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: `"code":"validation_error"`,
		},
		{
			name: "zero quantity",
			body: `{
				"cartItems": [{"id": "w1", "price": 20.00, "supplierCost": 12.00, "quantity": 0}],
				"customer": {"state": "Lagos"},
				"currency": "NGN"
			}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: `"code":"validation_error"`,
		},
		{
			name:           "gateway failure",
			body:           validCartBody,
			serviceErr:     domain.ErrUpstream,
			expectedStatus: http.StatusInternalServerError,
			expectedSubstr: `"code":"upstream_error"`,
		},
		{
			name:           "missing rate key",
			body:           validCartBody,
			serviceErr:     domain.ErrConfiguration,
			expectedStatus: http.StatusInternalServerError,
			expectedSubstr: `"code":"configuration_error"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubCheckout{paystackResult: tt.result, err: tt.serviceErr}

			req := httptest.NewRequest(http.MethodPost, "/api/create-paystack-order", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			HandleCreatePaystackOrder(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleCreateMomoOrder(t *testing.T) {
	t.Parallel()

	svc := &stubCheckout{momoResult: app.MomoOrderResult{
		Reference: "MM-1",
		TotalNGN:  4000,
		TotalKobo: 400000,
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/create-momo-order", strings.NewReader(validCartBody))
	rec := httptest.NewRecorder()

	HandleCreateMomoOrder(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`"reference":"MM-1"`, `"totalKobo":400000`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected response to contain %q, got %q", want, body)
		}
	}
}

func TestHandleCreateStripeIntent(t *testing.T) {
	t.Parallel()

	svc := &stubCheckout{intentResult: app.StripeIntentResult{
		ClientSecret: "pi_1_secret_x",
		Reference:    "pi_1",
		TotalUSD:     28.50,
		AmountCents:  2850,
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/create-stripe-intent", strings.NewReader(validCartBody))
	rec := httptest.NewRecorder()

	HandleCreateStripeIntent(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`"clientSecret":"pi_1_secret_x"`, `"amount":2850`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected response to contain %q, got %q", want, body)
		}
	}
}

func TestHandlePlaceStripeOrder(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	order := domain.Order{
		PaymentReference: "pi_1",
		LocalOrderID:     "WM-1748772000000",
		Status:           domain.OrderStatusPaid,
		ItemsSnapshot:    []byte(`[{"id":"w1"}]`),
		TotalMinorUSD:    2850,
		CreatedAt:        now,
		ProcessedAt:      &now,
	}

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "placed",
			body:           `{"paymentIntentId": "pi_1", "cartItems": [{"id": "w1", "price": 20, "supplierCost": 12, "quantity": 1}], "customer": {"email": "ada@example.com"}}`,
			expectedStatus: http.StatusOK,
			expectedSubstr: `"status":"paid"`,
		},
		{
			name:           "malformed body",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: `"code":"invalid_request_body"`,
		},
		{
			name:           "intent not succeeded",
			body:           `{"paymentIntentId": "pi_1", "cartItems": [{"quantity": 1}]}`,
			serviceErr:     domain.ErrPaymentNotConfirmed,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: `"code":"payment_not_confirmed"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubCheckout{placedOrder: order, err: tt.serviceErr}

			req := httptest.NewRequest(http.MethodPost, "/api/place-stripe-order", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			HandlePlaceStripeOrder(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

type stubCheckout struct {
	paystackResult app.PaystackOrderResult
	momoResult     app.MomoOrderResult
	intentResult   app.StripeIntentResult
	placedOrder    domain.Order
	err            error
}

func (s *stubCheckout) CreatePaystackOrder(_ context.Context, _ app.CheckoutInput) (app.PaystackOrderResult, error) {
	return s.paystackResult, s.err
}

func (s *stubCheckout) CreateMomoOrder(_ context.Context, _ app.CheckoutInput) (app.MomoOrderResult, error) {
	return s.momoResult, s.err
}

func (s *stubCheckout) CreateStripeIntent(_ context.Context, _ app.CheckoutInput) (app.StripeIntentResult, error) {
	return s.intentResult, s.err
}

func (s *stubCheckout) PlaceStripeOrder(_ context.Context, _ app.PlaceStripeOrderInput) (domain.Order, error) {
	if s.err != nil {
		return domain.Order{}, s.err
	}
	return s.placedOrder, nil
}
