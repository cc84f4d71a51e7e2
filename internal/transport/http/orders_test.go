package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charlesegbo631-code/watchme/internal/domain"
)

func TestHandleListOrders(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	orders := []domain.Order{
		{PaymentReference: "ps_ref_2", Status: domain.OrderStatusPending, CreatedAt: now.Add(time.Minute)},
		{PaymentReference: "ps_ref_1", Status: domain.OrderStatusPaid, CreatedAt: now, ProcessedAt: &now},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()

	HandleListOrders(stubOrderLister{orders: orders}).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		Success bool `json:"success"`
		Orders  []struct {
			Reference string          `json:"reference"`
			Status    string          `json:"status"`
			Items     json.RawMessage `json:"items"`
		} `json:"orders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success {
		t.Fatal("expected success=true")
	}
	if len(body.Orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(body.Orders))
	}
	if body.Orders[0].Reference != "ps_ref_2" {
		t.Fatalf("expected newest order first, got %q", body.Orders[0].Reference)
	}
	// An order recorded without an items snapshot still serializes a valid
	// JSON array.
	if string(body.Orders[0].Items) != "[]" {
		t.Fatalf("expected empty items array, got %q", body.Orders[0].Items)
	}
}

func TestHandleListOrdersEmpty(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()

	HandleListOrders(stubOrderLister{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var body struct {
		Orders []any `json:"orders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Orders == nil {
		t.Fatal("expected an empty array, not null")
	}
}

type stubOrderLister struct {
	orders []domain.Order
	err    error
}

func (s stubOrderLister) ListOrders(_ context.Context) ([]domain.Order, error) {
	return s.orders, s.err
}
