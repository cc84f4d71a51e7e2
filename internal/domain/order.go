package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusFailed
}

// CanTransition reports whether an order may move from s to next. Transitions
// are forward-only: pending may reach paid or failed, and neither terminal
// state ever changes again.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	return s == OrderStatusPending && next.Terminal()
}

// Order is a row in the payment ledger. PaymentReference is the gateway-issued
// (or locally generated) identifier that ties the row to exactly one payment
// attempt; it is the idempotency key for the whole pipeline.
type Order struct {
	PaymentReference string
	LocalOrderID     string
	Status           OrderStatus
	Customer         Customer
	ItemsSnapshot    []byte
	TotalMinorUSD    int64
	TotalMinorNGN    int64
	SupplierShare    int64
	Profit           int64
	SupplierResponse []byte
	GatewayResponse  []byte
	CreatedAt        time.Time
	ProcessedAt      *time.Time
}
