package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/charlesegbo631-code/watchme/internal/clock"
	"github.com/charlesegbo631-code/watchme/internal/domain"
	"github.com/charlesegbo631-code/watchme/internal/gateway"
	"github.com/charlesegbo631-code/watchme/internal/money"
	"github.com/charlesegbo631-code/watchme/internal/shipping"
)

// OrderLedger is the durable, idempotent order store keyed by payment
// reference.
type OrderLedger interface {
	CreateDraft(ctx context.Context, order domain.Order) (string, error)
	MarkPaid(ctx context.Context, reference string, at time.Time) error
	MarkFailed(ctx context.Context, reference string, at time.Time) error
	GetByReference(ctx context.Context, reference string) (domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

// RateSource provides the USD->NGN spot rate. Calls are uncached round trips.
type RateSource interface {
	USDToNGN(ctx context.Context) (float64, error)
}

type PaystackGateway interface {
	InitializeTransaction(ctx context.Context, in gateway.InitializeInput) (gateway.InitializeResult, error)
	VerifyTransaction(ctx context.Context, reference string) (gateway.PaystackVerifyResult, error)
}

type MomoGateway interface {
	CreateInvoice(ctx context.Context, in gateway.MomoInvoiceInput) (gateway.MomoInvoiceResult, error)
}

type StripeGateway interface {
	CreatePaymentIntent(ctx context.Context, in gateway.IntentInput) (gateway.Intent, error)
	GetPaymentIntent(ctx context.Context, id string) (gateway.Intent, error)
}

// CheckoutService orchestrates cart validation, total computation, gateway
// initialization, and draft-order creation across the three payment rails.
type CheckoutService struct {
	ledger            OrderLedger
	rates             RateSource
	paystack          PaystackGateway
	momo              MomoGateway
	stripe            StripeGateway
	clock             clock.Clock
	log               *slog.Logger
	supplierAccountID string
}

func NewCheckoutService(
	ledger OrderLedger,
	rates RateSource,
	paystack PaystackGateway,
	momo MomoGateway,
	stripe StripeGateway,
	clk clock.Clock,
	log *slog.Logger,
	supplierAccountID string,
) *CheckoutService {
	return &CheckoutService{
		ledger:            ledger,
		rates:             rates,
		paystack:          paystack,
		momo:              momo,
		stripe:            stripe,
		clock:             clk,
		log:               log,
		supplierAccountID: supplierAccountID,
	}
}

// CheckoutInput is a validated cart plus buyer details. Currency declares the
// unit of the cart prices: "NGN" means the caller pre-converted into the
// settlement currency, anything else is treated as USD.
type CheckoutInput struct {
	Items    []domain.CartItem
	Customer domain.Customer
	Currency string
}

// validateCart computes the split and enforces the checkout preconditions
// before any external call: a non-empty cart with a non-negative profit.
func validateCart(items []domain.CartItem) (domain.Split, error) {
	if len(items) == 0 {
		return domain.Split{}, domain.ErrEmptyCart
	}
	split := domain.ComputeSplit(items)
	if split.Total <= 0 {
		return domain.Split{}, fmt.Errorf("%w: cart total must be positive", domain.ErrValidation)
	}
	if split.Profit < 0 {
		return domain.Split{}, domain.ErrNegativeProfit
	}
	return split, nil
}

// ngnSubtotal converts the cart subtotal into kobo. Pre-converted carts pass
// through unchanged; USD carts go through the live rate. The conversion
// multiplies by 100 directly rather than going back through the unit
// inference, which would misread large converted amounts as already-minor.
func (s *CheckoutService) ngnSubtotal(ctx context.Context, split domain.Split, currency string) (int64, error) {
	if currency == "NGN" {
		return split.Total, nil
	}
	rate, err := s.rates.USDToNGN(ctx)
	if err != nil {
		return 0, err
	}
	ngnMajor := money.ToMajorUnits(split.Total) * rate
	return int64(math.Round(ngnMajor * 100)), nil
}

type PaystackOrderResult struct {
	AuthorizationURL string
	Reference        string
	TotalNGN         float64
	TotalKobo        int64
}

// CreatePaystackOrder initializes a hosted-checkout transaction and records a
// pending draft under the gateway-issued reference. The draft exists before
// the buyer has completed payment; the callback or webhook settles it later.
func (s *CheckoutService) CreatePaystackOrder(ctx context.Context, in CheckoutInput) (PaystackOrderResult, error) {
	split, err := validateCart(in.Items)
	if err != nil {
		return PaystackOrderResult{}, err
	}

	subtotalKobo, err := s.ngnSubtotal(ctx, split, in.Currency)
	if err != nil {
		return PaystackOrderResult{}, err
	}
	totalKobo := subtotalKobo + shipping.ResolveFee(in.Customer.State)

	snapshot, err := json.Marshal(in.Items)
	if err != nil {
		return PaystackOrderResult{}, fmt.Errorf("%w: snapshot cart: %v", domain.ErrValidation, err)
	}

	init, err := s.paystack.InitializeTransaction(ctx, gateway.InitializeInput{
		Email:      in.Customer.Email,
		AmountKobo: totalKobo,
		Metadata: map[string]any{
			"customer": in.Customer,
			"items":    in.Items,
		},
	})
	if err != nil {
		return PaystackOrderResult{}, err
	}

	now := s.clock.Now()
	localID, err := s.ledger.CreateDraft(ctx, domain.Order{
		PaymentReference: init.Reference,
		LocalOrderID:     newLocalOrderID(now),
		Status:           domain.OrderStatusPending,
		Customer:         in.Customer,
		ItemsSnapshot:    snapshot,
		TotalMinorNGN:    totalKobo,
		SupplierShare:    split.SupplierShare,
		Profit:           split.Profit,
		CreatedAt:        now,
	})
	if err != nil {
		// The gateway already accepted the initialize call; the remote
		// transaction is now orphaned relative to the ledger.
		return PaystackOrderResult{}, err
	}

	s.log.Info("paystack draft created",
		"reference", init.Reference,
		"localOrderId", localID,
		"totalKobo", totalKobo,
	)

	return PaystackOrderResult{
		AuthorizationURL: init.AuthorizationURL,
		Reference:        init.Reference,
		TotalNGN:         money.ToMajorUnits(totalKobo),
		TotalKobo:        totalKobo,
	}, nil
}

type MomoOrderResult struct {
	Reference string
	TotalNGN  float64
	TotalKobo int64
}

// CreateMomoOrder submits a signed invoice on the mobile-money rail and
// records a pending draft under the locally generated reference. The
// provider's response body is persisted verbatim and never parsed; no
// confirmation ever arrives on this rail, so the draft stays pending until
// reconciled out of band.
func (s *CheckoutService) CreateMomoOrder(ctx context.Context, in CheckoutInput) (MomoOrderResult, error) {
	split, err := validateCart(in.Items)
	if err != nil {
		return MomoOrderResult{}, err
	}

	subtotalKobo, err := s.ngnSubtotal(ctx, split, in.Currency)
	if err != nil {
		return MomoOrderResult{}, err
	}
	totalKobo := subtotalKobo + shipping.ResolveFee(in.Customer.State)

	snapshot, err := json.Marshal(in.Items)
	if err != nil {
		return MomoOrderResult{}, fmt.Errorf("%w: snapshot cart: %v", domain.ErrValidation, err)
	}

	invoice, err := s.momo.CreateInvoice(ctx, gateway.MomoInvoiceInput{
		AmountKobo: totalKobo,
		Customer:   in.Customer,
		Items:      in.Items,
	})
	if err != nil {
		return MomoOrderResult{}, err
	}

	now := s.clock.Now()
	localID, err := s.ledger.CreateDraft(ctx, domain.Order{
		PaymentReference: invoice.Reference,
		LocalOrderID:     newLocalOrderID(now),
		Status:           domain.OrderStatusPending,
		Customer:         in.Customer,
		ItemsSnapshot:    snapshot,
		TotalMinorNGN:    totalKobo,
		SupplierShare:    split.SupplierShare,
		Profit:           split.Profit,
		GatewayResponse:  invoice.RawResponse,
		CreatedAt:        now,
	})
	if err != nil {
		return MomoOrderResult{}, err
	}

	s.log.Info("momo draft created",
		"reference", invoice.Reference,
		"localOrderId", localID,
		"totalKobo", totalKobo,
	)

	return MomoOrderResult{
		Reference: invoice.Reference,
		TotalNGN:  money.ToMajorUnits(totalKobo),
		TotalKobo: totalKobo,
	}, nil
}

type StripeIntentResult struct {
	ClientSecret string
	Reference    string
	TotalUSD     float64
	AmountCents  int64
}

// CreateStripeIntent opens a payment intent with the profit split attached as
// an application fee and the supplier's connected account as the transfer
// destination. No draft is recorded at this stage; the order is placed by
// PlaceStripeOrder after client-side completion.
func (s *CheckoutService) CreateStripeIntent(ctx context.Context, in CheckoutInput) (StripeIntentResult, error) {
	split, err := validateCart(in.Items)
	if err != nil {
		return StripeIntentResult{}, err
	}

	// The flat shipping fee is denominated in minor units regardless of
	// charge currency: 2000 enters as kobo on the NGN rails and as cents
	// here.
	amountCents := split.Total + shipping.ResolveFee(in.Customer.State)

	intent, err := s.stripe.CreatePaymentIntent(ctx, gateway.IntentInput{
		AmountCents:         amountCents,
		ApplicationFeeCents: split.Profit,
		SupplierAccountID:   s.supplierAccountID,
		CustomerEmail:       in.Customer.Email,
	})
	if err != nil {
		return StripeIntentResult{}, err
	}

	s.log.Info("stripe intent created", "intent", intent.ID, "amountCents", amountCents)

	return StripeIntentResult{
		ClientSecret: intent.ClientSecret,
		Reference:    intent.ID,
		TotalUSD:     money.ToMajorUnits(amountCents),
		AmountCents:  amountCents,
	}, nil
}

type PlaceStripeOrderInput struct {
	PaymentIntentID string
	Items           []domain.CartItem
	Customer        domain.Customer
}

// PlaceStripeOrder re-retrieves the intent from the gateway, requires it to
// have succeeded, and only then records the order. Creation and settlement
// collapse into one call on this rail, but the ledger still passes through
// pending so the transition rules hold for every order.
func (s *CheckoutService) PlaceStripeOrder(ctx context.Context, in PlaceStripeOrderInput) (domain.Order, error) {
	if in.PaymentIntentID == "" {
		return domain.Order{}, fmt.Errorf("%w: paymentIntentId is required", domain.ErrValidation)
	}
	split, err := validateCart(in.Items)
	if err != nil {
		return domain.Order{}, err
	}

	intent, err := s.stripe.GetPaymentIntent(ctx, in.PaymentIntentID)
	if err != nil {
		return domain.Order{}, err
	}
	if intent.Status != "succeeded" {
		return domain.Order{}, fmt.Errorf("%w: payment intent status is %q", domain.ErrPaymentNotConfirmed, intent.Status)
	}

	snapshot, err := json.Marshal(in.Items)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: snapshot cart: %v", domain.ErrValidation, err)
	}

	now := s.clock.Now()
	if _, err := s.ledger.CreateDraft(ctx, domain.Order{
		PaymentReference: intent.ID,
		LocalOrderID:     newLocalOrderID(now),
		Status:           domain.OrderStatusPending,
		Customer:         in.Customer,
		ItemsSnapshot:    snapshot,
		TotalMinorUSD:    intent.Amount,
		SupplierShare:    split.SupplierShare,
		Profit:           split.Profit,
		CreatedAt:        now,
	}); err != nil {
		return domain.Order{}, err
	}
	if err := s.ledger.MarkPaid(ctx, intent.ID, s.clock.Now()); err != nil {
		return domain.Order{}, err
	}

	order, err := s.ledger.GetByReference(ctx, intent.ID)
	if err != nil {
		return domain.Order{}, err
	}

	s.log.Info("stripe order placed", "reference", intent.ID, "localOrderId", order.LocalOrderID)
	return order, nil
}

// ListOrders returns the ledger contents, newest first.
func (s *CheckoutService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.ledger.ListOrders(ctx)
}
