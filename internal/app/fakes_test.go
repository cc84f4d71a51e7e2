package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charlesegbo631-code/watchme/internal/domain"
	"github.com/charlesegbo631-code/watchme/internal/gateway"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeLedger mirrors the repository contract: first-writer-wins drafts and
// status-guarded terminal transitions.
type fakeLedger struct {
	orders   map[string]*domain.Order
	draftErr error
	markErr  error
	inserted []string
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{orders: make(map[string]*domain.Order)}
}

func (f *fakeLedger) CreateDraft(_ context.Context, order domain.Order) (string, error) {
	if f.draftErr != nil {
		return "", f.draftErr
	}
	if existing, ok := f.orders[order.PaymentReference]; ok {
		return existing.LocalOrderID, nil
	}
	o := order
	f.orders[order.PaymentReference] = &o
	f.inserted = append(f.inserted, order.PaymentReference)
	return order.LocalOrderID, nil
}

func (f *fakeLedger) MarkPaid(_ context.Context, reference string, at time.Time) error {
	return f.mark(reference, domain.OrderStatusPaid, at)
}

func (f *fakeLedger) MarkFailed(_ context.Context, reference string, at time.Time) error {
	return f.mark(reference, domain.OrderStatusFailed, at)
}

func (f *fakeLedger) mark(reference string, status domain.OrderStatus, at time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	o, ok := f.orders[reference]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if !o.Status.CanTransition(status) {
		return nil
	}
	o.Status = status
	o.ProcessedAt = &at
	return nil
}

func (f *fakeLedger) GetByReference(_ context.Context, reference string) (domain.Order, error) {
	o, ok := f.orders[reference]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return *o, nil
}

func (f *fakeLedger) ListOrders(_ context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(f.inserted))
	for i := len(f.inserted) - 1; i >= 0; i-- {
		out = append(out, *f.orders[f.inserted[i]])
	}
	return out, nil
}

type fakeRates struct {
	rate  float64
	err   error
	calls int
}

func (f *fakeRates) USDToNGN(context.Context) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.rate, nil
}

type fakePaystack struct {
	initResult   gateway.InitializeResult
	initErr      error
	initCalls    int
	verifyResult gateway.PaystackVerifyResult
	verifyErr    error
	verifyCalls  int
}

func (f *fakePaystack) InitializeTransaction(context.Context, gateway.InitializeInput) (gateway.InitializeResult, error) {
	f.initCalls++
	if f.initErr != nil {
		return gateway.InitializeResult{}, f.initErr
	}
	return f.initResult, nil
}

func (f *fakePaystack) VerifyTransaction(context.Context, string) (gateway.PaystackVerifyResult, error) {
	f.verifyCalls++
	if f.verifyErr != nil {
		return gateway.PaystackVerifyResult{}, f.verifyErr
	}
	return f.verifyResult, nil
}

type fakeMomo struct {
	result gateway.MomoInvoiceResult
	err    error
	calls  int
}

func (f *fakeMomo) CreateInvoice(context.Context, gateway.MomoInvoiceInput) (gateway.MomoInvoiceResult, error) {
	f.calls++
	if f.err != nil {
		return gateway.MomoInvoiceResult{}, f.err
	}
	return f.result, nil
}

type fakeStripe struct {
	created    gateway.Intent
	createErr  error
	retrieved  gateway.Intent
	getErr     error
	calls      int
	lastCreate gateway.IntentInput
}

func (f *fakeStripe) CreatePaymentIntent(_ context.Context, in gateway.IntentInput) (gateway.Intent, error) {
	f.calls++
	f.lastCreate = in
	if f.createErr != nil {
		return gateway.Intent{}, f.createErr
	}
	return f.created, nil
}

func (f *fakeStripe) GetPaymentIntent(context.Context, string) (gateway.Intent, error) {
	if f.getErr != nil {
		return gateway.Intent{}, f.getErr
	}
	return f.retrieved, nil
}

type fakeNotifier struct {
	paid []string
	err  error
}

func (f *fakeNotifier) OrderPaid(_ context.Context, order domain.Order) error {
	if f.err != nil {
		return f.err
	}
	f.paid = append(f.paid, order.PaymentReference)
	return nil
}
