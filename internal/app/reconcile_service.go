package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charlesegbo631-code/watchme/internal/clock"
	"github.com/charlesegbo631-code/watchme/internal/domain"
	"github.com/charlesegbo631-code/watchme/internal/gateway"
	"github.com/charlesegbo631-code/watchme/internal/notify"
)

// OutcomeKind tags which confirmation channel produced an outcome.
type OutcomeKind string

const (
	// OutcomePoll is a synchronous verify call made on the caller's behalf.
	OutcomePoll OutcomeKind = "poll"
	// OutcomeWebhook is an asynchronous event pushed by the gateway.
	OutcomeWebhook OutcomeKind = "webhook"
	// OutcomeNone records that a channel produced no state change.
	OutcomeNone OutcomeKind = "none"
)

// Outcome is the unified confirmation signal. All three channels reduce to
// one of these before touching the ledger, so the forward-only terminal
// transition is enforced in exactly one place.
type Outcome struct {
	Kind      OutcomeKind
	Reference string
	Status    domain.OrderStatus
}

// ReconcileService settles pending orders from gateway confirmations.
type ReconcileService struct {
	ledger        OrderLedger
	paystack      PaystackGateway
	clock         clock.Clock
	log           *slog.Logger
	notifier      notify.Notifier
	webhookSecret string
}

func NewReconcileService(
	ledger OrderLedger,
	paystack PaystackGateway,
	clk clock.Clock,
	log *slog.Logger,
	notifier notify.Notifier,
	webhookSecret string,
) *ReconcileService {
	return &ReconcileService{
		ledger:        ledger,
		paystack:      paystack,
		clock:         clk,
		log:           log,
		notifier:      notifier,
		webhookSecret: webhookSecret,
	}
}

// transition applies an outcome to the ledger. Non-terminal outcomes are
// no-ops. Terminal ones are status-guarded in storage, so replayed
// confirmations and racing channels cannot move an order twice.
func (s *ReconcileService) transition(ctx context.Context, out Outcome) error {
	if out.Kind == OutcomeNone || !out.Status.Terminal() {
		return nil
	}

	var err error
	switch out.Status {
	case domain.OrderStatusPaid:
		err = s.ledger.MarkPaid(ctx, out.Reference, s.clock.Now())
	case domain.OrderStatusFailed:
		err = s.ledger.MarkFailed(ctx, out.Reference, s.clock.Now())
	}
	if err != nil {
		return err
	}

	s.log.Info("order reconciled",
		"reference", out.Reference,
		"status", string(out.Status),
		"channel", string(out.Kind),
	)

	if out.Status == domain.OrderStatusPaid && s.notifier != nil {
		order, err := s.ledger.GetByReference(ctx, out.Reference)
		if err == nil {
			if err := s.notifier.OrderPaid(ctx, order); err != nil {
				s.log.Warn("order paid notification failed", "reference", out.Reference, "error", err)
			}
		}
	}
	return nil
}

// VerifyPaystack is the poll-and-verify channel: it asks the gateway for the
// transaction's state and, on success, settles and returns the order. A
// verify that does not report success leaves the order pending.
func (s *ReconcileService) VerifyPaystack(ctx context.Context, reference string) (domain.Order, error) {
	if reference == "" {
		return domain.Order{}, fmt.Errorf("%w: reference is required", domain.ErrValidation)
	}

	verify, err := s.paystack.VerifyTransaction(ctx, reference)
	if err != nil {
		return domain.Order{}, err
	}

	if verify.Status != gateway.VerifySuccess {
		// The order stays pending; the gateway may still confirm later.
		return domain.Order{}, fmt.Errorf("%w: gateway reports %q", domain.ErrPaymentNotConfirmed, verify.Status)
	}

	if err := s.transition(ctx, Outcome{
		Kind:      OutcomePoll,
		Reference: reference,
		Status:    domain.OrderStatusPaid,
	}); err != nil {
		return domain.Order{}, err
	}

	return s.ledger.GetByReference(ctx, reference)
}

// HandleWebhook is the pushed-confirmation channel. The gateway retries
// undelivered acknowledgments indefinitely, so every recognized-or-not event
// that passes the signature check must be acknowledged; only signature
// mismatches, unparseable payloads, and ledger write failures are surfaced.
func (s *ReconcileService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	if s.webhookSecret != "" {
		if err := gateway.VerifyWebhookSignature(payload, signatureHeader, s.webhookSecret); err != nil {
			return err
		}
	} else {
		// Without a secret, anyone who can reach the endpoint can settle
		// orders.
		s.log.Warn("webhook signature verification disabled; no secret configured")
	}

	event, err := gateway.ParseWebhookEvent(payload)
	if err != nil {
		return err
	}

	outcome := Outcome{Kind: OutcomeNone}
	switch event.Type {
	case "payment_intent.succeeded":
		outcome = Outcome{Kind: OutcomeWebhook, Reference: event.IntentID, Status: domain.OrderStatusPaid}
	case "payment_intent.payment_failed":
		outcome = Outcome{Kind: OutcomeWebhook, Reference: event.IntentID, Status: domain.OrderStatusFailed}
	default:
		s.log.Info("ignoring webhook event", "type", event.Type)
		return nil
	}

	if err := s.transition(ctx, outcome); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			// No local row for this intent; acknowledge anyway or the
			// gateway will retry forever.
			s.log.Info("webhook for unknown order", "type", event.Type, "reference", event.IntentID)
			return nil
		}
		return err
	}
	return nil
}
