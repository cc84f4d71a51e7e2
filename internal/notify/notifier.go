// Package notify abstracts the customer-notification collaborator. Message
// formatting and delivery live outside this service; reconciliation only
// needs somewhere to report a settled order.
package notify

import (
	"context"
	"log/slog"

	"github.com/charlesegbo631-code/watchme/internal/domain"
)

type Notifier interface {
	OrderPaid(ctx context.Context, order domain.Order) error
}

// LogNotifier records paid orders on the service log. It stands in for the
// real mail transport, which is wired at the process edge.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) OrderPaid(_ context.Context, order domain.Order) error {
	n.log.Info("order paid",
		"reference", order.PaymentReference,
		"localOrderId", order.LocalOrderID,
		"email", order.Customer.Email,
	)
	return nil
}
