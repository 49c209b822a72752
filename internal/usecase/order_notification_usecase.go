package usecase

import (
	"context"
	"fmt"
	"strconv"

	"storekit-backend/internal/domain"

	"github.com/rs/zerolog"
)

// CartRecoverer closes abandoned carts when a matching order completes.
type CartRecoverer interface {
	MarkRecovered(ctx context.Context, storeID, email string) error
}

// OrderNotifier turns order lifecycle events into customer messages.
type OrderNotifier struct {
	notifier  domain.Notifier
	recoverer CartRecoverer
	log       zerolog.Logger
}

func NewOrderNotifier(notifier domain.Notifier, recoverer CartRecoverer, log zerolog.Logger) *OrderNotifier {
	return &OrderNotifier{notifier: notifier, recoverer: recoverer, log: log}
}

// HandleOrderEvent sends the message for an event, then closes any matching
// abandoned cart. A failed send is logged and swallowed; only recovery
// bookkeeping errors are returned.
func (n *OrderNotifier) HandleOrderEvent(ctx context.Context, evt domain.OrderEvent) error {
	n.notify(ctx, evt)

	if evt.Type != domain.OrderEventConfirmed && evt.Type != domain.OrderEventCompleted {
		return nil
	}
	if n.recoverer == nil || evt.Email == "" {
		return nil
	}
	if err := n.recoverer.MarkRecovered(ctx, evt.StoreID, evt.Email); err != nil {
		n.log.Error().Err(err).Str("order_id", evt.OrderID).Str("store_id", evt.StoreID).Msg("failed to mark cart recovered")
		return fmt.Errorf("recover cart for order %s: %w", evt.OrderID, err)
	}
	return nil
}

func (n *OrderNotifier) notify(ctx context.Context, evt domain.OrderEvent) {
	template, params, ok := orderTemplate(evt)
	if !ok {
		n.log.Debug().Str("type", evt.Type).Str("order_id", evt.OrderID).Msg("no notification for order event")
		return
	}

	to := evt.Phone
	if to == "" {
		to = evt.Email
	}
	if to == "" {
		n.log.Warn().Str("order_id", evt.OrderID).Str("template", template).Msg("order has no phone or email, notification skipped")
		return
	}

	res := n.notifier.Send(ctx, domain.SendRequest{
		To:       to,
		Template: template,
		Params:   params,
		StoreID:  evt.StoreID,
	})
	if !res.Success {
		n.log.Error().
			Str("order_id", evt.OrderID).
			Str("template", template).
			Int("attempts", res.Attempts).
			Str("error", res.Error).
			Msg("order notification failed")
	}
}

func orderTemplate(evt domain.OrderEvent) (string, []string, bool) {
	total := strconv.FormatFloat(evt.Total, 'f', 2, 64)
	switch evt.Type {
	case domain.OrderEventConfirmed:
		return domain.TemplateOrderConfirmation, []string{evt.CustomerName, evt.OrderNumber, total}, true
	case domain.OrderEventShipped:
		return domain.TemplateOrderShipped, []string{evt.CustomerName, evt.OrderNumber, evt.CourierName, evt.AWBCode, evt.TrackingURL}, true
	case domain.OrderEventDelivered:
		return domain.TemplateOrderDelivered, []string{evt.CustomerName, evt.OrderNumber}, true
	case domain.OrderEventCODReminder:
		if evt.PaymentMethod != "" && evt.PaymentMethod != domain.PaymentMethodCOD {
			return "", nil, false
		}
		return domain.TemplateCODReminder, []string{evt.CustomerName, evt.OrderNumber, total}, true
	}
	return "", nil, false
}
