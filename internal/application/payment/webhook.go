package payment

import (
	"context"
	"errors"
	"fmt"

	orderapp "github.com/growthfolio/next-comic-store/internal/application/order"
	domain "github.com/growthfolio/next-comic-store/internal/domain/order"
	"github.com/growthfolio/next-comic-store/pkg/logger"
)

// ProviderEvent is a verified, decoded payment event. Relevant is false for
// event types this service does not care about; those are acknowledged
// without any action.
type ProviderEvent struct {
	Type     string
	OrderID  string
	Paid     bool
	Relevant bool
}

// EventVerifier authenticates a raw webhook delivery and decodes it. The
// stripe implementation wraps the provider SDK's signature check.
type EventVerifier interface {
	VerifyEvent(payload []byte, signature string) (ProviderEvent, error)
}

// WebhookResult reports what a delivery did. Applied is false for no-ops:
// irrelevant event types and redeliveries for already resolved orders.
type WebhookResult struct {
	OrderID string        `json:"orderId,omitempty"`
	Status  domain.Status `json:"status,omitempty"`
	Applied bool          `json:"applied"`
}

// WebhookProcessor handles provider deliveries. Delivery is at-least-once,
// so processing must be idempotent: a second event for an order that
// already left Pending acknowledges without changing anything.
type WebhookProcessor struct {
	verifier EventVerifier
	orders   *orderapp.Service
	logger   logger.Logger
}

func NewWebhookProcessor(verifier EventVerifier, orders *orderapp.Service, log logger.Logger) *WebhookProcessor {
	return &WebhookProcessor{verifier: verifier, orders: orders, logger: log}
}

// Process verifies and applies one delivery.
// Error classes map to responses upstream: signature/malformed errors are
// permanent rejections (400), store errors ask the provider to retry (503),
// everything else acknowledges (200).
func (p *WebhookProcessor) Process(ctx context.Context, payload []byte, signature string) (WebhookResult, error) {
	event, err := p.verifier.VerifyEvent(payload, signature)
	if err != nil {
		return WebhookResult{}, err
	}

	if !event.Relevant {
		p.logger.Debug("ignoring webhook event", logger.String("type", event.Type))
		return WebhookResult{Applied: false}, nil
	}

	if event.OrderID == "" {
		return WebhookResult{}, fmt.Errorf("%w: missing order id in event metadata", ErrMalformedEvent)
	}

	target := domain.StatusPaid
	if !event.Paid {
		target = domain.StatusFailed
	}

	// The webhook only ever resolves a Pending order. An event for an order
	// that already left Pending is a late or duplicate delivery, even when
	// the transition table would allow the edge (a stale "failed" must not
	// un-pay a Paid order).
	current, err := p.orders.GetOrder(ctx, event.OrderID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		p.logger.Error("webhook for unknown order", logger.String("order_id", event.OrderID))
		return WebhookResult{OrderID: event.OrderID, Applied: false}, nil
	case err != nil:
		return WebhookResult{}, err
	}
	if current.Status != domain.StatusPending {
		p.logger.Info("webhook no-op, order already resolved",
			logger.String("order_id", event.OrderID),
			logger.String("status", current.Status.String()),
			logger.String("requested", target.String()),
		)
		return WebhookResult{OrderID: event.OrderID, Applied: false}, nil
	}

	o, err := p.orders.ChangeStatus(ctx, event.OrderID, target)
	switch {
	case err == nil:
		return WebhookResult{OrderID: o.ID, Status: o.Status, Applied: true}, nil

	case errors.Is(err, domain.ErrInvalidTransition):
		// Lost the race with a concurrent resolution between the read above
		// and the write. Same outcome: acknowledge without changing anything.
		p.logger.Info("webhook no-op, order already resolved",
			logger.String("order_id", event.OrderID),
			logger.String("requested", target.String()),
		)
		return WebhookResult{OrderID: event.OrderID, Applied: false}, nil

	case errors.Is(err, domain.ErrNotFound):
		// Retrying an unknown order cannot succeed either; log loudly and
		// acknowledge.
		p.logger.Error("webhook for unknown order", logger.String("order_id", event.OrderID))
		return WebhookResult{OrderID: event.OrderID, Applied: false}, nil

	default:
		// Transient (store unavailable): surface so the handler answers
		// non-2xx and the provider redelivers.
		return WebhookResult{}, err
	}
}
