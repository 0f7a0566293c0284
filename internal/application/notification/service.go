// Package notification reacts to order status events. There is no real
// mail delivery; the service logs what would be sent, which is enough for
// the demo storefront and keeps the consumer pipeline exercised end to end.
package notification

import (
	"context"

	orderapp "github.com/growthfolio/next-comic-store/internal/application/order"
	domain "github.com/growthfolio/next-comic-store/internal/domain/order"
	"github.com/growthfolio/next-comic-store/pkg/logger"
)

type Service struct {
	logger logger.Logger
}

func NewService(log logger.Logger) *Service {
	return &Service{logger: log}
}

func (s *Service) HandleStatusChange(ctx context.Context, event orderapp.StatusChangedEvent) error {
	s.logger.Info("order status notification",
		logger.String("order_id", event.OrderID),
		logger.String("user_id", event.UserID),
		logger.String("from", event.From.String()),
		logger.String("to", event.To.String()),
		logger.String("message", messageFor(event.To)),
	)
	return nil
}

func messageFor(to domain.Status) string {
	switch to {
	case domain.StatusPaid:
		return "your payment was received"
	case domain.StatusFailed:
		return "your payment failed, please try again"
	case domain.StatusInProduction:
		return "your comic is in production"
	case domain.StatusCompleted:
		return "your order is complete"
	case domain.StatusCancelled:
		return "your order was cancelled"
	default:
		return "your order was updated"
	}
}
