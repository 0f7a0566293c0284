package order

import (
	"time"

	domain "github.com/growthfolio/next-comic-store/internal/domain/order"
)

// StatusChangedEvent is the payload published to Kafka after every
// successful status transition. The notifier consumes it.
type StatusChangedEvent struct {
	OrderID    string        `json:"orderId"`
	UserID     string        `json:"userId"`
	From       domain.Status `json:"from"`
	To         domain.Status `json:"to"`
	OccurredAt time.Time     `json:"occurredAt"`
}
