package repository

import (
	"context"

	"github.com/growthfolio/next-comic-store/internal/domain/order"
)

// OrderFilter narrows List results. Zero value means no filtering.
type OrderFilter struct {
	UserID     string
	CustomOnly bool
}

// OrderRepository owns durable order state. Create persists the order row
// and its item rows as one atomic unit; UpdateStatus touches the status
// column and nothing else.
type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	FindByID(ctx context.Context, id string) (*order.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
	UpdateStatus(ctx context.Context, id string, status order.Status) error
}
