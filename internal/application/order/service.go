package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/growthfolio/next-comic-store/internal/domain/order"
	"github.com/growthfolio/next-comic-store/internal/domain/repository"
	"github.com/growthfolio/next-comic-store/internal/domain/user"
	"github.com/growthfolio/next-comic-store/pkg/logger"
)

// ErrUserReference marks a create request naming a user that does not
// exist. It is the client's fault, unlike a missing order.
var ErrUserReference = errors.New("referenced user does not exist")

type Publisher interface {
	PublishStatusChange(ctx context.Context, key string, payload []byte) error
}

type Service struct {
	orders    repository.OrderRepository
	users     repository.UserRepository
	publisher Publisher
	logger    logger.Logger
}

type ItemInput struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl"`
	IsCustom  bool    `json:"isCustom"`
	Notes     string  `json:"notes"`
}

type CreateOrderCommand struct {
	UserID       string      `json:"userId"`
	CustomerName string      `json:"customerName"`
	Items        []ItemInput `json:"items"`
	TotalPrice   float64     `json:"totalPrice"`
}

func NewService(orders repository.OrderRepository, users repository.UserRepository, publisher Publisher, log logger.Logger) *Service {
	return &Service{orders: orders, users: users, publisher: publisher, logger: log}
}

// CreateOrder validates the command, checks the user reference and persists
// the order with its items atomically. New orders always start Pending.
func (s *Service) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if cmd.UserID == "" {
		return nil, domain.ErrMissingField
	}

	if _, err := s.users.FindByID(ctx, cmd.UserID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserReference, cmd.UserID)
		}
		return nil, fmt.Errorf("check user: %w", err)
	}

	items := make([]domain.Item, 0, len(cmd.Items))
	for _, in := range cmd.Items {
		items = append(items, domain.Item{
			ID:        uuid.NewString(),
			ProductID: in.ProductID,
			Title:     in.Title,
			Price:     in.Price,
			Quantity:  in.Quantity,
			ImageURL:  in.ImageURL,
			IsCustom:  in.IsCustom,
			Notes:     in.Notes,
		})
	}

	o, err := domain.NewOrder(uuid.NewString(), cmd.UserID, cmd.CustomerName, items, cmd.TotalPrice)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.Info("order created",
		logger.String("order_id", o.ID),
		logger.String("user_id", o.UserID),
		logger.Float64("total_price", o.TotalPrice),
	)
	return o, nil
}

// ListOrders returns orders newest first, optionally filtered by user and
// restricted to orders containing at least one custom item.
func (s *Service) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]*domain.Order, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ChangeStatus is the single write path for order status: every caller
// (admin PATCH, mock confirmation, webhook) funnels through the transition
// table here before anything is persisted.
func (s *Service) ChangeStatus(ctx context.Context, id string, to domain.Status) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := o.Status
	if err := o.Transition(to); err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, id, to); err != nil {
		return nil, fmt.Errorf("persist status: %w", err)
	}

	s.logger.Info("order status changed",
		logger.String("order_id", id),
		logger.String("from", from.String()),
		logger.String("to", to.String()),
	)
	s.publishStatusChanged(ctx, o, from)
	return o, nil
}

// publishStatusChanged emits the event best-effort; the transition has
// already been persisted, so a broker failure is only logged.
func (s *Service) publishStatusChanged(ctx context.Context, o *domain.Order, from domain.Status) {
	if s.publisher == nil {
		return
	}
	event := StatusChangedEvent{
		OrderID:    o.ID,
		UserID:     o.UserID,
		From:       from,
		To:         o.Status,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("encode status event", logger.Error(err))
		return
	}
	if err := s.publisher.PublishStatusChange(ctx, o.ID, payload); err != nil {
		s.logger.Warn("status event not published",
			logger.String("order_id", o.ID),
			logger.Error(err),
		)
	}
}
