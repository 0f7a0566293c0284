package payment

import (
	"context"
	"errors"
	"fmt"

	orderapp "github.com/growthfolio/next-comic-store/internal/application/order"
	domain "github.com/growthfolio/next-comic-store/internal/domain/order"
)

// SessionStarter opens a hosted checkout session for an order and returns
// the URL the customer is sent to.
type SessionStarter interface {
	StartSession(ctx context.Context, o *domain.Order) (string, error)
}

// SessionService guards session creation: only an existing Pending order
// can be paid for.
type SessionService struct {
	orders  *orderapp.Service
	starter SessionStarter
}

func NewSessionService(orders *orderapp.Service, starter SessionStarter) *SessionService {
	return &SessionService{orders: orders, starter: starter}
}

func (s *SessionService) CreateSession(ctx context.Context, orderID string) (string, error) {
	o, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrOrderNotPending, orderID)
		}
		return "", err
	}
	if o.Status != domain.StatusPending {
		return "", fmt.Errorf("%w: %s is %s", ErrOrderNotPending, orderID, o.Status)
	}
	return s.starter.StartSession(ctx, o)
}

// MockSessionStarter skips the provider entirely and sends the customer
// straight to the local success page; the frontend then calls the mock
// confirm endpoint.
type MockSessionStarter struct {
	baseURL string
}

func NewMockSessionStarter(baseURL string) *MockSessionStarter {
	return &MockSessionStarter{baseURL: baseURL}
}

func (m *MockSessionStarter) StartSession(ctx context.Context, o *domain.Order) (string, error) {
	return fmt.Sprintf("%s/payment-success?order_id=%s&mock=true", m.baseURL, o.ID), nil
}
