package payment

import (
	"context"

	orderapp "github.com/growthfolio/next-comic-store/internal/application/order"
	domain "github.com/growthfolio/next-comic-store/internal/domain/order"
)

// Confirmation is the outcome of a synchronous payment confirmation.
type Confirmation struct {
	OrderID string        `json:"orderId"`
	Status  domain.Status `json:"status"`
}

// Confirmer flips a Pending order to Paid. The mock variant does it
// directly; with a real provider the webhook processor takes this role and
// the confirm endpoint stays for local development.
type Confirmer interface {
	Confirm(ctx context.Context, orderID string) (Confirmation, error)
}

// MockConfirmer confirms payments synchronously through the order service,
// so the same transition rules apply as everywhere else.
type MockConfirmer struct {
	orders *orderapp.Service
}

func NewMockConfirmer(orders *orderapp.Service) *MockConfirmer {
	return &MockConfirmer{orders: orders}
}

func (m *MockConfirmer) Confirm(ctx context.Context, orderID string) (Confirmation, error) {
	o, err := m.orders.ChangeStatus(ctx, orderID, domain.StatusPaid)
	if err != nil {
		return Confirmation{}, err
	}
	return Confirmation{OrderID: o.ID, Status: o.Status}, nil
}

// DisabledConfirmer rejects synchronous confirmation; selected when a real
// provider is configured and the webhook is the only confirmation path.
type DisabledConfirmer struct{}

func (DisabledConfirmer) Confirm(ctx context.Context, orderID string) (Confirmation, error) {
	return Confirmation{}, ErrConfirmDisabled
}
