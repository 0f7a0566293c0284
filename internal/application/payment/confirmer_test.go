package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderapp "github.com/growthfolio/next-comic-store/internal/application/order"
	domain "github.com/growthfolio/next-comic-store/internal/domain/order"
	"github.com/growthfolio/next-comic-store/internal/domain/user"
	"github.com/growthfolio/next-comic-store/internal/infrastructure/persistence/memory"
	"github.com/growthfolio/next-comic-store/pkg/logger"
)

func newOrderService(t *testing.T) (*orderapp.Service, *memory.OrderRepository) {
	t.Helper()

	orders := memory.NewOrderRepository()
	users := memory.NewUserRepository()
	require.NoError(t, users.Create(context.Background(), &user.User{
		ID:        "u1",
		Name:      "Test User",
		Email:     "test@example.com",
		Password:  "password",
		CreatedAt: time.Now().UTC(),
	}))
	return orderapp.NewService(orders, users, nil, logger.NewNop()), orders
}

func createPendingOrder(t *testing.T, svc *orderapp.Service) *domain.Order {
	t.Helper()

	o, err := svc.CreateOrder(context.Background(), orderapp.CreateOrderCommand{
		UserID:       "u1",
		CustomerName: "Test User",
		Items: []orderapp.ItemInput{
			{Title: "Comic A", Price: 4.99, Quantity: 2},
		},
		TotalPrice: 9.98,
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, o.Status)
	return o
}

func TestMockConfirmer_Confirm(t *testing.T) {
	svc, orders := newOrderService(t)
	o := createPendingOrder(t, svc)

	confirmer := NewMockConfirmer(svc)
	confirmation, err := confirmer.Confirm(context.Background(), o.ID)
	require.NoError(t, err)

	assert.Equal(t, o.ID, confirmation.OrderID)
	assert.Equal(t, domain.StatusPaid, confirmation.Status)

	stored, err := orders.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, stored.Status)
}

func TestMockConfirmer_OrderNotFound(t *testing.T) {
	svc, _ := newOrderService(t)

	confirmer := NewMockConfirmer(svc)
	_, err := confirmer.Confirm(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMockConfirmer_NotPending(t *testing.T) {
	svc, _ := newOrderService(t)
	o := createPendingOrder(t, svc)

	confirmer := NewMockConfirmer(svc)
	_, err := confirmer.Confirm(context.Background(), o.ID)
	require.NoError(t, err)

	// second confirm finds the order already Paid
	_, err = confirmer.Confirm(context.Background(), o.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDisabledConfirmer(t *testing.T) {
	_, err := DisabledConfirmer{}.Confirm(context.Background(), "any")
	assert.ErrorIs(t, err, ErrConfirmDisabled)
}
