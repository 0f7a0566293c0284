package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderapp "github.com/growthfolio/next-comic-store/internal/application/order"
	"github.com/growthfolio/next-comic-store/internal/application/payment"
	domain "github.com/growthfolio/next-comic-store/internal/domain/order"
	"github.com/growthfolio/next-comic-store/internal/domain/repository"
	"github.com/growthfolio/next-comic-store/internal/infrastructure/persistence/memory"
	"github.com/growthfolio/next-comic-store/pkg/logger"
)

// stubVerifier accepts any payload carrying the test signature and decodes
// a minimal event shape out of it.
type stubVerifier struct{}

const testSignature = "valid-signature"

type stubEvent struct {
	Type    string `json:"type"`
	OrderID string `json:"orderId"`
	Paid    bool   `json:"paid"`
}

func (stubVerifier) VerifyEvent(payload []byte, signature string) (payment.ProviderEvent, error) {
	if signature != testSignature {
		return payment.ProviderEvent{}, payment.ErrSignatureInvalid
	}

	var ev stubEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return payment.ProviderEvent{}, payment.ErrMalformedEvent
	}

	return payment.ProviderEvent{
		Type:     ev.Type,
		OrderID:  ev.OrderID,
		Paid:     ev.Paid,
		Relevant: ev.Type == "checkout.session.completed",
	}, nil
}

func TestConfirmEndpoint(t *testing.T) {
	env := newTestEnv(t)
	o := env.createOrder(t)

	w := env.do(http.MethodPost, "/payment/confirm?order_id="+o.ID, nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, o.ID, body["orderId"])
	assert.Equal(t, "Paid", body["status"])
}

func TestConfirmEndpoint_MissingOrderID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/payment/confirm", nil, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decodeBody(t, w)["error"])
}

func TestConfirmEndpoint_UnknownOrder(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/payment/confirm?order_id=missing", nil, nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeBody(t, w)["error"])
}

func TestConfirmEndpoint_AlreadyPaid(t *testing.T) {
	env := newTestEnv(t)
	o := env.createOrder(t)

	first := env.do(http.MethodPost, "/payment/confirm?order_id="+o.ID, nil, nil)
	require.Equal(t, http.StatusOK, first.Code)

	second := env.do(http.MethodPost, "/payment/confirm?order_id="+o.ID, nil, nil)
	require.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, "invalid_transition", decodeBody(t, second)["error"])
}

func TestCreateSessionEndpoint(t *testing.T) {
	env := newTestEnv(t)
	o := env.createOrder(t)

	w := env.do(http.MethodPost, "/payment/create-session", gin.H{"orderId": o.ID}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["checkoutUrl"], o.ID)
}

func TestCreateSessionEndpoint_MissingOrderID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/payment/create-session", gin.H{}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSessionEndpoint_NonPendingOrder(t *testing.T) {
	env := newTestEnv(t)
	o := env.createOrder(t)

	confirm := env.do(http.MethodPost, "/payment/confirm?order_id="+o.ID, nil, nil)
	require.Equal(t, http.StatusOK, confirm.Code)

	w := env.do(http.MethodPost, "/payment/create-session", gin.H{"orderId": o.ID}, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebhookEndpoint_Applied(t *testing.T) {
	env := newTestEnv(t)
	o := env.createOrder(t)

	w := env.do(http.MethodPost, "/webhooks/payment", gin.H{
		"type":    "checkout.session.completed",
		"orderId": o.ID,
		"paid":    true,
	}, map[string]string{"Stripe-Signature": testSignature})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["received"])
	assert.Equal(t, true, body["applied"])
}

func TestWebhookEndpoint_BadSignature(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/webhooks/payment", gin.H{
		"type": "checkout.session.completed",
	}, map[string]string{"Stripe-Signature": "forged"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "signature_invalid", decodeBody(t, w)["error"])
}

func TestWebhookEndpoint_RedeliveryAcknowledged(t *testing.T) {
	env := newTestEnv(t)
	o := env.createOrder(t)

	body := gin.H{
		"type":    "checkout.session.completed",
		"orderId": o.ID,
		"paid":    true,
	}
	headers := map[string]string{"Stripe-Signature": testSignature}

	first := env.do(http.MethodPost, "/webhooks/payment", body, headers)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, true, decodeBody(t, first)["applied"])

	second := env.do(http.MethodPost, "/webhooks/payment", body, headers)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, false, decodeBody(t, second)["applied"])
}

func TestWebhookEndpoint_MissingOrderID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/webhooks/payment", gin.H{
		"type": "checkout.session.completed",
		"paid": true,
	}, map[string]string{"Stripe-Signature": testSignature})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "malformed_event", decodeBody(t, w)["error"])
}

// downOrderRepo answers every call with the store-unavailable error the
// postgres repository produces when the database is unreachable.
type downOrderRepo struct{}

func (downOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	return fmt.Errorf("%w: insert order: connection refused", domain.ErrStoreUnavailable)
}

func (downOrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return nil, fmt.Errorf("%w: find order: connection refused", domain.ErrStoreUnavailable)
}

func (downOrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*domain.Order, error) {
	return nil, fmt.Errorf("%w: list orders: connection refused", domain.ErrStoreUnavailable)
}

func (downOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	return fmt.Errorf("%w: update status: connection refused", domain.ErrStoreUnavailable)
}

func TestWebhookEndpoint_StoreDownAsksProviderToRetry(t *testing.T) {
	svc := orderapp.NewService(downOrderRepo{}, memory.NewUserRepository(), nil, logger.NewNop())
	paymentHandler := NewPaymentHandler(
		payment.NewMockConfirmer(svc),
		payment.NewSessionService(svc, payment.NewMockSessionStarter("http://localhost:3000")),
		payment.NewWebhookProcessor(stubVerifier{}, svc, logger.NewNop()),
	)

	r := gin.New()
	r.POST("/webhooks/payment", paymentHandler.Webhook)
	env := &testEnv{engine: r}

	w := env.do(http.MethodPost, "/webhooks/payment", gin.H{
		"type":    "checkout.session.completed",
		"orderId": "o1",
		"paid":    true,
	}, map[string]string{"Stripe-Signature": testSignature})

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "store_unavailable", decodeBody(t, w)["error"])
}

func TestWebhookEndpoint_FailedEventRedelivery(t *testing.T) {
	env := newTestEnv(t)
	o := env.createOrder(t)

	body := gin.H{
		"type":    "checkout.session.completed",
		"orderId": o.ID,
		"paid":    false,
	}
	headers := map[string]string{"Stripe-Signature": testSignature}

	first := env.do(http.MethodPost, "/webhooks/payment", body, headers)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, true, decodeBody(t, first)["applied"])

	second := env.do(http.MethodPost, "/webhooks/payment", body, headers)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, false, decodeBody(t, second)["applied"])

	stored, err := env.orders.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, stored.Status)
}

func TestWebhookEndpoint_IrrelevantEvent(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/webhooks/payment", gin.H{
		"type": "invoice.created",
	}, map[string]string{"Stripe-Signature": testSignature})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["applied"])
}
