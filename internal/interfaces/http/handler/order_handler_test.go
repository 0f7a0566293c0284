package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderapp "github.com/growthfolio/next-comic-store/internal/application/order"
	"github.com/growthfolio/next-comic-store/internal/application/payment"
	domain "github.com/growthfolio/next-comic-store/internal/domain/order"
	"github.com/growthfolio/next-comic-store/internal/domain/user"
	"github.com/growthfolio/next-comic-store/internal/infrastructure/persistence/memory"
	"github.com/growthfolio/next-comic-store/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	engine *gin.Engine
	orders *memory.OrderRepository
	svc    *orderapp.Service
}

// newTestEnv wires the order and payment endpoints against in-memory
// repositories, mirroring the production route table.
func newTestEnv(t *testing.T) *testEnv {
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

	svc := orderapp.NewService(orders, users, nil, logger.NewNop())

	orderHandler := NewOrderHandler(svc)
	paymentHandler := NewPaymentHandler(
		payment.NewMockConfirmer(svc),
		payment.NewSessionService(svc, payment.NewMockSessionStarter("http://localhost:3000")),
		payment.NewWebhookProcessor(stubVerifier{}, svc, logger.NewNop()),
	)

	r := gin.New()
	r.POST("/orders", orderHandler.CreateOrder)
	r.GET("/orders", orderHandler.ListOrders)
	r.GET("/orders/:id", orderHandler.GetOrder)
	r.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	r.POST("/payment/confirm", paymentHandler.Confirm)
	r.POST("/payment/create-session", paymentHandler.CreateSession)
	r.POST("/webhooks/payment", paymentHandler.Webhook)

	return &testEnv{engine: r, orders: orders, svc: svc}
}

func (e *testEnv) do(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createOrder(t *testing.T) *domain.Order {
	t.Helper()

	o, err := e.svc.CreateOrder(context.Background(), orderapp.CreateOrderCommand{
		UserID:       "u1",
		CustomerName: "Test User",
		Items: []orderapp.ItemInput{
			{Title: "Comic A", Price: 4.99, Quantity: 2},
		},
		TotalPrice: 9.98,
	})
	require.NoError(t, err)
	return o
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateOrderEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/orders", gin.H{
		"userId":       "u1",
		"customerName": "Test User",
		"items": []gin.H{
			{"title": "Comic A", "price": 4.99, "quantity": 2},
		},
		"totalPrice": 9.98,
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "Pending", body["status"])
	assert.Equal(t, 9.98, body["totalPrice"])
}

func TestCreateOrderEndpoint_EmptyItems(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/orders", gin.H{
		"userId": "u1",
		"items":  []gin.H{},
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decodeBody(t, w)["error"])
}

func TestCreateOrderEndpoint_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/orders", gin.H{
		"userId": "no-such-user",
		"items": []gin.H{
			{"title": "Comic A", "price": 4.99, "quantity": 1},
		},
		"totalPrice": 4.99,
	}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "reference_error", decodeBody(t, w)["error"])
}

func TestListOrdersEndpoint_EmptyArray(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/orders", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestGetOrderEndpoint_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/orders/missing", nil, nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeBody(t, w)["error"])
}

func TestUpdateStatusEndpoint(t *testing.T) {
	env := newTestEnv(t)
	o := env.createOrder(t)

	w := env.do(http.MethodPatch, "/orders/"+o.ID+"/status", gin.H{"status": "Paid"}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Paid", decodeBody(t, w)["status"])
}

func TestUpdateStatusEndpoint_InvalidTransition(t *testing.T) {
	env := newTestEnv(t)
	o := env.createOrder(t)

	// Pending cannot jump straight to Completed
	w := env.do(http.MethodPatch, "/orders/"+o.ID+"/status", gin.H{"status": "Completed"}, nil)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_transition", decodeBody(t, w)["error"])

	stored, err := env.orders.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestUpdateStatusEndpoint_UnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	o := env.createOrder(t)

	w := env.do(http.MethodPatch, "/orders/"+o.ID+"/status", gin.H{"status": "Shipped"}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decodeBody(t, w)["error"])
}

func TestUpdateStatusEndpoint_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPatch, "/orders/missing/status", gin.H{"status": "Paid"}, nil)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrdersEndpoint_UserFilter(t *testing.T) {
	env := newTestEnv(t)
	o := env.createOrder(t)

	w := env.do(http.MethodGet, fmt.Sprintf("/orders?userId=%s", o.UserID), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, o.ID, list[0]["id"])

	w = env.do(http.MethodGet, "/orders?userId=someone-else", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
