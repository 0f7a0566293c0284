package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growthfolio/next-comic-store/internal/application/payment"
)

// signatureHeader carries the provider's event signature.
const signatureHeader = "Stripe-Signature"

type PaymentHandler struct {
	confirmer Confirmer
	sessions  *payment.SessionService
	webhooks  *payment.WebhookProcessor
}

// Confirmer mirrors payment.Confirmer; declared here so handler tests can
// swap in a mock without touching the payment package.
type Confirmer = payment.Confirmer

func NewPaymentHandler(confirmer Confirmer, sessions *payment.SessionService, webhooks *payment.WebhookProcessor) *PaymentHandler {
	return &PaymentHandler{confirmer: confirmer, sessions: sessions, webhooks: webhooks}
}

// Confirm is the mock confirmation path: flips the named Pending order to
// Paid synchronously.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	orderID := c.Query("order_id")
	if orderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "missing order_id parameter"})
		return
	}

	confirmation, err := h.confirmer.Confirm(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, confirmation)
}

type createSessionRequest struct {
	OrderID string `json:"orderId"`
}

func (h *PaymentHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "missing orderId"})
		return
	}

	url, err := h.sessions.CreateSession(c.Request.Context(), req.OrderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkoutUrl": url})
}

// Webhook receives provider deliveries. Permanent rejections answer 400 so
// the provider stops; transient store failures answer 503 so it retries;
// everything else, including business no-ops, acknowledges with 200.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed_event", "message": "unreadable body"})
		return
	}

	result, err := h.webhooks.Process(c.Request.Context(), payload, c.GetHeader(signatureHeader))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true, "applied": result.Applied})
}
