package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	orderapp "github.com/growthfolio/next-comic-store/internal/application/order"
	"github.com/growthfolio/next-comic-store/internal/application/payment"
	"github.com/growthfolio/next-comic-store/internal/domain/order"
	"github.com/growthfolio/next-comic-store/internal/domain/product"
	"github.com/growthfolio/next-comic-store/internal/domain/user"
)

// respondError maps the service error taxonomy to a machine-checkable kind
// plus a human message. Handlers never pick status codes ad hoc.
func respondError(c *gin.Context, err error) {
	kind, status := classify(err)
	c.JSON(status, gin.H{"error": kind, "message": err.Error()})
}

func classify(err error) (string, int) {
	switch {
	case errors.Is(err, order.ErrValidation), errors.Is(err, order.ErrUnknownStatus):
		return "validation_error", http.StatusBadRequest
	case errors.Is(err, orderapp.ErrUserReference):
		return "reference_error", http.StatusBadRequest
	case errors.Is(err, order.ErrInvalidTransition):
		return "invalid_transition", http.StatusConflict
	case errors.Is(err, order.ErrNotFound), errors.Is(err, product.ErrNotFound), errors.Is(err, user.ErrNotFound):
		return "not_found", http.StatusNotFound
	case errors.Is(err, payment.ErrSignatureInvalid):
		return "signature_invalid", http.StatusBadRequest
	case errors.Is(err, payment.ErrMalformedEvent):
		return "malformed_event", http.StatusBadRequest
	case errors.Is(err, payment.ErrOrderNotPending):
		return "not_found", http.StatusNotFound
	case errors.Is(err, payment.ErrConfirmDisabled):
		return "validation_error", http.StatusBadRequest
	case errors.Is(err, user.ErrInvalidCredentials):
		return "invalid_credentials", http.StatusUnauthorized
	case errors.Is(err, user.ErrEmailTaken):
		return "email_taken", http.StatusConflict
	case errors.Is(err, order.ErrStoreUnavailable):
		return "store_unavailable", http.StatusServiceUnavailable
	default:
		return "internal_error", http.StatusInternalServerError
	}
}
