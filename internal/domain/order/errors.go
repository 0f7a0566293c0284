package order

import (
	"errors"
	"fmt"
)

// ErrValidation is the base for creation-time input errors; the specific
// sentinels below wrap it so callers can match either level with errors.Is.
var ErrValidation = errors.New("invalid order data")

var (
	ErrEmptyItems      = fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	ErrInvalidQuantity = fmt.Errorf("%w: item quantity must be greater than zero", ErrValidation)
	ErrInvalidPrice    = fmt.Errorf("%w: item price must not be negative", ErrValidation)
	ErrMissingField    = fmt.Errorf("%w: required field is missing", ErrValidation)
	ErrTotalMismatch   = fmt.Errorf("%w: total price does not match item sum", ErrValidation)
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
