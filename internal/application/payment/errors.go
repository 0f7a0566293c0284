package payment

import "errors"

var (
	// ErrSignatureInvalid means the webhook event failed authenticity
	// verification. The event is rejected for good; retrying cannot help.
	ErrSignatureInvalid = errors.New("webhook signature invalid")

	// ErrMalformedEvent means a verified event is missing required fields
	// (no order id in metadata). Also permanent.
	ErrMalformedEvent = errors.New("webhook event malformed")

	// ErrOrderNotPending means a checkout session was requested for an
	// order that is absent or already past Pending.
	ErrOrderNotPending = errors.New("order not found or not pending")

	// ErrConfirmDisabled is returned by the confirm endpoint when a real
	// provider is configured; confirmation then happens via webhook only.
	ErrConfirmDisabled = errors.New("synchronous confirmation disabled, provider uses webhooks")
)
