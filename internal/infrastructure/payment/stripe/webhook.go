// Package stripe adapts the Stripe SDK to the payment application layer:
// webhook authenticity checks and hosted checkout sessions.
package stripe

import (
	"encoding/json"
	"fmt"

	stripelib "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/growthfolio/next-comic-store/internal/application/payment"
)

// metadataOrderKey is set on the checkout session at creation time and read
// back from the webhook event.
const metadataOrderKey = "order_id"

// WebhookVerifier checks event signatures against the endpoint's shared
// secret. Verification failures fail closed: the event is never trusted.
type WebhookVerifier struct {
	secret string
}

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret}
}

func (v *WebhookVerifier) VerifyEvent(payload []byte, signature string) (payment.ProviderEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, v.secret)
	if err != nil {
		return payment.ProviderEvent{}, fmt.Errorf("%w: %v", payment.ErrSignatureInvalid, err)
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded", "checkout.session.async_payment_failed":
	default:
		return payment.ProviderEvent{Type: string(event.Type), Relevant: false}, nil
	}

	var session stripelib.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return payment.ProviderEvent{}, fmt.Errorf("%w: %v", payment.ErrMalformedEvent, err)
	}

	paid := session.PaymentStatus == stripelib.CheckoutSessionPaymentStatusPaid &&
		event.Type != "checkout.session.async_payment_failed"

	return payment.ProviderEvent{
		Type:     string(event.Type),
		OrderID:  session.Metadata[metadataOrderKey],
		Paid:     paid,
		Relevant: true,
	}, nil
}
