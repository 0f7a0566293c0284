package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthfolio/next-comic-store/internal/application/payment"
)

const testSecret = "whsec_test_secret"

// sign produces a Stripe-Signature header value for the payload, using the
// same t=...,v1=... scheme the provider uses.
func sign(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func eventPayload(eventType, paymentStatus, orderID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"api_version": "2023-10-16",
		"type": %q,
		"data": {
			"object": {
				"id": "cs_test_1",
				"payment_status": %q,
				"metadata": {"order_id": %q}
			}
		}
	}`, eventType, paymentStatus, orderID))
}

func TestVerifyEvent_CompletedSession(t *testing.T) {
	verifier := NewWebhookVerifier(testSecret)
	payload := eventPayload("checkout.session.completed", "paid", "order-1")

	event, err := verifier.VerifyEvent(payload, sign(payload, testSecret, time.Now()))
	require.NoError(t, err)

	assert.True(t, event.Relevant)
	assert.True(t, event.Paid)
	assert.Equal(t, "order-1", event.OrderID)
	assert.Equal(t, "checkout.session.completed", event.Type)
}

func TestVerifyEvent_UnpaidSession(t *testing.T) {
	verifier := NewWebhookVerifier(testSecret)
	payload := eventPayload("checkout.session.completed", "unpaid", "order-1")

	event, err := verifier.VerifyEvent(payload, sign(payload, testSecret, time.Now()))
	require.NoError(t, err)

	assert.True(t, event.Relevant)
	assert.False(t, event.Paid)
}

func TestVerifyEvent_AsyncPaymentFailed(t *testing.T) {
	verifier := NewWebhookVerifier(testSecret)
	payload := eventPayload("checkout.session.async_payment_failed", "paid", "order-1")

	event, err := verifier.VerifyEvent(payload, sign(payload, testSecret, time.Now()))
	require.NoError(t, err)

	assert.True(t, event.Relevant)
	assert.False(t, event.Paid, "async failure is never treated as paid")
}

func TestVerifyEvent_IrrelevantType(t *testing.T) {
	verifier := NewWebhookVerifier(testSecret)
	payload := eventPayload("invoice.created", "paid", "order-1")

	event, err := verifier.VerifyEvent(payload, sign(payload, testSecret, time.Now()))
	require.NoError(t, err)

	assert.False(t, event.Relevant)
	assert.Empty(t, event.OrderID)
}

func TestVerifyEvent_WrongSecret(t *testing.T) {
	verifier := NewWebhookVerifier(testSecret)
	payload := eventPayload("checkout.session.completed", "paid", "order-1")

	_, err := verifier.VerifyEvent(payload, sign(payload, "whsec_other", time.Now()))
	assert.ErrorIs(t, err, payment.ErrSignatureInvalid)
}

func TestVerifyEvent_StaleTimestamp(t *testing.T) {
	verifier := NewWebhookVerifier(testSecret)
	payload := eventPayload("checkout.session.completed", "paid", "order-1")

	_, err := verifier.VerifyEvent(payload, sign(payload, testSecret, time.Now().Add(-time.Hour)))
	assert.ErrorIs(t, err, payment.ErrSignatureInvalid)
}

func TestVerifyEvent_GarbageHeader(t *testing.T) {
	verifier := NewWebhookVerifier(testSecret)

	_, err := verifier.VerifyEvent([]byte(`{}`), "not-a-signature")
	assert.ErrorIs(t, err, payment.ErrSignatureInvalid)
}
