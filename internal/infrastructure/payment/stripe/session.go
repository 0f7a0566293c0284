package stripe

import (
	"context"
	"fmt"
	"math"

	stripelib "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"

	"github.com/growthfolio/next-comic-store/internal/config"
	domain "github.com/growthfolio/next-comic-store/internal/domain/order"
)

// SessionClient creates hosted checkout sessions. The order id travels in
// session metadata so the webhook can find its way back.
type SessionClient struct {
	baseURL  string
	currency string
}

func NewSessionClient(cfg config.PaymentConfig) *SessionClient {
	stripelib.Key = cfg.StripeKey
	return &SessionClient{
		baseURL:  cfg.BaseURL,
		currency: cfg.Currency,
	}
}

func (c *SessionClient) StartSession(ctx context.Context, o *domain.Order) (string, error) {
	lineItems := make([]*stripelib.CheckoutSessionLineItemParams, 0, len(o.Items))
	for _, item := range o.Items {
		productData := &stripelib.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripelib.String(item.Title),
		}
		if item.ImageURL != "" {
			productData.Images = stripelib.StringSlice([]string{item.ImageURL})
		}
		lineItems = append(lineItems, &stripelib.CheckoutSessionLineItemParams{
			PriceData: &stripelib.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripelib.String(c.currency),
				ProductData: productData,
				UnitAmount:  stripelib.Int64(toCents(item.Price)),
			},
			Quantity: stripelib.Int64(int64(item.Quantity)),
		})
	}

	params := &stripelib.CheckoutSessionParams{
		PaymentMethodTypes: stripelib.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripelib.String(string(stripelib.CheckoutSessionModePayment)),
		SuccessURL:         stripelib.String(fmt.Sprintf("%s/payment-success?order_id=%s&session_id={CHECKOUT_SESSION_ID}", c.baseURL, o.ID)),
		CancelURL:          stripelib.String(c.baseURL + "/checkout"),
	}
	params.Context = ctx
	params.AddMetadata(metadataOrderKey, o.ID)

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}

func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}
