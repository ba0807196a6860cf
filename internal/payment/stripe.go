// Package payment creates hosted checkout sessions for registrations.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"

	"github.com/vietanh2810/occurrence-registration-api/internal/config"
	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

var ErrGatewayDisabled = errors.New("payment gateway is not configured")

type StripeGateway struct {
	api        *client.API
	successURL string
	cancelURL  string
}

// NewStripeGateway returns a gateway backed by the Stripe API. Without a
// secret key every checkout fails with ErrGatewayDisabled, which callers
// report as a payment error.
func NewStripeGateway(conf *config.StripeConfig) *StripeGateway {
	g := &StripeGateway{
		successURL: conf.SuccessURL,
		cancelURL:  conf.CancelURL,
	}
	if conf.SecretKey != "" {
		g.api = &client.API{}
		g.api.Init(conf.SecretKey, nil)
	}

	return g
}

func (g *StripeGateway) CreateCheckout(ctx context.Context, req domain.CheckoutRequest) (domain.Checkout, error) {
	if g.api == nil {
		return domain.Checkout{}, ErrGatewayDisabled
	}

	session, err := g.api.CheckoutSessions.New(checkoutParams(ctx, req, g.successURL, g.cancelURL))
	if err != nil {
		return domain.Checkout{}, fmt.Errorf("g.api.CheckoutSessions.New -> %w", err)
	}

	return domain.Checkout{
		Reference: session.ID,
		URL:       session.URL,
	}, nil
}

func checkoutParams(ctx context.Context, req domain.CheckoutRequest, successURL, cancelURL string) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(req.UnitAmountCents),
				},
				Quantity: stripe.Int64(req.Quantity),
			},
		},
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(cancelURL),
		ClientReferenceID: stripe.String(strconv.FormatUint(uint64(req.RegistrationID), 10)),
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	return params
}
