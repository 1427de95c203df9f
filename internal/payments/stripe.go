package payments

import (
	"context"
	"fmt"
	"strconv"
	"time"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const requestTimeout = 10 * time.Second

type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, gigID uint) (*Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	params.Context = ctx
	params.AddMetadata("gig_id", strconv.FormatUint(uint64(gigID), 10))

	intent, err := g.api.PaymentIntents.New(params)

	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &Intent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (g *StripeGateway) VerifyIntent(ctx context.Context, intentID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.Get(intentID, params)

	if err != nil {
		return false, fmt.Errorf("retrieve payment intent: %w", err)
	}

	return intent.Status == stripe.PaymentIntentStatusSucceeded, nil
}
