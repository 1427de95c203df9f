// Package payments wraps the payment processor behind a narrow
// request/response interface. Gig creation obtains a payment intent here and
// payment confirmation verifies the intent server-side before any state
// transition; a client-reported payment reference is never trusted on its own.
package payments

import "context"

// Intent is a gateway-side handle for an in-progress charge. The client
// secret is handed to the browser to complete the charge.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type Gateway interface {
	// CreateIntent opens a charge for amount (smallest currency unit),
	// tagged with the gig it pays for.
	CreateIntent(ctx context.Context, amount int64, gigID uint) (*Intent, error)

	// VerifyIntent reports whether the charge behind intentID succeeded.
	VerifyIntent(ctx context.Context, intentID string) (bool, error)
}
