package payment

import "context"

// Intent is the provider's authorization handle for an in-progress charge.
// Ref is persisted onto the order; ClientSecret goes back to the caller to
// complete the charge on its side.
type Intent struct {
	Ref          string
	ClientSecret string
}

// Provider requests an authorization hold from the external payment
// network. amountCents is the final charged amount in minor units. orderID
// doubles as the idempotency key so a retried request cannot open a second
// hold.
type Provider interface {
	CreateIntent(ctx context.Context, orderID string, amountCents int64) (Intent, error)
}
