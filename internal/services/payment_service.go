package services

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"amazona/internal/payment"
	"amazona/internal/repos"
)

// PaymentService is the post-commit payment coordinator. It runs outside
// the placement transaction; a provider failure leaves the order PENDING
// and un-charged, and the stage can be retried with the same order id.
type PaymentService struct {
	Orders      *repos.OrderRepo
	Provider    payment.Provider // nil when no provider is configured
	ShippingFee decimal.Decimal
	TaxRate     decimal.Decimal
}

type Authorization struct {
	Ref          string
	ClientSecret string
	AmountCents  int64
}

// Authorize requests a payment authorization handle for a committed order
// owned by userID and records it on the order. A second call for the same
// order returns ErrAlreadyPaid.
func (s *PaymentService) Authorize(ctx context.Context, userID, orderID string) (Authorization, error) {
	if s.Provider == nil {
		return Authorization{}, ErrPaymentNotConfigured
	}

	o, _, err := s.Orders.Get(ctx, orderID)
	if err == sql.ErrNoRows {
		return Authorization{}, ErrOrderNotFound
	}
	if err != nil {
		return Authorization{}, err
	}
	// A foreign order is indistinguishable from a missing one.
	if o.UserID != userID {
		return Authorization{}, ErrOrderNotFound
	}
	if o.PaymentRef != "" {
		return Authorization{}, ErrAlreadyPaid
	}

	cents := ChargeAmountCents(o.Total, s.TaxRate, s.ShippingFee)
	intent, err := s.Provider.CreateIntent(ctx, orderID, cents)
	if err != nil {
		return Authorization{}, &ProviderError{Err: err}
	}

	ok, err := s.Orders.SetPaymentRef(ctx, orderID, intent.Ref)
	if err != nil {
		return Authorization{}, err
	}
	if !ok {
		// Lost a race with another authorization attempt. The provider
		// side is idempotent on the order id, so nothing was charged
		// twice.
		return Authorization{}, ErrAlreadyPaid
	}

	return Authorization{Ref: intent.Ref, ClientSecret: intent.ClientSecret, AmountCents: cents}, nil
}
