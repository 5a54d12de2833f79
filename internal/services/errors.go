package services

import (
	"errors"
	"strings"
)

var (
	ErrBadCreds = errors.New("invalid email or password")

	// Placement
	ErrInvalidRequest = errors.New("invalid order request")

	// Payment stage. A payment failure never invalidates the committed
	// order; it stays PENDING and the stage can be retried.
	ErrOrderNotFound        = errors.New("order not found")
	ErrAlreadyPaid          = errors.New("order is already paid")
	ErrPaymentNotConfigured = errors.New("payment processing not configured")

	// Fulfillment
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ProductsNotFoundError reports order lines whose product ids do not
// resolve. The caller should refresh its cart.
type ProductsNotFoundError struct {
	IDs []string
}

func (e *ProductsNotFoundError) Error() string {
	return "products not found: " + strings.Join(e.IDs, ", ")
}

// InsufficientStockError reports order lines that asked for more than the
// remaining stock. A legitimate outcome under contention; safe to retry
// with reduced quantities.
type InsufficientStockError struct {
	IDs []string
}

func (e *InsufficientStockError) Error() string {
	return "insufficient stock for products: " + strings.Join(e.IDs, ", ")
}

// ProviderError wraps a failure from the external payment provider.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string { return "payment provider: " + e.Err.Error() }
func (e *ProviderError) Unwrap() error { return e.Err }
