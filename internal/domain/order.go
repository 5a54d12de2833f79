package domain

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransition enforces the fulfillment lifecycle:
// PENDING -> PROCESSING -> SHIPPED -> DELIVERED, with CANCELLED reachable
// from any non-terminal state.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if !to.Valid() || s.Terminal() {
		return false
	}
	if to == OrderCancelled {
		return true
	}
	switch s {
	case OrderPending:
		return to == OrderProcessing
	case OrderProcessing:
		return to == OrderShipped
	case OrderShipped:
		return to == OrderDelivered
	}
	return false
}

type Order struct {
	ID         string          `db:"id" json:"id"`
	UserID     string          `db:"user_id" json:"userId"`
	AddressID  string          `db:"address_id" json:"addressId"`
	Total      decimal.Decimal `db:"total" json:"total"`
	Status     OrderStatus     `db:"status" json:"status"`
	PaymentRef string          `db:"payment_ref" json:"paymentRef,omitempty"`
	CreatedAt  string          `db:"created_at" json:"createdAt"`
	UpdatedAt  string          `db:"updated_at" json:"updatedAt,omitempty"`
}

// OrderItem carries the unit price snapshotted at placement time; later
// catalog price changes do not reach back into it.
type OrderItem struct {
	ID        string          `db:"id" json:"id"`
	OrderID   string          `db:"order_id" json:"orderId"`
	ProductID string          `db:"product_id" json:"productId"`
	Qty       int             `db:"qty" json:"quantity"`
	Price     decimal.Decimal `db:"price" json:"price"`
}
