package repos

import (
	"context"

	"github.com/shopspring/decimal"

	"amazona/internal/domain"
)

type OrderRepo struct{ db DBTX }

func NewOrderRepo(db DBTX) *OrderRepo { return &OrderRepo{db: db} }

// ---------- Aggregate writes (run on the placement transaction) ----------

func (r *OrderRepo) InsertAddress(ctx context.Context, a domain.Address) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO addresses(id, user_id, street, city, state, postal_code, country)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.UserID, a.Street, a.City, a.State, a.PostalCode, a.Country)
	return err
}

func (r *OrderRepo) Insert(ctx context.Context, o domain.Order) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO orders(id, user_id, address_id, total, status, created_at)
	  VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, o.ID, o.UserID, o.AddressID, o.Total, o.Status)
	return err
}

func (r *OrderRepo) InsertItem(ctx context.Context, it domain.OrderItem) error {
	_, err := r.db.ExecContext(ctx, `
	  INSERT INTO order_items(id, order_id, product_id, qty, price)
	  VALUES(?, ?, ?, ?, ?)
	`, it.ID, it.OrderID, it.ProductID, it.Qty, it.Price)
	return err
}

// ---------- Reads ----------

type OrderItemDetail struct {
	ProductID string          `db:"product_id" json:"productId"`
	Title     string          `db:"title" json:"title"`
	Qty       int             `db:"qty" json:"quantity"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Subtotal  decimal.Decimal `db:"subtotal" json:"subtotal"`
}

func (r *OrderRepo) Get(ctx context.Context, orderID string) (domain.Order, []OrderItemDetail, error) {
	var o domain.Order
	if err := r.db.GetContext(ctx, &o, `
		SELECT id, user_id, address_id, total, status, COALESCE(payment_ref,'') AS payment_ref,
		       created_at, COALESCE(updated_at,'') AS updated_at
		FROM orders
		WHERE id = ?
	`, orderID); err != nil {
		return domain.Order{}, nil, err
	}

	var items []OrderItemDetail
	if err := r.db.SelectContext(ctx, &items, `
		SELECT oi.product_id, p.title, oi.qty, oi.price, (oi.qty * oi.price) AS subtotal
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ?
		ORDER BY p.title
	`, orderID); err != nil {
		return domain.Order{}, nil, err
	}

	return o, items, nil
}

func (r *OrderRepo) Address(ctx context.Context, addressID string) (domain.Address, error) {
	var a domain.Address
	err := r.db.GetContext(ctx, &a, `
		SELECT id, user_id, street, city, state, postal_code, country
		FROM addresses
		WHERE id = ?
	`, addressID)
	return a, err
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, user_id, address_id, total, status, COALESCE(payment_ref,'') AS payment_ref,
		       created_at, COALESCE(updated_at,'') AS updated_at
		FROM orders
		WHERE user_id = ?
		ORDER BY datetime(created_at) DESC
	`, userID)
	return out, err
}

func (r *OrderRepo) ListLatest(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, user_id, address_id, total, status, COALESCE(payment_ref,'') AS payment_ref,
		       created_at, COALESCE(updated_at,'') AS updated_at
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

// ---------- Follow-up writes (outside the placement transaction) ----------

// UpdateStatus moves an order from one status to another. The current
// status is part of the predicate so two racing transitions cannot both
// apply. Returns false when the order was not in `from` anymore.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`, to, orderID, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SetPaymentRef records the provider's authorization handle, but only if
// none was recorded before. Returns false when the order already carries
// one.
func (r *OrderRepo) SetPaymentRef(ctx context.Context, orderID, ref string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET payment_ref = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND payment_ref IS NULL
	`, ref, orderID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
