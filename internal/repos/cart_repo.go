package repos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"amazona/internal/domain"
)

type CartRepo struct{ db DBTX }

func NewCartRepo(db DBTX) *CartRepo { return &CartRepo{db: db} }

// EnsureCart returns the user's cart id, creating an empty cart if none
// exists yet.
func (r *CartRepo) EnsureCart(ctx context.Context, userID string) (string, error) {
	var cartID string
	err := r.db.GetContext(ctx, &cartID, `SELECT id FROM carts WHERE user_id = ?`, userID)
	if err == nil {
		return cartID, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}
	cartID = uuid.NewString()
	_, err = r.db.ExecContext(ctx, `INSERT INTO carts(id,user_id,updated_at) VALUES(?,?,CURRENT_TIMESTAMP)`,
		cartID, userID)
	if err != nil {
		return "", err
	}
	return cartID, nil
}

func (r *CartRepo) UpsertItem(ctx context.Context, cartID, productID string, qty int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items(cart_id,product_id,qty,created_at)
		VALUES(?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,product_id) DO UPDATE
		SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, cartID, productID, qty)
	return err
}

func (r *CartRepo) RemoveItem(ctx context.Context, cartID, productID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`,
		cartID, productID)
	return err
}

// Items returns the cart lines joined with the current catalog price. The
// price is informational; placement re-reads prices inside its own
// transaction.
func (r *CartRepo) Items(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	var out []domain.CartItem
	err := r.db.SelectContext(ctx, &out, `
	  SELECT ci.product_id, p.title, ci.qty, p.price
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY p.title
	`, cartID)
	return out, err
}

// ClearByUser drops the user's cart and its items. A missing cart is not
// an error; placement calls this best-effort inside its transaction.
func (r *CartRepo) ClearByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items WHERE cart_id IN (SELECT id FROM carts WHERE user_id = ?)
	`, userID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = ?`, userID)
	return err
}
