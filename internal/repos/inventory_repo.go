package repos

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product not found")
)

// InventoryRepo is the stock ledger over products.stock.
type InventoryRepo struct{ db DBTX }

func NewInventoryRepo(db DBTX) *InventoryRepo { return &InventoryRepo{db: db} }

// Stock returns the current count for a product.
// Returns ErrProductNotFound if the id does not resolve.
func (r *InventoryRepo) Stock(ctx context.Context, productID string) (int, error) {
	var stock int
	err := r.db.GetContext(ctx, &stock, `SELECT stock FROM products WHERE id = ?`, productID)
	if err == sql.ErrNoRows {
		return 0, ErrProductNotFound
	}
	if err != nil {
		return 0, err
	}
	return stock, nil
}

// Reserve subtracts qty only if that much stock remains: the check and the
// write are one statement, so two orders racing for the last unit cannot
// both win. Zero rows affected means either the product is gone or the
// stock ran out; the probe below tells the two apart. No write happens on
// failure.
func (r *InventoryRepo) Reserve(ctx context.Context, productID string, qty int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND stock >= ?
	`, qty, productID, qty)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var one int
		if err := r.db.GetContext(ctx, &one, `SELECT 1 FROM products WHERE id = ?`, productID); err != nil {
			if err == sql.ErrNoRows {
				return ErrProductNotFound
			}
			return err
		}
		return ErrInsufficientStock
	}
	return nil
}

// SetStock sets the count for a product (admin restock).
func (r *InventoryRepo) SetStock(ctx context.Context, productID string, stock int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET stock = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, stock, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}
