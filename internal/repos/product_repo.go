package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"amazona/internal/domain"
)

type ProductRepo struct{ db DBTX }

func NewProductRepo(db DBTX) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `
	  SELECT
	    id, category_id, title, description, price, stock, images_json, active,
	    created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}

// ByIDs resolves a set of product ids in one query. Missing ids simply
// don't appear in the result; the caller decides what that means. Run on
// the placement transaction handle this reads the rows the later decrement
// will hit.
func (r *ProductRepo) ByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`
	  SELECT id, category_id, title, description, price, stock, images_json, active,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE id IN (?)
	`, ids)
	if err != nil {
		return nil, err
	}
	var out []domain.Product
	err = r.db.SelectContext(ctx, &out, query, args...)
	return out, err
}

func (r *ProductRepo) List(ctx context.Context, q, categoryID string, limit, offset int) ([]domain.Product, error) {
	where := `active = 1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	if categoryID != "" {
		where += ` AND category_id = ?`
		args = append(args, categoryID)
	}

	query := `
	  SELECT id, category_id, title, description, price, stock, images_json, active,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE ` + where + `
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Product
	err := r.db.SelectContext(ctx, &out, query, args...)
	return out, err
}
