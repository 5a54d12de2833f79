package services

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"amazona/internal/domain"
	"amazona/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

func (s *CartService) Add(ctx context.Context, userID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	p, err := s.Prods.Get(ctx, productID)
	if err == sql.ErrNoRows {
		return &ProductsNotFoundError{IDs: []string{productID}}
	}
	if err != nil {
		return err
	}
	if !p.Active {
		return &ProductsNotFoundError{IDs: []string{productID}}
	}
	cartID, err := s.Carts.EnsureCart(ctx, userID)
	if err != nil {
		return err
	}
	return s.Carts.UpsertItem(ctx, cartID, productID, qty)
}

func (s *CartService) Remove(ctx context.Context, userID, productID string) error {
	cartID, err := s.Carts.EnsureCart(ctx, userID)
	if err != nil {
		return err
	}
	return s.Carts.RemoveItem(ctx, cartID, productID)
}

type CartView struct {
	Items []domain.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

func (s *CartService) View(ctx context.Context, userID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(ctx, userID)
	if err != nil {
		return CartView{}, err
	}
	items, err := s.Carts.Items(ctx, cartID)
	if err != nil {
		return CartView{}, err
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	return CartView{Items: items, Total: total}, nil
}
