package services

import (
	"context"

	"amazona/internal/domain"
	"amazona/internal/repos"
)

type InventoryService struct {
	Inv *repos.InventoryRepo
}

func NewInventoryService(inv *repos.InventoryRepo) *InventoryService {
	return &InventoryService{Inv: inv}
}

// CheckAvailability converts a stock count to IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *InventoryService) CheckAvailability(ctx context.Context, productID string) (domain.Availability, error) {
	stock, err := s.Inv.Stock(ctx, productID)
	if err == repos.ErrProductNotFound {
		// A typo'd id must not read as a sold-out product.
		return domain.Availability{}, &ProductsNotFoundError{IDs: []string{productID}}
	}
	if err != nil {
		return domain.Availability{}, err
	}

	status := "OUT_OF_STOCK"
	switch {
	case stock >= 5:
		status = "IN_STOCK"
	case stock > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Stock: stock}, nil
}

// Restock sets the stock level for a product (admin).
func (s *InventoryService) Restock(ctx context.Context, productID string, stock int) error {
	if stock < 0 {
		return ErrInvalidRequest
	}
	err := s.Inv.SetStock(ctx, productID, stock)
	if err == repos.ErrProductNotFound {
		return &ProductsNotFoundError{IDs: []string{productID}}
	}
	return err
}
