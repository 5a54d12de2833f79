package services

import (
	"context"

	"amazona/internal/domain"
	"amazona/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.Cats.List(ctx)
}

func (s *CatalogService) Products(ctx context.Context, q, categoryID string, limit, offset int) ([]domain.Product, error) {
	if limit < 1 || limit > 100 {
		limit = 24
	}
	if offset < 0 {
		offset = 0
	}
	return s.Prods.List(ctx, q, categoryID, limit, offset)
}

func (s *CatalogService) Product(ctx context.Context, id string) (domain.Product, error) {
	return s.Prods.Get(ctx, id)
}
