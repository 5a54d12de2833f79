package handlers

import (
	"github.com/jmoiron/sqlx"

	"amazona/internal/config"
	"amazona/internal/payment"
	"amazona/internal/repos"
	"amazona/internal/services"
)

type Deps struct {
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	PaymentHandler *PaymentHandler
	AdminHandler   *AdminHandler

	Auth *services.AuthService
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)

	authSvc := &services.AuthService{Users: userRepo}
	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	invSvc := services.NewInventoryService(invRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(db)

	var provider payment.Provider
	if cfg.StripeKey != "" {
		provider = payment.NewStripeProvider(cfg.StripeKey)
	}
	paySvc := &services.PaymentService{
		Orders:      orderRepo,
		Provider:    provider,
		ShippingFee: cfg.ShippingFee,
		TaxRate:     cfg.TaxRate,
	}

	return &Deps{
		AuthHandler:    &AuthHandler{Auth: authSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc, Inv: invSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Order: orderSvc, Repo: orderRepo, PlaceTimeout: cfg.PlaceTimeout},
		PaymentHandler: &PaymentHandler{Payments: paySvc},
		AdminHandler:   &AdminHandler{Orders: orderRepo, Order: orderSvc, Inv: invSvc},
		Auth:           authSvc,
	}
}
