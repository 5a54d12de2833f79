package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"amazona/internal/repos"
	"amazona/internal/services"
)

func TestCartFlow_AddViewRemove(t *testing.T) {
	db := placedb(t)
	svc := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))
	ctx := context.Background()

	// Fresh user starts with an empty cart.
	cv, err := svc.View(ctx, "u-fresh")
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 0 || !cv.Total.IsZero() {
		t.Fatalf("fresh cart should be empty: %+v", cv)
	}

	if err := svc.Add(ctx, "u-fresh", "tee-classic", 2); err != nil {
		t.Fatal(err)
	}
	// Adding the same product again accumulates quantity.
	if err := svc.Add(ctx, "u-fresh", "tee-classic", 1); err != nil {
		t.Fatal(err)
	}

	cv, err = svc.View(ctx, "u-fresh")
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 1 || cv.Items[0].Qty != 3 {
		t.Fatalf("bad cart view: %+v", cv)
	}
	if !cv.Total.Equal(decimal.RequireFromString("30.00")) {
		t.Fatalf("want total=30.00, got %s", cv.Total)
	}

	if err := svc.Remove(ctx, "u-fresh", "tee-classic"); err != nil {
		t.Fatal(err)
	}
	cv, _ = svc.View(ctx, "u-fresh")
	if len(cv.Items) != 0 {
		t.Fatalf("cart should be empty after remove: %+v", cv)
	}
}

func TestCartAdd_UnknownProduct(t *testing.T) {
	db := placedb(t)
	svc := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))

	err := svc.Add(context.Background(), "u-fresh", "no-such-product", 1)
	var notFound *services.ProductsNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("want ProductsNotFoundError, got %v", err)
	}
}
