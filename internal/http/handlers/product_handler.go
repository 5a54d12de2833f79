package handlers

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"

	"amazona/internal/services"
	"amazona/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Inv     *services.InventoryService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	categoryID := strings.TrimSpace(c.Query("category"))
	if categoryID != "" {
		if _, ok := validate.ID(categoryID); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category"})
		}
	}
	products, err := h.Catalog.Products(c.UserContext(), strings.ToLower(q), categoryID,
		c.QueryInt("limit", 24), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, "products.list", err)
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	p, err := h.Catalog.Product(c.UserContext(), id)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err != nil {
		return respondError(c, "products.detail", err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.Categories(c.UserContext())
	if err != nil {
		return respondError(c, "categories.list", err)
	}
	return c.JSON(fiber.Map{"categories": cats})
}

func (h *ProductHandler) Availability(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Query("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	avail, err := h.Inv.CheckAvailability(c.UserContext(), id)
	if err != nil {
		return respondError(c, "availability.check", err)
	}
	return c.JSON(avail)
}
