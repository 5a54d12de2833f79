package handlers

import (
	"github.com/gofiber/fiber/v2"

	"amazona/internal/domain"
	applog "amazona/internal/log"
	"amazona/internal/repos"
	"amazona/internal/services"
	"amazona/internal/validate"
)

type AdminHandler struct {
	Orders *repos.OrderRepo
	Order  *services.OrderService
	Inv    *services.InventoryService
}

// GET /api/v1/admin/orders
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	ords, err := h.Orders.ListLatest(c.UserContext(), c.QueryInt("limit", 100))
	if err != nil {
		return respondError(c, "admin.orders.list", err)
	}
	return c.JSON(fiber.Map{"orders": ords})
}

// POST /api/v1/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing order id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	to := domain.OrderStatus(body.Status)
	if !to.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown status"})
	}
	if err := h.Order.AdvanceStatus(c.UserContext(), id, to); err != nil {
		return respondError(c, "admin.orders.update", err)
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": body.Status})
	return c.JSON(fiber.Map{"ok": true})
}

// POST /api/v1/admin/inventory
func (h *AdminHandler) Restock(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"productId"`
		Stock     int    `json:"stock"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	id, ok := validate.ID(body.ProductID)
	if !ok || body.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}
	if err := h.Inv.Restock(c.UserContext(), id, body.Stock); err != nil {
		return respondError(c, "admin.inventory.save", err)
	}
	applog.Audit(c, "admin.inventory.save", map[string]any{"product": id, "stock": body.Stock})
	return c.JSON(fiber.Map{"ok": true})
}
