package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "amazona/internal/log"
	"amazona/internal/services"
	"amazona/internal/validate"
)

type PaymentHandler struct {
	Payments *services.PaymentService
}

// Authorize runs the payment stage for a committed order. Independent of
// the placement transaction: a failure here leaves the order intact and
// the call can be retried.
func (h *PaymentHandler) Authorize(c *fiber.Ctx) error {
	var body struct {
		OrderID string `json:"orderId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	oid, ok := validate.ID(body.OrderID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "orderId is required"})
	}

	u := currentUser(c)
	auth, err := h.Payments.Authorize(c.UserContext(), u.ID, oid)
	if err != nil {
		return respondError(c, "payment.authorize", err)
	}

	applog.Audit(c, "payment.authorize", map[string]any{
		"order_id": oid, "user_id": u.ID, "amount_cents": auth.AmountCents,
	})
	return c.JSON(fiber.Map{
		"paymentRef":   auth.Ref,
		"clientSecret": auth.ClientSecret,
		"amountCents":  auth.AmountCents,
	})
}
