package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "amazona/internal/log"
	"amazona/internal/services"
)

// respondError maps the service error taxonomy onto the API contract.
// Anything unrecognized is a persistence/infrastructure fault: the
// transaction already rolled back, the caller may retry, and no internals
// leak into the response.
func respondError(c *fiber.Ctx, action string, err error) error {
	var notFound *services.ProductsNotFoundError
	var short *services.InsufficientStockError
	var provider *services.ProviderError

	switch {
	case errors.Is(err, services.ErrInvalidRequest):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    err.Error(),
			"products": notFound.IDs,
		})
	case errors.As(err, &short):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    err.Error(),
			"products": short.IDs,
		})
	case errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyPaid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	case errors.Is(err, services.ErrPaymentNotConfigured):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &provider):
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "payment provider unavailable"})
	}

	applog.Error(c, action, err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong, please try again"})
}
