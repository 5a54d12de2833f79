package handlers

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "amazona/internal/log"
	"amazona/internal/repos"
	"amazona/internal/services"
	"amazona/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
	Repo  *repos.OrderRepo

	// PlaceTimeout bounds the placement transaction; on expiry the caller
	// gets a retryable failure instead of waiting on a lock forever.
	PlaceTimeout time.Duration
}

type placeItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	// Price is accepted for wire compatibility and deliberately ignored;
	// pricing only ever uses the server-side catalog.
	Price float64 `json:"price"`
}

type placeBody struct {
	Items           []placeItem `json:"items"`
	ShippingAddress struct {
		Street     string `json:"street"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postalCode"`
		Country    string `json:"country"`
	} `json:"shippingAddress"`
}

// Place is the placement entrypoint: one atomic unit converting the
// request into an order, then the caller separately invokes the payment
// stage with the returned id.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	u := currentUser(c)

	var body placeBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	req, ok := buildPlaceRequest(body)
	if !ok {
		applog.Security(c, "order.place.validation.fail", map[string]any{"user_id": u.ID})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	timeout := h.PlaceTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
	defer cancel()

	orderID, err := h.Order.Place(ctx, u.ID, req)
	if err != nil {
		applog.Security(c, "order.place.fail", map[string]any{"user_id": u.ID, "error": err.Error()})
		return respondError(c, "order.place", err)
	}

	applog.Audit(c, "order.place", map[string]any{"order_id": orderID, "user_id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"orderId": orderID})
}

func buildPlaceRequest(body placeBody) (services.PlaceRequest, bool) {
	var req services.PlaceRequest
	for _, it := range body.Items {
		id, ok := validate.ID(it.ProductID)
		if !ok || !validate.LineQty(it.Quantity) {
			return req, false
		}
		req.Items = append(req.Items, services.PlaceLine{ProductID: id, Qty: it.Quantity})
	}

	a := body.ShippingAddress
	street, ok1 := validate.Text(a.Street, 100)
	city, ok2 := validate.Text(a.City, 50)
	state, ok3 := validate.Text(a.State, 50)
	postal, ok4 := validate.PostalCode(a.PostalCode)
	country, ok5 := validate.Text(a.Country, 56)
	if !(ok1 && ok2 && ok3 && ok4 && ok5) {
		return req, false
	}
	req.Address = services.PlaceAddress{
		Street: street, City: city, State: state, PostalCode: postal, Country: country,
	}
	return req, true
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}

	o, items, err := h.Repo.Get(c.UserContext(), oid)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}
	if err != nil {
		return respondError(c, "order.view", err)
	}

	// Ownership check; admins may view any order. A foreign order reads
	// as missing.
	u := currentUser(c)
	if o.UserID != u.ID && u.Role != "ADMIN" {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid, "user_id": u.ID})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
	}

	addr, err := h.Repo.Address(c.UserContext(), o.AddressID)
	if err != nil {
		return respondError(c, "order.view", err)
	}
	return c.JSON(fiber.Map{"order": o, "items": items, "shippingAddress": addr})
}

// History lists orders for the current logged-in user.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Repo.ListByUser(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return respondError(c, "orders.history", err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}
