package services

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"amazona/internal/domain"
	"amazona/internal/repos"
)

type PlaceLine struct {
	ProductID string
	Qty       int
}

type PlaceAddress struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

type PlaceRequest struct {
	Items   []PlaceLine
	Address PlaceAddress
}

// OrderService owns the placement transaction: validate, price, persist
// the order aggregate, reserve stock, clear the cart, commit. Everything
// between BeginTxx and Commit either lands together or not at all.
type OrderService struct {
	db *sqlx.DB
}

func NewOrderService(db *sqlx.DB) *OrderService { return &OrderService{db: db} }

// Place converts the request into a persisted order and returns its id.
// The payment stage is deliberately not part of this: a network call to
// the provider must never sit inside a database transaction.
func (s *OrderService) Place(ctx context.Context, userID string, req PlaceRequest) (string, error) {
	lines, err := normalizeLines(req.Items)
	if err != nil {
		return "", err
	}
	if !addressComplete(req.Address) {
		return "", ErrInvalidRequest
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	products := repos.NewProductRepo(tx)
	inv := repos.NewInventoryRepo(tx)
	orders := repos.NewOrderRepo(tx)
	carts := repos.NewCartRepo(tx)

	ids := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}
	prods, err := products.ByIDs(ctx, ids)
	if err != nil {
		return "", err
	}
	byID := make(map[string]domain.Product, len(prods))
	for _, p := range prods {
		byID[p.ID] = p
	}
	var missing []string
	for _, l := range lines {
		if _, ok := byID[l.ProductID]; !ok {
			missing = append(missing, l.ProductID)
		}
	}
	if len(missing) > 0 {
		return "", &ProductsNotFoundError{IDs: missing}
	}

	// Stock pre-check for an informative error listing every offending
	// line. Not authoritative: stock can move between this read and the
	// decrement, which is why Reserve re-checks below.
	var short []string
	for _, l := range lines {
		if byID[l.ProductID].Stock < l.Qty {
			short = append(short, l.ProductID)
		}
	}
	if len(short) > 0 {
		return "", &InsufficientStockError{IDs: short}
	}

	priced := make([]PricedLine, len(lines))
	for i, l := range lines {
		priced[i] = PricedLine{Product: byID[l.ProductID], Qty: l.Qty}
	}
	total := OrderTotal(priced)

	addr := domain.Address{
		ID:         uuid.NewString(),
		UserID:     userID,
		Street:     req.Address.Street,
		City:       req.Address.City,
		State:      req.Address.State,
		PostalCode: req.Address.PostalCode,
		Country:    req.Address.Country,
	}
	if err := orders.InsertAddress(ctx, addr); err != nil {
		return "", err
	}

	orderID := uuid.NewString()
	if err := orders.Insert(ctx, domain.Order{
		ID:        orderID,
		UserID:    userID,
		AddressID: addr.ID,
		Total:     total,
		Status:    domain.OrderPending,
	}); err != nil {
		return "", err
	}
	for _, pl := range priced {
		if err := orders.InsertItem(ctx, domain.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			ProductID: pl.Product.ID,
			Qty:       pl.Qty,
			Price:     pl.Product.Price,
		}); err != nil {
			return "", err
		}
	}

	// Authoritative stock claim. A failure here aborts the whole
	// transaction, staged order rows included; an order must never exist
	// against stock it could not take.
	for _, l := range lines {
		if err := inv.Reserve(ctx, l.ProductID, l.Qty); err != nil {
			switch err {
			case repos.ErrInsufficientStock:
				return "", &InsufficientStockError{IDs: []string{l.ProductID}}
			case repos.ErrProductNotFound:
				return "", &ProductsNotFoundError{IDs: []string{l.ProductID}}
			}
			return "", err
		}
	}

	if err := carts.ClearByUser(ctx, userID); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return orderID, nil
}

// AdvanceStatus applies a fulfillment transition, honoring the order
// lifecycle state machine.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID string, to domain.OrderStatus) error {
	orders := repos.NewOrderRepo(s.db)
	o, _, err := orders.Get(ctx, orderID)
	if err == sql.ErrNoRows {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	if !o.Status.CanTransition(to) {
		return ErrInvalidTransition
	}
	ok, err := orders.UpdateStatus(ctx, orderID, o.Status, to)
	if err != nil {
		return err
	}
	if !ok {
		// Someone moved the order between our read and write.
		return ErrInvalidTransition
	}
	return nil
}

// normalizeLines rejects empty and malformed item lists and merges
// duplicate product ids into a single line.
func normalizeLines(items []PlaceLine) ([]PlaceLine, error) {
	if len(items) == 0 {
		return nil, ErrInvalidRequest
	}
	merged := map[string]int{}
	order := []string{}
	for _, it := range items {
		if it.ProductID == "" || it.Qty < 1 {
			return nil, ErrInvalidRequest
		}
		if _, seen := merged[it.ProductID]; !seen {
			order = append(order, it.ProductID)
		}
		merged[it.ProductID] += it.Qty
	}
	sort.Strings(order)
	out := make([]PlaceLine, len(order))
	for i, id := range order {
		out[i] = PlaceLine{ProductID: id, Qty: merged[id]}
	}
	return out, nil
}

func addressComplete(a PlaceAddress) bool {
	return a.Street != "" && a.City != "" && a.State != "" && a.PostalCode != "" && a.Country != ""
}
