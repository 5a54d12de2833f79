package services_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"amazona/internal/domain"
	"amazona/internal/repos"
	"amazona/internal/services"
)

// placedb builds a file-backed store so concurrent transactions behave
// like production: immediate write locks plus a bounded busy wait.
func placedb(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "amazona_test.db") +
		"?_txlock=immediate&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	schema := `
	CREATE TABLE products(
	  id TEXT PRIMARY KEY, category_id TEXT, title TEXT, description TEXT,
	  price NUMERIC, stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
	  images_json TEXT, active INTEGER DEFAULT 1,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP, updated_at TEXT);
	CREATE TABLE carts(id TEXT PRIMARY KEY, user_id TEXT UNIQUE NOT NULL, updated_at TEXT);
	CREATE TABLE cart_items(cart_id TEXT, product_id TEXT, qty INTEGER,
	  created_at TEXT, updated_at TEXT, PRIMARY KEY (cart_id, product_id));
	CREATE TABLE addresses(id TEXT PRIMARY KEY, user_id TEXT, street TEXT, city TEXT,
	  state TEXT, postal_code TEXT, country TEXT, created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE orders(id TEXT PRIMARY KEY, user_id TEXT, address_id TEXT, total NUMERIC,
	  status TEXT NOT NULL DEFAULT 'PENDING', payment_ref TEXT,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP, updated_at TEXT);
	CREATE TABLE order_items(id TEXT PRIMARY KEY, order_id TEXT, product_id TEXT,
	  qty INTEGER, price NUMERIC);

	INSERT INTO products(id,category_id,title,description,price,stock,images_json) VALUES
	  ('tee-classic','t-shirts','Classic Crew Tee','','10.00',5,'[]'),
	  ('jeans-slim','jeans','Slim Fit Jeans','','59.00',1,'[]'),
	  ('shoes-runner','shoes','Road Runner Sneakers','','89.99',3,'[]');

	INSERT INTO carts(id,user_id) VALUES ('c1','u-user');
	INSERT INTO cart_items(cart_id,product_id,qty) VALUES ('c1','tee-classic',2);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

var testAddr = services.PlaceAddress{
	Street: "1 Main St", City: "College Park", State: "MD",
	PostalCode: "20742", Country: "US",
}

func count(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM `+table); err != nil {
		t.Fatal(err)
	}
	return n
}

func stockOf(t *testing.T, db *sqlx.DB, productID string) int {
	t.Helper()
	var n int
	if err := db.Get(&n, `SELECT stock FROM products WHERE id=?`, productID); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestPlace_Success(t *testing.T) {
	db := placedb(t)
	svc := services.NewOrderService(db)
	ctx := context.Background()

	orderID, err := svc.Place(ctx, "u-user", services.PlaceRequest{
		Items:   []services.PlaceLine{{ProductID: "tee-classic", Qty: 2}},
		Address: testAddr,
	})
	if err != nil {
		t.Fatal(err)
	}
	if orderID == "" {
		t.Fatal("no order id")
	}

	o, items, err := repos.NewOrderRepo(db).Get(ctx, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != domain.OrderPending {
		t.Fatalf("want PENDING, got %s", o.Status)
	}
	if !o.Total.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("want total=20.00, got %s", o.Total)
	}
	if len(items) != 1 || items[0].Qty != 2 || !items[0].Price.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("bad items: %+v", items)
	}
	if got := stockOf(t, db, "tee-classic"); got != 3 {
		t.Fatalf("want stock=3, got %d", got)
	}
	if n := count(t, db, "cart_items"); n != 0 {
		t.Fatalf("cart should be emptied, %d items left", n)
	}
	if n := count(t, db, "addresses"); n != 1 {
		t.Fatalf("want 1 address row, got %d", n)
	}
}

// The price snapshot on an order item survives later catalog changes.
func TestPlace_PriceSnapshotImmutable(t *testing.T) {
	db := placedb(t)
	svc := services.NewOrderService(db)
	ctx := context.Background()

	orderID, err := svc.Place(ctx, "u-user", services.PlaceRequest{
		Items:   []services.PlaceLine{{ProductID: "tee-classic", Qty: 1}},
		Address: testAddr,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := db.Exec(`UPDATE products SET price='99.00' WHERE id='tee-classic'`); err != nil {
		t.Fatal(err)
	}

	_, items, err := repos.NewOrderRepo(db).Get(ctx, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if !items[0].Price.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("snapshot changed with catalog: %s", items[0].Price)
	}
}

func TestPlace_InsufficientStock(t *testing.T) {
	db := placedb(t)
	svc := services.NewOrderService(db)

	// jeans-slim has stock 1
	_, err := svc.Place(context.Background(), "u-user", services.PlaceRequest{
		Items:   []services.PlaceLine{{ProductID: "jeans-slim", Qty: 2}},
		Address: testAddr,
	})
	var short *services.InsufficientStockError
	if !errors.As(err, &short) {
		t.Fatalf("want InsufficientStockError, got %v", err)
	}
	if len(short.IDs) != 1 || short.IDs[0] != "jeans-slim" {
		t.Fatalf("want offending id jeans-slim, got %v", short.IDs)
	}

	if got := stockOf(t, db, "jeans-slim"); got != 1 {
		t.Fatalf("stock must be untouched, got %d", got)
	}
	if n := count(t, db, "orders"); n != 0 {
		t.Fatalf("no order row expected, got %d", n)
	}
	if n := count(t, db, "cart_items"); n != 1 {
		t.Fatalf("cart must be untouched on failure, got %d items", n)
	}
}

func TestPlace_UnknownProduct(t *testing.T) {
	db := placedb(t)
	svc := services.NewOrderService(db)

	_, err := svc.Place(context.Background(), "u-user", services.PlaceRequest{
		Items: []services.PlaceLine{
			{ProductID: "tee-classic", Qty: 1},
			{ProductID: "no-such-product", Qty: 1},
		},
		Address: testAddr,
	})
	var notFound *services.ProductsNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("want ProductsNotFoundError, got %v", err)
	}
	if len(notFound.IDs) != 1 || notFound.IDs[0] != "no-such-product" {
		t.Fatalf("want offending id no-such-product, got %v", notFound.IDs)
	}

	if n := count(t, db, "orders"); n != 0 {
		t.Fatalf("no rows must commit, got %d orders", n)
	}
	if got := stockOf(t, db, "tee-classic"); got != 5 {
		t.Fatalf("stock must be untouched, got %d", got)
	}
}

// One short line sinks the whole order, including lines that individually
// had plenty of stock.
func TestPlace_PartialShortageAbortsAll(t *testing.T) {
	db := placedb(t)
	svc := services.NewOrderService(db)

	_, err := svc.Place(context.Background(), "u-user", services.PlaceRequest{
		Items: []services.PlaceLine{
			{ProductID: "tee-classic", Qty: 1},
			{ProductID: "jeans-slim", Qty: 2}, // short: stock 1
			{ProductID: "shoes-runner", Qty: 1},
		},
		Address: testAddr,
	})
	var short *services.InsufficientStockError
	if !errors.As(err, &short) {
		t.Fatalf("want InsufficientStockError, got %v", err)
	}

	if n := count(t, db, "orders"); n != 0 {
		t.Fatalf("zero rows expected, got %d orders", n)
	}
	if n := count(t, db, "order_items"); n != 0 {
		t.Fatalf("zero rows expected, got %d order_items", n)
	}
	if n := count(t, db, "addresses"); n != 0 {
		t.Fatalf("zero rows expected, got %d addresses", n)
	}
	for id, want := range map[string]int{"tee-classic": 5, "jeans-slim": 1, "shoes-runner": 3} {
		if got := stockOf(t, db, id); got != want {
			t.Fatalf("%s: stock must be untouched, want %d got %d", id, want, got)
		}
	}
}

func TestPlace_InvalidInput(t *testing.T) {
	db := placedb(t)
	svc := services.NewOrderService(db)
	ctx := context.Background()

	if _, err := svc.Place(ctx, "u-user", services.PlaceRequest{Address: testAddr}); err != services.ErrInvalidRequest {
		t.Fatalf("empty items: want ErrInvalidRequest, got %v", err)
	}
	if _, err := svc.Place(ctx, "u-user", services.PlaceRequest{
		Items: []services.PlaceLine{{ProductID: "tee-classic", Qty: 1}},
	}); err != services.ErrInvalidRequest {
		t.Fatalf("missing address: want ErrInvalidRequest, got %v", err)
	}
	if _, err := svc.Place(ctx, "u-user", services.PlaceRequest{
		Items:   []services.PlaceLine{{ProductID: "tee-classic", Qty: 0}},
		Address: testAddr,
	}); err != services.ErrInvalidRequest {
		t.Fatalf("zero qty: want ErrInvalidRequest, got %v", err)
	}
}

// Two checkouts race for the last unit: exactly one wins, stock ends at
// zero, never negative.
func TestPlace_ConcurrentLastUnit(t *testing.T) {
	db := placedb(t)
	if _, err := db.Exec(`UPDATE products SET stock=1 WHERE id='shoes-runner'`); err != nil {
		t.Fatal(err)
	}
	svc := services.NewOrderService(db)

	req := services.PlaceRequest{
		Items:   []services.PlaceLine{{ProductID: "shoes-runner", Qty: 1}},
		Address: testAddr,
	}

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			_, errs[i] = svc.Place(context.Background(), userID, req)
		}(i, []string{"u-user", "u-other"}[i])
	}
	wg.Wait()

	var wins, shorts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		default:
			var short *services.InsufficientStockError
			if !errors.As(err, &short) {
				t.Fatalf("unexpected error: %v", err)
			}
			shorts++
		}
	}
	if wins != 1 || shorts != 1 {
		t.Fatalf("want exactly one winner and one shortage, got wins=%d shorts=%d (%v)", wins, shorts, errs)
	}
	if got := stockOf(t, db, "shoes-runner"); got != 0 {
		t.Fatalf("want final stock=0, got %d", got)
	}
	if n := count(t, db, "orders"); n != 1 {
		t.Fatalf("want exactly one order, got %d", n)
	}
}

// A cancelled caller commits nothing.
func TestPlace_CancelledContext(t *testing.T) {
	db := placedb(t)
	svc := services.NewOrderService(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Place(ctx, "u-user", services.PlaceRequest{
		Items:   []services.PlaceLine{{ProductID: "tee-classic", Qty: 2}},
		Address: testAddr,
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}

	if n := count(t, db, "orders"); n != 0 {
		t.Fatalf("zero rows expected, got %d orders", n)
	}
	if n := count(t, db, "order_items"); n != 0 {
		t.Fatalf("zero rows expected, got %d order_items", n)
	}
	if got := stockOf(t, db, "tee-classic"); got != 5 {
		t.Fatalf("stock must be untouched, got %d", got)
	}
	if n := count(t, db, "cart_items"); n != 1 {
		t.Fatalf("cart must be untouched, got %d items", n)
	}
}

// While another transaction holds the write lock, a placement with an
// expired deadline fails fast and leaves no trace; after the blocker
// clears, the same request goes through.
func TestPlace_BoundedLockWait(t *testing.T) {
	db := placedb(t)
	svc := services.NewOrderService(db)

	blocker, err := db.Beginx()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := blocker.Exec(`UPDATE products SET updated_at=CURRENT_TIMESTAMP WHERE id='jeans-slim'`); err != nil {
		t.Fatal(err)
	}

	req := services.PlaceRequest{
		Items:   []services.PlaceLine{{ProductID: "tee-classic", Qty: 1}},
		Address: testAddr,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	_, err = svc.Place(ctx, "u-user", req)
	cancel()
	if err == nil {
		t.Fatal("want retryable failure while the lock is held, got success")
	}

	if err := blocker.Rollback(); err != nil {
		t.Fatal(err)
	}
	if n := count(t, db, "orders"); n != 0 {
		t.Fatalf("zero rows expected after timed-out attempt, got %d orders", n)
	}
	if got := stockOf(t, db, "tee-classic"); got != 5 {
		t.Fatalf("stock must be untouched, got %d", got)
	}

	// The failure was transient: a retry succeeds once the lock is free.
	if _, err := svc.Place(context.Background(), "u-user", req); err != nil {
		t.Fatalf("retry after blocker cleared: %v", err)
	}
	if got := stockOf(t, db, "tee-classic"); got != 4 {
		t.Fatalf("want stock=4 after retry, got %d", got)
	}
}

func TestAdvanceStatus(t *testing.T) {
	db := placedb(t)
	svc := services.NewOrderService(db)
	ctx := context.Background()

	orderID, err := svc.Place(ctx, "u-user", services.PlaceRequest{
		Items:   []services.PlaceLine{{ProductID: "tee-classic", Qty: 1}},
		Address: testAddr,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Skipping a stage is rejected.
	if err := svc.AdvanceStatus(ctx, orderID, domain.OrderShipped); err != services.ErrInvalidTransition {
		t.Fatalf("PENDING->SHIPPED: want ErrInvalidTransition, got %v", err)
	}

	for _, to := range []domain.OrderStatus{domain.OrderProcessing, domain.OrderShipped, domain.OrderDelivered} {
		if err := svc.AdvanceStatus(ctx, orderID, to); err != nil {
			t.Fatalf("advance to %s: %v", to, err)
		}
	}

	// DELIVERED is terminal; even cancellation is off the table.
	if err := svc.AdvanceStatus(ctx, orderID, domain.OrderCancelled); err != services.ErrInvalidTransition {
		t.Fatalf("DELIVERED->CANCELLED: want ErrInvalidTransition, got %v", err)
	}

	if err := svc.AdvanceStatus(ctx, "no-such-order", domain.OrderProcessing); err != services.ErrOrderNotFound {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}
}
