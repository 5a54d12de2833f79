package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Port    string
	DBDSN   string
	LogFile string

	// Payment policy: flat shipping fee plus a flat tax percentage applied
	// on top of the order total at authorization time.
	ShippingFee decimal.Decimal
	TaxRate     decimal.Decimal
	StripeKey   string

	// PlaceTimeout bounds a single placement transaction; a request that
	// cannot claim its inventory rows within it aborts with a retryable
	// failure instead of blocking.
	PlaceTimeout  time.Duration
	DBBusyTimeout time.Duration
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "amazona.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{
		Port:          port,
		DBDSN:         dsn,
		LogFile:       logFile,
		ShippingFee:   decimalEnv("SHIPPING_FEE", "10"),
		TaxRate:       decimalEnv("TAX_RATE", "0.10"),
		StripeKey:     os.Getenv("STRIPE_SECRET_KEY"),
		PlaceTimeout:  msEnv("PLACE_TIMEOUT_MS", 5000),
		DBBusyTimeout: msEnv("DB_BUSY_TIMEOUT_MS", 5000),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s SHIPPING_FEE=%s TAX_RATE=%s stripe_configured=%v",
		cfg.Port, cfg.DBDSN, cfg.ShippingFee, cfg.TaxRate, cfg.StripeKey != "")
	return cfg
}

func decimalEnv(key, fallback string) decimal.Decimal {
	s := os.Getenv(key)
	if s == "" {
		s = fallback
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		log.Printf("[config] bad %s=%q, using %s", key, s, fallback)
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}

func msEnv(key string, fallback int) time.Duration {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return time.Duration(n) * time.Millisecond
		}
		log.Printf("[config] bad %s=%q, using %dms", key, s, fallback)
	}
	return time.Duration(fallback) * time.Millisecond
}
