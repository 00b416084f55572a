package postgres

import (
	"context"
	"fmt"
)

// Bootstrap DDL. Full migration tooling is out of scope; tables are created
// idempotently at startup. bottle_size is stored as '' for cold drinks so
// SKU equality stays a plain two-column match.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		display_name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS stock_batches (
		id BIGSERIAL PRIMARY KEY,
		product_type TEXT NOT NULL,
		bottle_size TEXT NOT NULL DEFAULT '',
		quantity INT NOT NULL CHECK (quantity >= 0),
		amount_paid DOUBLE PRECISION NOT NULL DEFAULT 0,
		unit_cost DOUBLE PRECISION,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_batches_sku
		ON stock_batches (product_type, bottle_size, created_at)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id BIGSERIAL PRIMARY KEY,
		product_type TEXT NOT NULL,
		bottle_size TEXT NOT NULL DEFAULT '',
		quantity INT NOT NULL CHECK (quantity > 0),
		price_per_unit DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		amount_paid DOUBLE PRECISION NOT NULL DEFAULT 0,
		amount_pending DOUBLE PRECISION NOT NULL DEFAULT 0,
		payment_mode TEXT NOT NULL DEFAULT 'cash',
		payment_status TEXT NOT NULL DEFAULT 'paid',
		customer_name TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_status ON sales (payment_status)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id BIGSERIAL PRIMARY KEY,
		category TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		reason TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS delivery_records (
		id BIGSERIAL PRIMARY KEY,
		image_url TEXT NOT NULL,
		image_key TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expire_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_delivery_records_expire_at
		ON delivery_records (expire_at)`,
}

// Migrate applies the bootstrap schema.
func Migrate(ctx context.Context, db *DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
