package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		username VARCHAR(255) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		id BIGINT PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_ingredients (
		id BIGSERIAL PRIMARY KEY,
		inventory_id BIGINT NOT NULL REFERENCES inventory(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		amount INTEGER NOT NULL CHECK (amount >= 0),
		UNIQUE (inventory_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS recipes (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		price INTEGER NOT NULL CHECK (price > 0)
	)`,
	`CREATE TABLE IF NOT EXISTS recipe_ingredients (
		id BIGSERIAL PRIMARY KEY,
		recipe_id BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name VARCHAR(255) NOT NULL,
		amount INTEGER NOT NULL,
		UNIQUE (recipe_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		fulfilled BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id)`,
	`CREATE TABLE IF NOT EXISTS order_lines (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name VARCHAR(255) NOT NULL,
		price INTEGER NOT NULL,
		multiplier INTEGER NOT NULL CHECK (multiplier > 0)
	)`,
	`CREATE TABLE IF NOT EXISTS order_line_ingredients (
		id BIGSERIAL PRIMARY KEY,
		order_line_id BIGINT NOT NULL REFERENCES order_lines(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name VARCHAR(255) NOT NULL,
		amount INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_history (
		id BIGINT PRIMARY KEY,
		picked_up BOOLEAN NOT NULL DEFAULT FALSE,
		recipes_in_order TEXT NOT NULL,
		ingredients_used TEXT NOT NULL,
		total NUMERIC(14,2) NOT NULL,
		username VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tax_rates (
		id BIGINT PRIMARY KEY,
		rate NUMERIC(10,4) NOT NULL CHECK (rate >= 0)
	)`,
}

// Migrate creates the schema if it does not exist yet
func (db *DB) Migrate(ctx context.Context) error {
	db.logger.Info("Running schema migrations", "statements", len(migrations))
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.logger.Error("Migration failed", "step", i, "error", err)
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
