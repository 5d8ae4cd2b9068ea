package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT    NOT NULL,
		category        TEXT    NOT NULL,
		quantity        INTEGER NOT NULL DEFAULT 0,
		unit            TEXT    NOT NULL,
		batch           TEXT,
		expiration_date TEXT,
		supplier        TEXT,
		created_at      INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS movements (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL,
		type       TEXT    NOT NULL CHECK (type IN ('IN', 'OUT')),
		quantity   INTEGER NOT NULL CHECK (quantity > 0),
		date       INTEGER NOT NULL,
		FOREIGN KEY(product_id) REFERENCES products(id) ON DELETE RESTRICT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_movements_product_date ON movements (product_id, date DESC, id DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_movements_date ON movements (date DESC, id DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_products_created_at ON products (created_at DESC, id DESC);`,
}

// Migrate crea el esquema si no existe.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migración sqlite: %w", err)
		}
	}
	return nil
}
