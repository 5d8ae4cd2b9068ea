// Package store construye el almacenamiento del inventario según la configuración
// (PostgreSQL o SQLite) y lo expone como un único objeto inyectable.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/medsupply-api/internal/application/inventory"
	"github.com/jhoicas/medsupply-api/internal/domain/repository"
	"github.com/jhoicas/medsupply-api/internal/infrastructure/postgres"
	"github.com/jhoicas/medsupply-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/medsupply-api/pkg/config"
)

// Store agrupa los repositorios, el runner transaccional y el ciclo de vida de la conexión.
type Store struct {
	Driver    string
	Products  repository.ProductRepository
	Movements repository.MovementRepository
	TxRunner  inventory.TxRunner

	ping  func(context.Context) error
	close func() error
}

// Open conecta con el driver configurado y, si AutoMigrate está activo, aplica el esquema.
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return NewPostgres(pool), nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLiteDSN)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := sqlite.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return NewSQLite(db), nil
	default:
		return nil, fmt.Errorf("store: driver %q no soportado", cfg.Driver)
	}
}

// NewPostgres envuelve un pool ya abierto.
func NewPostgres(pool *pgxpool.Pool) *Store {
	return &Store{
		Driver:    config.DriverPostgres,
		Products:  postgres.NewProductRepository(pool),
		Movements: postgres.NewMovementRepository(pool),
		TxRunner:  postgres.NewTxRunner(pool),
		ping:      pool.Ping,
		close: func() error {
			pool.Close()
			return nil
		},
	}
}

// NewSQLite envuelve una base SQLite ya abierta y migrada.
func NewSQLite(db *sqlx.DB) *Store {
	return &Store{
		Driver:    config.DriverSQLite,
		Products:  sqlite.NewProductRepository(db),
		Movements: sqlite.NewMovementRepository(db),
		TxRunner:  sqlite.NewTxRunner(db),
		ping:      db.PingContext,
		close:     db.Close,
	}
}

// Ping verifica la conexión (usado por /health).
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close libera la conexión.
func (s *Store) Close() error {
	return s.close()
}
