// Package sqlite implementa el almacenamiento del inventario sobre SQLite (driver puro Go),
// pensado para desarrollo local, demos y tests.
//
// La base se abre con una única conexión: todas las transacciones quedan serializadas,
// lo que equivale al bloqueo de fila del adaptador PostgreSQL.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Open abre la base indicada por dsn (p. ej. "file:medsupply.db" o "file::memory:")
// y activa las llaves foráneas.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("activar foreign_keys: %w", err)
	}
	return db, nil
}

func isForeignKeyViolation(err error) bool {
	var se *moderncsqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	if se.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	// sin códigos extendidos solo llega SQLITE_CONSTRAINT
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "FOREIGN KEY")
}
