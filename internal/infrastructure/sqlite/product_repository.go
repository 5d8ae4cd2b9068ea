package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/medsupply-api/internal/domain"
	"github.com/jhoicas/medsupply-api/internal/domain/entity"
	"github.com/jhoicas/medsupply-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const dateLayout = "2006-01-02"

type productRow struct {
	ID             int64          `db:"id"`
	Name           string         `db:"name"`
	Category       string         `db:"category"`
	Quantity       int64          `db:"quantity"`
	Unit           string         `db:"unit"`
	Batch          sql.NullString `db:"batch"`
	ExpirationDate sql.NullString `db:"expiration_date"`
	Supplier       sql.NullString `db:"supplier"`
	CreatedAt      int64          `db:"created_at"` // unix micro, UTC
}

func (r productRow) toEntity() (*entity.Product, error) {
	p := &entity.Product{
		ID:        r.ID,
		Name:      r.Name,
		Category:  r.Category,
		Quantity:  r.Quantity,
		Unit:      r.Unit,
		Batch:     fromNull(r.Batch),
		Supplier:  fromNull(r.Supplier),
		CreatedAt: time.UnixMicro(r.CreatedAt).UTC(),
	}
	if r.ExpirationDate.Valid {
		d, err := time.Parse(dateLayout, r.ExpirationDate.String)
		if err != nil {
			return nil, fmt.Errorf("expiration_date %q: %w", r.ExpirationDate.String, err)
		}
		p.ExpirationDate = &d
	}
	return p, nil
}

// ProductRepo implementación de ProductRepository sobre SQLite (usable con *sqlx.DB o *sqlx.Tx).
type ProductRepo struct {
	q sqlx.ExtContext
}

// NewProductRepository construye el adaptador.
func NewProductRepository(q sqlx.ExtContext) *ProductRepo {
	return &ProductRepo{q: q}
}

const selectProduct = `SELECT id, name, category, quantity, unit, batch, expiration_date, supplier, created_at FROM products`

// Create persiste un nuevo producto y asigna su ID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO products (name, category, quantity, unit, batch, expiration_date, supplier, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		product.Name, product.Category, product.Quantity, product.Unit,
		toNull(product.Batch), dateToNull(product.ExpirationDate), toNull(product.Supplier),
		product.CreatedAt.UnixMicro(),
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	product.ID = id
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var row productRow
	if err := sqlx.GetContext(ctx, r.q, &row, selectProduct+` WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return row.toEntity()
}

// GetForUpdate en SQLite la transacción ya tiene la única conexión: equivale a GetByID.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// Update actualiza los campos editables (no quantity ni created_at).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE products SET name = ?, category = ?, unit = ?, batch = ?, expiration_date = ?, supplier = ?
		WHERE id = ?`,
		product.Name, product.Category, product.Unit,
		toNull(product.Batch), dateToNull(product.ExpirationDate), toNull(product.Supplier),
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity fija la cantidad del producto.
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id, quantity int64) error {
	res, err := r.q.ExecContext(ctx, `UPDATE products SET quantity = ? WHERE id = ?`, quantity, id)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todos los productos, del más reciente al más antiguo.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, selectProduct+` ORDER BY created_at DESC, id DESC`); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, nil
}

// Delete elimina un producto; domain.ErrConflict si tiene movimientos.
func (r *ProductRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrConflict
		}
		return false, fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return n > 0, nil
}

func toNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func dateToNull(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(dateLayout), Valid: true}
}
