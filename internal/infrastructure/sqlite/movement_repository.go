package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/medsupply-api/internal/domain"
	"github.com/jhoicas/medsupply-api/internal/domain/entity"
	"github.com/jhoicas/medsupply-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

type movementRow struct {
	ID        int64  `db:"id"`
	ProductID int64  `db:"product_id"`
	Type      string `db:"type"`
	Quantity  int64  `db:"quantity"`
	Date      int64  `db:"date"` // unix micro, UTC
}

// MovementRepo implementación de MovementRepository sobre SQLite.
type MovementRepo struct {
	q sqlx.ExtContext
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(q sqlx.ExtContext) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento y asigna su ID.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO movements (product_id, type, quantity, date) VALUES (?, ?, ?, ?)`,
		movement.ProductID, movement.Type, movement.Quantity, movement.Date.UnixMicro(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create movement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	movement.ID = id
	return nil
}

// List lista todos los movimientos, del más reciente al más antiguo.
func (r *MovementRepo) List(ctx context.Context) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT id, product_id, type, quantity, date FROM movements ORDER BY date DESC, id DESC`)
}

// ListByProduct lista los movimientos de un producto, del más reciente al más antiguo.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error) {
	return r.list(ctx, `
		SELECT id, product_id, type, quantity, date FROM movements
		WHERE product_id = ? ORDER BY date DESC, id DESC`, productID)
}

// CountByProduct cuenta los movimientos de un producto.
func (r *MovementRepo) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	var n int64
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT count(*) FROM movements WHERE product_id = ?`, productID); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	var rows []movementRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	list := make([]*entity.Movement, 0, len(rows))
	for _, row := range rows {
		list = append(list, &entity.Movement{
			ID:        row.ID,
			ProductID: row.ProductID,
			Type:      row.Type,
			Quantity:  row.Quantity,
			Date:      time.UnixMicro(row.Date).UTC(),
		})
	}
	return list, nil
}
