package repository

import (
	"context"

	"github.com/jhoicas/medsupply-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos de stock (solo inserción).
// Los listados se ordenan por fecha descendente (id descendente como desempate).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	List(ctx context.Context) ([]*entity.Movement, error)
	ListByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error)
	CountByProduct(ctx context.Context, productID int64) (int64, error)
}
