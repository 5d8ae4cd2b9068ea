package repository

import (
	"context"

	"github.com/jhoicas/medsupply-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando su fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// Update persiste todos los campos editables; no toca Quantity ni CreatedAt.
	// domain.ErrNotFound si la fila ya no existe.
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id, quantity int64) error
	// List devuelve los productos del más reciente al más antiguo.
	List(ctx context.Context) ([]*entity.Product, error)
	// Delete devuelve false si no había fila con ese id.
	Delete(ctx context.Context, id int64) (bool, error)
}
