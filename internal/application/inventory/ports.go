package inventory

import (
	"context"

	"github.com/jhoicas/medsupply-api/internal/domain/entity"
	"github.com/jhoicas/medsupply-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback ante error, panic o salida anticipada. La conexión se libera siempre.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error
}

// MovementRecordedEvent se emite después del commit de cada movimiento.
type MovementRecordedEvent struct {
	Movement         entity.Movement
	PreviousQuantity int64
	NewQuantity      int64
}

// MovementPublisher notifica movimientos ya confirmados a sistemas externos.
type MovementPublisher interface {
	PublishMovement(ctx context.Context, event MovementRecordedEvent) error
}

// NoopPublisher descarta los eventos (por defecto cuando no hay broker configurado).
type NoopPublisher struct{}

func (NoopPublisher) PublishMovement(context.Context, MovementRecordedEvent) error { return nil }
