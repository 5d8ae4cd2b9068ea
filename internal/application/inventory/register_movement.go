package inventory

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/medsupply-api/internal/domain"
	"github.com/jhoicas/medsupply-api/internal/domain/entity"
	"github.com/jhoicas/medsupply-api/internal/domain/repository"
)

// StockPolicy política de cantidades del motor.
// AllowNegative=true conserva el comportamiento histórico: una salida mayor al stock deja cantidad negativa.
type StockPolicy struct {
	AllowNegative bool
}

// RegisterMovementUseCase registra movimientos IN/OUT de forma transaccional:
// bloqueo de fila del producto (SELECT FOR UPDATE), inserción del movimiento y nueva cantidad en un único Commit.
type RegisterMovementUseCase struct {
	txRunner  TxRunner
	publisher MovementPublisher
	policy    StockPolicy
	log       zerolog.Logger
	now       func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. publisher puede ser nil.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	publisher MovementPublisher,
	policy StockPolicy,
	log zerolog.Logger,
) *RegisterMovementUseCase {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &RegisterMovementUseCase{
		txRunner:  txRunner,
		publisher: publisher,
		policy:    policy,
		log:       log,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj usado para fechar movimientos.
func (uc *RegisterMovementUseCase) WithClock(now func() time.Time) *RegisterMovementUseCase {
	uc.now = now
	return uc
}

// MovementInputDTO entrada ya validada del motor.
type MovementInputDTO struct {
	ProductID int64
	Type      string
	Quantity  int64
}

// RecordMovement aplica un movimiento a un producto.
// Errores: domain.ErrInvalidInput (forma o desborde de la cantidad), domain.ErrNotFound (producto inexistente),
// domain.ErrInsufficientStock (solo con AllowNegative=false); cualquier otro es falla de almacenamiento.
// En todos los casos de error la BD queda como estaba.
func (uc *RegisterMovementUseCase) RecordMovement(ctx context.Context, input MovementInputDTO) (*entity.Movement, error) {
	if input.ProductID <= 0 || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.Type != entity.MovementTypeIN && input.Type != entity.MovementTypeOUT {
		return nil, domain.ErrInvalidInput
	}

	var (
		mov     *entity.Movement
		prevQty int64
	)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		// Bloquea la fila del producto para serializar movimientos concurrentes sobre el mismo producto
		product, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		m := &entity.Movement{
			ProductID: input.ProductID,
			Type:      input.Type,
			Quantity:  input.Quantity,
			Date:      uc.now().UTC().Truncate(time.Microsecond),
		}
		newQty, ok := applyDelta(product.Quantity, m.Delta())
		if !ok {
			return &domain.ValidationError{Field: "quantity", Message: "quantity excede el rango de stock representable"}
		}
		if newQty < 0 && !uc.policy.AllowNegative {
			return domain.ErrInsufficientStock
		}

		if err := movementRepo.Create(ctx, m); err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(ctx, input.ProductID, newQty); err != nil {
			return err
		}
		mov = m
		prevQty = product.Quantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	newQty := prevQty + mov.Delta()
	uc.log.Info().
		Int64("movement_id", mov.ID).
		Int64("product_id", mov.ProductID).
		Str("type", mov.Type).
		Int64("quantity", mov.Quantity).
		Int64("previous_quantity", prevQty).
		Int64("new_quantity", newQty).
		Msg("movimiento registrado")

	// El movimiento ya está confirmado: un fallo del publicador solo se registra
	event := MovementRecordedEvent{Movement: *mov, PreviousQuantity: prevQty, NewQuantity: newQty}
	if err := uc.publisher.PublishMovement(ctx, event); err != nil {
		uc.log.Warn().Err(err).Int64("movement_id", mov.ID).Msg("publicar evento de movimiento")
	}
	return mov, nil
}

// applyDelta suma delta a qty; ok=false si el resultado desborda int64.
func applyDelta(qty, delta int64) (int64, bool) {
	sum := qty + delta
	if (delta > 0 && sum < qty) || (delta < 0 && sum > qty) {
		return 0, false
	}
	return sum, true
}
