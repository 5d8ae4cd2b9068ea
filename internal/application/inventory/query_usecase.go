package inventory

import (
	"context"

	"github.com/jhoicas/medsupply-api/internal/application/dto"
	"github.com/jhoicas/medsupply-api/internal/domain"
	"github.com/jhoicas/medsupply-api/internal/domain/entity"
	"github.com/jhoicas/medsupply-api/internal/domain/repository"
)

// QueryUseCase lecturas del historial de movimientos (sin transacción).
type QueryUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) *QueryUseCase {
	return &QueryUseCase{productRepo: productRepo, movementRepo: movementRepo}
}

// ListMovements devuelve todos los movimientos, del más reciente al más antiguo.
func (uc *QueryUseCase) ListMovements(ctx context.Context) ([]dto.MovementResponse, error) {
	list, err := uc.movementRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ListMovementsByProduct devuelve el historial de un producto; domain.ErrNotFound si el producto no existe.
func (uc *QueryUseCase) ListMovementsByProduct(ctx context.Context, productID int64) ([]dto.MovementResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movementRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ToMovementResponse convierte la entidad al DTO de salida.
func ToMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Date:      m.Date,
	}
}

func toMovementResponses(list []*entity.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out
}
