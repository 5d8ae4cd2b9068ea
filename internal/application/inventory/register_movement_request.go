package inventory

import (
	"context"

	"github.com/jhoicas/medsupply-api/internal/application/dto"
	"github.com/jhoicas/medsupply-api/internal/application/validation"
)

// RecordMovementFromRequest valida el request HTTP y lo adapta al caso de uso RecordMovement.
// Un fallo de validación devuelve *domain.ValidationError con la primera regla violada.
func (uc *RegisterMovementUseCase) RecordMovementFromRequest(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if err := validation.ValidateCreateMovement(in).Err(); err != nil {
		return nil, err
	}
	mov, err := uc.RecordMovement(ctx, MovementInputDTO{
		ProductID: *in.ProductID,
		Type:      *in.Type,
		Quantity:  *in.Quantity,
	})
	if err != nil {
		return nil, err
	}
	out := ToMovementResponse(mov)
	return &out, nil
}
