package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/medsupply-api/internal/application/dto"
	"github.com/jhoicas/medsupply-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de stock.
type InventoryHandler struct {
	uc      *inventory.RegisterMovementUseCase
	queryUC *inventory.QueryUseCase
	log     zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, queryUC *inventory.QueryUseCase, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, queryUC: queryUC, log: log}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  IN suma y OUT resta la cantidad al producto en una única transacción.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "productId, type (IN | OUT), quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RecordMovementFromRequest(c.Context(), in)
	if err != nil {
		return respondError(c, h.log, err, productNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Description  Todos los movimientos, del más reciente al más antiguo.
// @Tags         movements
// @Produce      json
// @Success      200  {array}   dto.MovementResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.queryUC.ListMovements(c.Context())
	if err != nil {
		return respondError(c, h.log, err, "movimiento no encontrado")
	}
	return c.JSON(out)
}
