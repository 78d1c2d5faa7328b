package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lockstock/lockstock-api/internal/application/dto"
	"github.com/lockstock/lockstock-api/internal/application/stock"
)

// StockHandler maneja el ledger de movimientos y los saldos derivados.
type StockHandler struct {
	ledger *stock.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.LedgerUseCase) *StockHandler {
	return &StockHandler{ledger: ledger}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock (delta con signo)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockMovementRequest  true  "material_id, location_id, quantity_delta != 0, reason"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.CreateStockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.ledger.RegisterMovement(c.Context(), GetAuthz(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockMovementResponse{
		ID:            mov.ID,
		MaterialID:    mov.MaterialID,
		LocationID:    mov.LocationID,
		QuantityDelta: mov.QuantityDelta,
		Reason:        mov.Reason,
		Note:          mov.Note,
		ReferenceType: mov.ReferenceType,
		ReferenceID:   mov.ReferenceID,
		CreatedBy:     mov.CreatedBy,
		CreatedAt:     mov.CreatedAt,
	})
}

// Balance godoc
// @Summary      Saldo de un material (suma de deltas del ledger)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        material_id  path   string  true   "ID del material"
// @Param        location_id  query  string  false  "acotar a una ubicación"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{material_id}/balance [get]
func (h *StockHandler) Balance(c *fiber.Ctx) error {
	materialID := c.Params("material_id")
	locationID := c.Query("location_id")
	quantity, err := h.ledger.Balance(c.Context(), GetAuthz(c), materialID, locationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.BalanceResponse{
		MaterialID: materialID,
		LocationID: locationID,
		Quantity:   quantity,
	})
}

// ListMovements godoc
// @Summary      Historial de movimientos de un material
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        material_id  path   string  true   "ID del material"
// @Param        limit        query  int     false  "máx 100, por defecto 20"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.StockMovementListResponse
// @Router       /api/stock/{material_id}/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	movements, total, err := h.ledger.ListMovements(c.Context(), GetAuthz(c), c.Params("material_id"), page)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.StockMovementResponse{
			ID:            m.ID,
			MaterialID:    m.MaterialID,
			LocationID:    m.LocationID,
			QuantityDelta: m.QuantityDelta,
			Reason:        m.Reason,
			Note:          m.Note,
			ReferenceType: m.ReferenceType,
			ReferenceID:   m.ReferenceID,
			CreatedBy:     m.CreatedBy,
			CreatedAt:     m.CreatedAt,
		})
	}
	return c.JSON(dto.StockMovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}
