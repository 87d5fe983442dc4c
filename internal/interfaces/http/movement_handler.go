package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/edm-inventario/internal/application/dto"
	"github.com/jhoicas/edm-inventario/internal/application/movement"
	"github.com/jhoicas/edm-inventario/internal/domain"
	"github.com/jhoicas/edm-inventario/internal/domain/repository"
)

// MovementHandler maneja el registro y el historial de movimientos de stock (protegido).
type MovementHandler struct {
	apply   *movement.ApplyMovementUseCase
	history *movement.HistoryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(apply *movement.ApplyMovementUseCase, history *movement.HistoryUseCase) *MovementHandler {
	return &MovementHandler{apply: apply, history: history}
}

// Apply godoc
// @Summary      Aplicar movimiento de stock
// @Description  Registra un IN/OUT/ADJUST/TRANSFER. Los fallos de negocio
//
//	(producto desconocido, saldo insuficiente, destino inválido) responden
//	ok=false con un code que el cliente puede manejar.
//
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "Movimiento a aplicar"
// @Success      201   {object}  dto.MovementResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Apply(c *fiber.Ctx) error {
	caller := movement.Caller{ID: GetUserID(c), Role: GetRole(c)}

	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del movimiento inválidos"})
	}

	err := h.apply.ApplyFromRequest(c.Context(), caller, in)
	if err != nil {
		// Fallos de negocio recuperables: el cliente decide el siguiente paso
		// (alta rápida de producto, mostrar saldo, corregir destino).
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return c.JSON(dto.MovementResult{OK: false, Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.JSON(dto.MovementResult{OK: false, Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
		case errors.Is(err, domain.ErrInvalidTransfer):
			return c.JSON(dto.MovementResult{OK: false, Code: "INVALID_TRANSFER", Message: "traslado inválido"})
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol o bodega sin permiso"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bodega no encontrada"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del movimiento inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResult{OK: true, Message: "movimiento aplicado"})
}

// List godoc
// @Summary      Historial de movimientos
// @Description  Entradas del ledger de una bodega (origen o destino), más recientes primero.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true   "ID de la bodega"
// @Param        type          query  string  false  "IN | OUT | ADJUST | TRANSFER | ALL"
// @Param        q             query  string  false  "Texto libre contra sku, nombre o barcode"
// @Param        from          query  string  false  "Desde (RFC 3339 o YYYY-MM-DD)"
// @Param        to            query  string  false  "Hasta (RFC 3339 o YYYY-MM-DD)"
// @Param        take          query  int     false  "Máximo de filas"  default(100)
// @Success      200  {array}   dto.MovementRowResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var q dto.MovementHistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	if err := validate.Struct(q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	rows, err := h.history.List(c.Context(), q)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toMovementRowResponses(rows))
}

func toMovementRowResponses(rows []*repository.MovementRow) []dto.MovementRowResponse {
	out := make([]dto.MovementRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MovementRowResponse{
			ID:             r.Movement.ID,
			Type:           r.Movement.Type,
			Quantity:       r.Movement.Quantity,
			Note:           r.Movement.Note,
			SKU:            r.ProductSKU,
			ProductName:    r.ProductName,
			Barcode:        r.ProductBarcode,
			FromCode:       r.FromWarehouseCode,
			ToCode:         r.ToWarehouseCode,
			CreatedByName:  r.CreatedByName,
			CreatedByEmail: r.CreatedByEmail,
			CreatedAt:      r.Movement.CreatedAt,
		})
	}
	return out
}
