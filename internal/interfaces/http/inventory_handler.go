package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/edm-inventario/internal/application/dto"
	"github.com/jhoicas/edm-inventario/internal/application/inventory"
	"github.com/jhoicas/edm-inventario/internal/domain"
)

// InventoryHandler maneja el listado de inventario por bodega (protegido).
type InventoryHandler struct {
	list *inventory.ListUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(list *inventory.ListUseCase) *InventoryHandler {
	return &InventoryHandler{list: list}
}

// List godoc
// @Summary      Inventario por bodega
// @Description  Catálogo cruzado con saldos. En la bodega principal un ADMIN
//
//	ve también productos con saldo cero o sin fila de saldo.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {array}   dto.InventoryRowResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	rows, err := h.list.ListByWarehouse(c.Context(), warehouseID, GetRole(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bodega no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(rows)
}
