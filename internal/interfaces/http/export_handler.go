package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/edm-inventario/internal/application/dto"
	"github.com/jhoicas/edm-inventario/internal/application/export"
	"github.com/jhoicas/edm-inventario/internal/domain"
)

// ExportHandler descargas CSV/PDF de movimientos e inventario (protegido).
type ExportHandler struct {
	uc *export.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// MovementsCSV godoc
// @Summary      Exportar movimientos a CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Param        warehouse_id  query  string  true   "ID de la bodega"
// @Param        type          query  string  false  "IN | OUT | ADJUST | TRANSFER | ALL"
// @Param        q             query  string  false  "Texto libre contra sku, nombre o barcode"
// @Param        from          query  string  false  "Desde (RFC 3339 o YYYY-MM-DD)"
// @Param        to            query  string  false  "Hasta (RFC 3339 o YYYY-MM-DD)"
// @Success      200  {string}  string  "archivo CSV"
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/export/movements.csv [get]
func (h *ExportHandler) MovementsCSV(c *fiber.Ctx) error {
	var q dto.MovementHistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	if err := validate.Struct(q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros del export inválidos"})
	}
	content, filename, err := h.uc.MovementsCSV(c.Context(), q)
	if err != nil {
		return exportError(c, err)
	}
	return sendAttachment(c, content, filename, "text/csv; charset=utf-8")
}

// InventoryCSV godoc
// @Summary      Exportar inventario a CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {string}  string  "archivo CSV"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/export/inventory.csv [get]
func (h *ExportHandler) InventoryCSV(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	content, filename, err := h.uc.InventoryCSV(c.Context(), warehouseID, GetRole(c))
	if err != nil {
		return exportError(c, err)
	}
	return sendAttachment(c, content, filename, "text/csv; charset=utf-8")
}

// MovementsPDF godoc
// @Summary      Exportar movimientos a PDF
// @Tags         export
// @Security     Bearer
// @Produce      application/pdf
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {string}  string  "archivo PDF"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/export/movements.pdf [get]
func (h *ExportHandler) MovementsPDF(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	content, filename, err := h.uc.MovementsPDF(c.Context(), warehouseID)
	if err != nil {
		return exportError(c, err)
	}
	return sendAttachment(c, content, filename, "application/pdf")
}

func exportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bodega no encontrada"})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func sendAttachment(c *fiber.Ctx, content []byte, filename, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(content)
}
