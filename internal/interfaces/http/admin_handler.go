package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/edm-inventario/internal/application/dto"
	"github.com/jhoicas/edm-inventario/internal/application/usecase"
)

// AdminHandler operaciones de mantenimiento (solo ADMIN).
type AdminHandler struct {
	cleanup *usecase.CleanupUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(cleanup *usecase.CleanupUseCase) *AdminHandler {
	return &AdminHandler{cleanup: cleanup}
}

// Cleanup godoc
// @Summary      Limpiar datos demo vencidos
// @Description  Elimina productos y usuarios demo cuya retención expiró.
//
//	Pensado para invocarse desde un cron externo.
//
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  usecase.CleanupResult
// @Router       /api/admin/cleanup [post]
func (h *AdminHandler) Cleanup(c *fiber.Ctx) error {
	out, err := h.cleanup.Run(time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DemoStats godoc
// @Summary      Estadísticas de datos demo
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  usecase.DemoStats
// @Router       /api/admin/demo-stats [get]
func (h *AdminHandler) DemoStats(c *fiber.Ctx) error {
	out, err := h.cleanup.Stats(time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
