package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jhoicas/edm-inventario/internal/application/auth"
	"github.com/jhoicas/edm-inventario/internal/application/dto"
	"github.com/jhoicas/edm-inventario/internal/application/export"
	"github.com/jhoicas/edm-inventario/internal/application/inventory"
	"github.com/jhoicas/edm-inventario/internal/application/movement"
	"github.com/jhoicas/edm-inventario/internal/application/usecase"
	"github.com/jhoicas/edm-inventario/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	UserUC        *usecase.UserUseCase
	CleanupUC     *usecase.CleanupUseCase
	ApplyMovement *movement.ApplyMovementUseCase
	History       *movement.HistoryUseCase
	InventoryList *inventory.ListUseCase
	ExportUC      *export.ExportUseCase
	JWTSecret     string

	// Rate limit del login (protección contra fuerza bruta).
	LoginMaxRequests   int
	LoginWindowSeconds int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, con rate limit sobre el login)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", loginLimiter(deps), authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; escritura solo ADMIN/STAFF)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleStaff), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleStaff), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Warehouses (protegido; alta solo ADMIN)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", RequireRole(entity.RoleAdmin), warehouseHandler.Create)

	// Movements (protegido; el motor valida rol y bodegas asignadas)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.ApplyMovement, deps.History)
	movements.Post("/", movementHandler.Apply)
	movements.Get("/", movementHandler.List)

	// Inventory (protegido, solo lectura)
	inventoryHandler := NewInventoryHandler(deps.InventoryList)
	protected.Get("/inventory", inventoryHandler.List)

	// Exports (protegido)
	exportGroup := protected.Group("/export")
	exportHandler := NewExportHandler(deps.ExportUC)
	exportGroup.Get("/movements.csv", exportHandler.MovementsCSV)
	exportGroup.Get("/inventory.csv", exportHandler.InventoryCSV)
	exportGroup.Get("/movements.pdf", exportHandler.MovementsPDF)

	// Users (solo ADMIN)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/warehouses", userHandler.ListWithWarehouses)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Patch("/:id/toggle-active", userHandler.ToggleActive)
	users.Put("/:id/warehouses", userHandler.SetWarehouses)

	// Admin (solo ADMIN)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	adminHandler := NewAdminHandler(deps.CleanupUC)
	admin.Post("/cleanup", adminHandler.Cleanup)
	admin.Get("/demo-stats", adminHandler.DemoStats)
}

// loginLimiter limita intentos de login por IP.
func loginLimiter(deps RouterDeps) fiber.Handler {
	max := deps.LoginMaxRequests
	if max <= 0 {
		max = 60
	}
	window := deps.LoginWindowSeconds
	if window <= 0 {
		window = 60
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Duration(window) * time.Second,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiados intentos, reintente más tarde"})
		},
	})
}
