package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/edm-inventario/internal/application/auth"
	"github.com/jhoicas/edm-inventario/internal/application/export"
	"github.com/jhoicas/edm-inventario/internal/application/inventory"
	"github.com/jhoicas/edm-inventario/internal/application/movement"
	"github.com/jhoicas/edm-inventario/internal/application/usecase"
	infrapdf "github.com/jhoicas/edm-inventario/internal/infrastructure/pdf"
	"github.com/jhoicas/edm-inventario/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/edm-inventario/internal/interfaces/http"
	"github.com/jhoicas/edm-inventario/pkg/config"
	"github.com/jhoicas/edm-inventario/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	userWarehouseRepo := postgres.NewUserWarehouseRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	applyMovementUC := movement.NewApplyMovementUseCase(txRunner, warehouseRepo, userWarehouseRepo)
	historyUC := movement.NewHistoryUseCase(movementRepo)
	inventoryListUC := inventory.NewListUseCase(productRepo, balanceRepo, warehouseRepo)

	productUC := usecase.NewProductUseCase(productRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	userUC := usecase.NewUserUseCase(userRepo, userWarehouseRepo, time.Duration(cfg.Demo.RetentionMinutes)*time.Minute)
	cleanupUC := usecase.NewCleanupUseCase(productRepo, userRepo)

	// PDF: reporte de movimientos por bodega
	pdfGenerator := infrapdf.NewMarotoMovementsGenerator()
	exportUC := export.NewExportUseCase(historyUC, inventoryListUC, warehouseRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // los exports grandes tardan más
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "EDM Inventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:             authUC,
		ProductUC:          productUC,
		WarehouseUC:        warehouseUC,
		UserUC:             userUC,
		CleanupUC:          cleanupUC,
		ApplyMovement:      applyMovementUC,
		History:            historyUC,
		InventoryList:      inventoryListUC,
		ExportUC:           exportUC,
		JWTSecret:          cfg.JWT.Secret,
		LoginMaxRequests:   cfg.Limit.MaxRequests,
		LoginWindowSeconds: cfg.Limit.WindowSeconds,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
