// seed puebla la base con los datos mínimos de arranque: el admin inicial
// (ADMIN_EMAIL / ADMIN_PASSWORD), las bodegas base, usuarios de demostración
// y sus asignaciones de bodega. Es idempotente: registros ya existentes se
// conservan tal cual.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/edm-inventario/internal/domain/entity"
	"github.com/jhoicas/edm-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/edm-inventario/pkg/config"
	"github.com/jhoicas/edm-inventario/pkg/logger"
)

// Bodegas base del despliegue. EDM-MAIN es la bodega principal.
var seedWarehouses = []struct {
	Code string
	Name string
}{
	{entity.CodeMainWarehouse, "Bodega Principal"},
	{"EDM-NORTH", "Bodega Norte"},
	{"EDM-SOUTH", "Bodega Sur"},
	{"EDM-RETURNS", "Devoluciones"},
}

// Usuarios demo (expiran tras la retención configurada; el cleanup los borra).
var demoUsers = []struct {
	Email string
	Name  string
	Role  string
}{
	{"staff@example.com", "Demo Staff", entity.RoleStaff},
	{"viewer@example.com", "Demo Viewer", entity.RoleViewer},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	userWarehouseRepo := postgres.NewUserWarehouseRepository(pool)

	// Bodegas base
	warehouseIDs := make(map[string]string, len(seedWarehouses))
	for _, w := range seedWarehouses {
		existing, err := warehouseRepo.GetByCode(w.Code)
		if err != nil {
			log.Fatal().Err(err).Str("code", w.Code).Msg("consultar bodega")
		}
		if existing != nil {
			warehouseIDs[w.Code] = existing.ID
			continue
		}
		now := time.Now()
		warehouse := &entity.Warehouse{
			ID:        uuid.New().String(),
			Code:      w.Code,
			Name:      w.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := warehouseRepo.Create(warehouse); err != nil {
			log.Fatal().Err(err).Str("code", w.Code).Msg("crear bodega")
		}
		warehouseIDs[w.Code] = warehouse.ID
		log.Info().Str("code", w.Code).Msg("bodega creada")
	}

	// Admin inicial
	adminEmail := strings.ToLower(strings.TrimSpace(cfg.Seed.AdminEmail))
	if adminEmail == "" {
		adminEmail = "admin@example.com"
	}
	adminPassword := cfg.Seed.AdminPassword
	if adminPassword == "" {
		log.Fatal().Msg("ADMIN_PASSWORD es requerido para el seed")
	}
	adminID, created := ensureUser(log, userRepo, adminEmail, "Administrador", adminPassword, entity.RoleAdmin, nil)
	if created {
		log.Info().Str("email", adminEmail).Msg("admin creado")
	}

	// Usuarios demo con vencimiento
	retention := time.Duration(cfg.Demo.RetentionMinutes) * time.Minute
	expiresAt := time.Now().Add(retention)
	demoIDs := make(map[string]string, len(demoUsers))
	for _, u := range demoUsers {
		id, created := ensureUser(log, userRepo, u.Email, u.Name, "demo1234!", u.Role, &expiresAt)
		demoIDs[u.Email] = id
		if created {
			log.Info().Str("email", u.Email).Str("role", u.Role).Msg("usuario demo creado")
		}
	}

	// Asignaciones: el admin accede a todas las bodegas; el staff demo a la
	// principal y a la norte. VIEWER no necesita asignaciones (solo lectura).
	for _, id := range warehouseIDs {
		if err := userWarehouseRepo.Assign(adminID, id); err != nil {
			log.Fatal().Err(err).Msg("asignar bodega al admin")
		}
	}
	if staffID, ok := demoIDs["staff@example.com"]; ok {
		for _, code := range []string{entity.CodeMainWarehouse, "EDM-NORTH"} {
			if err := userWarehouseRepo.Assign(staffID, warehouseIDs[code]); err != nil {
				log.Fatal().Err(err).Msg("asignar bodega al staff demo")
			}
		}
	}

	log.Info().Msg("seed completado")
}

// ensureUser crea el usuario si no existe y devuelve su ID.
func ensureUser(
	log *logger.Logger,
	userRepo *postgres.UserRepo,
	email, name, password, role string,
	expiresAt *time.Time,
) (id string, created bool) {
	existing, err := userRepo.FindByEmail(email)
	if err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("consultar usuario")
	}
	if existing != nil {
		return existing.ID, false
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear password")
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		IsDemo:       expiresAt != nil,
		ExpiresAt:    expiresAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(user); err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("crear usuario")
	}
	return user.ID, true
}
