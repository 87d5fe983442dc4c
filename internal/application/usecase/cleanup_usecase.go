package usecase

import (
	"time"

	"github.com/jhoicas/edm-inventario/internal/domain/repository"
)

// CleanupResult resumen de una corrida de limpieza de datos demo.
type CleanupResult struct {
	ProductsDeleted int64 `json:"products_deleted"`
	UsersDeleted    int64 `json:"users_deleted"`
}

// DemoStats estadísticas de datos demo para el panel de administración.
type DemoStats struct {
	Products DemoCounts `json:"products"`
	Users    DemoCounts `json:"users"`
}

// DemoCounts totales de registros demo.
type DemoCounts struct {
	Total   int64 `json:"total"`
	Expired int64 `json:"expired"`
	Active  int64 `json:"active"`
}

// CleanupUseCase elimina productos y usuarios demo vencidos. Pensado para
// invocarse desde un cron externo contra el endpoint de administración.
type CleanupUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewCleanupUseCase construye el caso de uso.
func NewCleanupUseCase(productRepo repository.ProductRepository, userRepo repository.UserRepository) *CleanupUseCase {
	return &CleanupUseCase{productRepo: productRepo, userRepo: userRepo}
}

// Run borra los registros demo vencidos, protegiendo siempre el admin del seed.
func (uc *CleanupUseCase) Run(now time.Time) (*CleanupResult, error) {
	productsDeleted, err := uc.productRepo.DeleteExpiredDemo(now)
	if err != nil {
		return nil, err
	}
	usersDeleted, err := uc.userRepo.DeleteExpiredDemo(now, seedAdminEmail)
	if err != nil {
		return nil, err
	}
	return &CleanupResult{ProductsDeleted: productsDeleted, UsersDeleted: usersDeleted}, nil
}

// Stats devuelve totales de datos demo (total, vencidos, activos).
func (uc *CleanupUseCase) Stats(now time.Time) (*DemoStats, error) {
	pTotal, pExpired, err := uc.productRepo.CountDemo(now)
	if err != nil {
		return nil, err
	}
	uTotal, uExpired, err := uc.userRepo.CountDemo(now)
	if err != nil {
		return nil, err
	}
	return &DemoStats{
		Products: DemoCounts{Total: pTotal, Expired: pExpired, Active: pTotal - pExpired},
		Users:    DemoCounts{Total: uTotal, Expired: uExpired, Active: uTotal - uExpired},
	}, nil
}
