package inventory

import (
	"context"

	"github.com/jhoicas/edm-inventario/internal/application/dto"
	"github.com/jhoicas/edm-inventario/internal/domain"
	"github.com/jhoicas/edm-inventario/internal/domain/entity"
	"github.com/jhoicas/edm-inventario/internal/domain/repository"
)

// ListUseCase arma la vista de inventario por bodega: catálogo de productos
// cruzado con los saldos de la bodega. Lectura fuera de transacción (puede
// ser levemente stale respecto de movimientos en vuelo).
type ListUseCase struct {
	productRepo   repository.ProductRepository
	balanceRepo   repository.InventoryBalanceRepository
	warehouseRepo repository.WarehouseRepository
}

// NewListUseCase construye el caso de uso.
func NewListUseCase(
	productRepo repository.ProductRepository,
	balanceRepo repository.InventoryBalanceRepository,
	warehouseRepo repository.WarehouseRepository,
) *ListUseCase {
	return &ListUseCase{
		productRepo:   productRepo,
		balanceRepo:   balanceRepo,
		warehouseRepo: warehouseRepo,
	}
}

// ListByWarehouse lista el inventario de una bodega.
//
// Regla heredada de la pantalla original: en la bodega principal (EDM-MAIN)
// un ADMIN ve el catálogo completo, incluyendo productos sin fila de saldo
// (cantidad 0); cualquier otro rol o bodega ve solo productos con saldo.
func (uc *ListUseCase) ListByWarehouse(_ context.Context, warehouseID, callerRole string) ([]dto.InventoryRowResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	showAllProducts := warehouse.Code == entity.CodeMainWarehouse && callerRole == entity.RoleAdmin

	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	balances, err := uc.balanceRepo.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}

	byProductID := make(map[string]*entity.InventoryBalance, len(balances))
	for _, b := range balances {
		byProductID[b.ProductID] = b
	}

	rows := make([]dto.InventoryRowResponse, 0, len(products))
	for _, p := range products {
		b, has := byProductID[p.ID]
		if !has && !showAllProducts {
			continue
		}
		row := dto.InventoryRowResponse{
			ProductID:     p.ID,
			SKU:           p.SKU,
			Name:          p.Name,
			Barcode:       p.Barcode,
			Unit:          p.Unit,
			WarehouseName: warehouse.Name,
		}
		if has {
			row.Quantity = b.Quantity
			updatedAt := b.UpdatedAt
			row.UpdatedAt = &updatedAt
		}
		rows = append(rows, row)
	}
	return rows, nil
}
