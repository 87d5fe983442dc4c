package repository

import "github.com/jhoicas/edm-inventario/internal/domain/entity"

// WarehouseRepository puerto de persistencia para bodegas.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	GetByCode(code string) (*entity.Warehouse, error)
	List() ([]*entity.Warehouse, error)
}
