package repository

import "github.com/jhoicas/edm-inventario/internal/domain/entity"

// InventoryBalanceRepository puerto de acceso a saldos por (producto, bodega).
//
// Los métodos de mutación solo deben usarse dentro de la transacción del motor
// de movimientos (repos atados a la tx vía TxRunner); Get y ListByWarehouse
// pueden leerse fuera de transacción para vistas (lectura posiblemente stale).
type InventoryBalanceRepository interface {
	// Get devuelve el saldo actual; si la fila no existe devuelve una con Quantity 0.
	Get(productID, warehouseID string) (*entity.InventoryBalance, error)
	// GetForUpdate crea la fila si no existe (con cantidad 0) y la bloquea
	// (SELECT FOR UPDATE) en un solo paso lógico, para que dos movimientos
	// concurrentes contra un par nuevo no se pierdan mutaciones.
	GetForUpdate(productID, warehouseID string) (*entity.InventoryBalance, error)
	// SetQuantity fija la cantidad de la fila (ya bloqueada por GetForUpdate).
	SetQuantity(balance *entity.InventoryBalance) error
	ListByWarehouse(warehouseID string) ([]*entity.InventoryBalance, error)
}
