package entity

import "time"

// InventoryBalance representa el saldo actual de un producto en una bodega.
// Como máximo una fila por par (ProductID, WarehouseID); la ausencia de fila
// equivale a saldo 0 (creación perezosa en el primer movimiento).
//
// Invariantes que mantiene el motor de movimientos:
//   - Quantity nunca es negativa fuera de una transacción fallida.
//   - Quantity es la suma de todos los deltas aplicados contra el par.
type InventoryBalance struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	UpdatedAt   time.Time
}
