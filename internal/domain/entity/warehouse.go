package entity

import "time"

// CodeMainWarehouse es la bodega principal; en ella un ADMIN ve el catálogo
// completo en el listado de inventario (incluyendo productos sin saldo).
const CodeMainWarehouse = "EDM-MAIN"

// Warehouse representa una bodega física. Conjunto fijo, rara vez mutado.
type Warehouse struct {
	ID        string
	Code      string // único, ej. "EDM-MAIN", "EDM-NORTH"
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
