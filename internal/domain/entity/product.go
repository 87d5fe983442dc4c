package entity

import "time"

// Product representa un producto o SKU del catálogo (multi-bodega).
// La identidad (ID, SKU) es inmutable; nombre, barcode y unidad son editables.
// El stock NUNCA vive aquí: se maneja por bodega en InventoryBalance.
type Product struct {
	ID        string
	SKU       string  // único
	Barcode   *string // único si está presente; nil = sin código de barras
	Name      string
	Unit      string // unidad de medida, ej. "ea", "kg", "caja"
	IsDemo    bool
	ExpiresAt *time.Time // solo para productos demo
	CreatedAt time.Time
	UpdatedAt time.Time
}
