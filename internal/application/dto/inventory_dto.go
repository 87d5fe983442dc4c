package dto

import "time"

// InventoryRowResponse fila del listado de inventario por bodega.
// Quantity 0 con UpdatedAt nil significa que el par aún no tiene fila de saldo.
type InventoryRowResponse struct {
	ProductID     string     `json:"product_id"`
	SKU           string     `json:"sku"`
	Name          string     `json:"name"`
	Barcode       *string    `json:"barcode,omitempty"`
	Unit          string     `json:"unit"`
	Quantity      int64      `json:"quantity"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	WarehouseName string     `json:"warehouse_name"`
}
