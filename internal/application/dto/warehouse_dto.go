package dto

import "time"

// CreateWarehouseRequest body para POST /api/warehouses (solo ADMIN).
type CreateWarehouseRequest struct {
	Code string `json:"code" validate:"required,max=32"`
	Name string `json:"name" validate:"required,max=200"`
}

// WarehouseResponse representación pública de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
