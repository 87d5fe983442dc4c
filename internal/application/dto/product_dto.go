package dto

import "time"

// CreateProductRequest body para POST /api/products. Mismo contrato que el
// alta rápida desde la pantalla de movimientos (recuperación tras PRODUCT_NOT_FOUND).
type CreateProductRequest struct {
	SKU     string `json:"sku" validate:"required,max=64"`
	Name    string `json:"name" validate:"required,max=200"`
	Barcode string `json:"barcode,omitempty" validate:"omitempty,max=128"`
	Unit    string `json:"unit,omitempty" validate:"omitempty,max=16"` // default "ea"
}

// UpdateProductRequest body para PUT /api/products/:id. SKU no es editable.
type UpdateProductRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Barcode string `json:"barcode,omitempty" validate:"omitempty,max=128"`
	Unit    string `json:"unit,omitempty" validate:"omitempty,max=16"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID        string     `json:"id"`
	SKU       string     `json:"sku"`
	Name      string     `json:"name"`
	Barcode   *string    `json:"barcode,omitempty"`
	Unit      string     `json:"unit"`
	IsDemo    bool       `json:"is_demo"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
