package dto

import "time"

// ApplyMovementRequest body para POST /api/movements.
//
// Reglas de cantidad:
//   - IN/OUT/TRANSFER: entero estrictamente positivo (magnitud).
//   - ADJUST: entero distinto de cero; su interpretación depende de adjust_mode.
//
// adjust_mode solo aplica a ADJUST: DELTA (default, delta con signo) o
// SET (saldo final deseado). to_warehouse_id es obligatorio solo en TRANSFER.
type ApplyMovementRequest struct {
	WarehouseID   string `json:"warehouse_id" validate:"required"`
	Type          string `json:"type" validate:"required,oneof=IN OUT ADJUST TRANSFER"`
	BarcodeOrSKU  string `json:"barcode_or_sku" validate:"required"`
	Quantity      int64  `json:"quantity" validate:"required"`
	AdjustMode    string `json:"adjust_mode,omitempty" validate:"omitempty,oneof=DELTA SET"`
	ToWarehouseID string `json:"to_warehouse_id,omitempty"`
	Note          string `json:"note,omitempty" validate:"omitempty,max=500"`
}

// MovementResult respuesta de POST /api/movements. Cuando ok es false,
// code distingue los fallos recuperables por el cliente (ofrecer alta de
// producto, mostrar saldo insuficiente, corregir bodega destino).
type MovementResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"` // PRODUCT_NOT_FOUND | INSUFFICIENT_STOCK | INVALID_TRANSFER
}

// MovementHistoryQuery query params para GET /api/movements y los exports.
type MovementHistoryQuery struct {
	WarehouseID string `query:"warehouse_id" validate:"required"`
	Type        string `query:"type" validate:"omitempty,oneof=IN OUT ADJUST TRANSFER ALL"`
	Q           string `query:"q"`
	From        string `query:"from"` // RFC 3339 o fecha YYYY-MM-DD
	To          string `query:"to"`
	Take        int    `query:"take" validate:"omitempty,min=1,max=5000"`
}

// MovementRowResponse fila del historial de movimientos.
type MovementRowResponse struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Quantity       int64     `json:"quantity"` // delta aplicado, con signo en ADJUST
	Note           *string   `json:"note,omitempty"`
	SKU            string    `json:"sku"`
	ProductName    string    `json:"product_name"`
	Barcode        *string   `json:"barcode,omitempty"`
	FromCode       *string   `json:"from,omitempty"`
	ToCode         *string   `json:"to,omitempty"`
	CreatedByName  *string   `json:"created_by_name,omitempty"`
	CreatedByEmail *string   `json:"created_by_email,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
