package repository

import (
	"time"

	"github.com/jhoicas/edm-inventario/internal/domain/entity"
)

// MovementFilter filtros para el historial del ledger. La bodega matchea
// tanto el lado origen como el destino del movimiento.
type MovementFilter struct {
	WarehouseID string
	Type        string // "" o "ALL" = todos los tipos
	Query       string // texto libre contra sku, nombre y barcode del producto
	From        *time.Time
	To          *time.Time
	Limit       int // 0 = default del repositorio
}

// MovementRow fila del ledger enriquecida con producto, bodegas y autor,
// tal como la consumen el historial y los exports.
type MovementRow struct {
	Movement          entity.StockMovement
	ProductSKU        string
	ProductName       string
	ProductBarcode    *string
	FromWarehouseCode *string
	ToWarehouseCode   *string
	CreatedByName     *string
	CreatedByEmail    *string
}

// StockMovementRepository puerto del ledger de movimientos.
// Create es append-only: el motor jamás actualiza ni borra una entrada.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	List(filter MovementFilter) ([]*MovementRow, error)
}
