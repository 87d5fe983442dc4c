package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN       = "IN"       // entrada
	MovementTypeOUT      = "OUT"      // salida
	MovementTypeADJUST   = "ADJUST"   // ajuste (delta con signo o fijar saldo)
	MovementTypeTRANSFER = "TRANSFER" // traslado entre bodegas
)

// Modos de ajuste para MovementTypeADJUST.
const (
	AdjustModeDelta = "DELTA" // la cantidad es el delta con signo a aplicar
	AdjustModeSet   = "SET"   // la cantidad es el saldo final deseado
)

// IsValidMovementType indica si el string corresponde a un tipo conocido.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUST, MovementTypeTRANSFER:
		return true
	}
	return false
}

// StockMovement es una entrada del ledger de movimientos: append-only,
// nunca se actualiza ni se borra una vez escrita.
//
// Quantity es SIEMPRE el delta aplicado, con signo: para ADJUST es el delta
// real que calculó el motor (no lo que tecleó el usuario en modo SET);
// para IN/OUT/TRANSFER es la magnitud positiva transferida.
//
// FromWarehouseID / ToWarehouseID según el tipo:
//   - IN:       solo To
//   - OUT:      solo From
//   - TRANSFER: ambos
//   - ADJUST:   solo To (la bodega cuyo saldo cambió)
type StockMovement struct {
	ID              string
	Type            string // ver constantes MovementType*
	Quantity        int64
	Note            *string
	ProductID       string
	FromWarehouseID *string
	ToWarehouseID   *string
	CreatedByUserID string
	CreatedAt       time.Time
}
