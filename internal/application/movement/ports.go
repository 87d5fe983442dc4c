package movement

import (
	"context"

	"github.com/jhoicas/edm-inventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// movimientos: o se aplican la mutación de saldos Y el append al ledger,
// o no se aplica nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.InventoryBalanceRepository,
		productRepo repository.ProductRepository,
	) error) error
}
