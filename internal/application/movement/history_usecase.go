package movement

import (
	"context"
	"time"

	"github.com/jhoicas/edm-inventario/internal/application/dto"
	"github.com/jhoicas/edm-inventario/internal/domain"
	"github.com/jhoicas/edm-inventario/internal/domain/repository"
)

// defaultHistoryTake tope por defecto del historial; los exports piden más.
const defaultHistoryTake = 100

// HistoryUseCase consulta de solo lectura sobre el ledger de movimientos.
// No participa en transacciones: puede observar datos levemente stale
// entre movimientos, lo cual es aceptable para vistas y exports.
type HistoryUseCase struct {
	movRepo repository.StockMovementRepository
}

// NewHistoryUseCase construye el caso de uso de historial.
func NewHistoryUseCase(movRepo repository.StockMovementRepository) *HistoryUseCase {
	return &HistoryUseCase{movRepo: movRepo}
}

// List devuelve las filas del ledger que matchean el filtro, más recientes primero.
func (uc *HistoryUseCase) List(_ context.Context, q dto.MovementHistoryQuery) ([]*repository.MovementRow, error) {
	if q.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	filter := repository.MovementFilter{
		WarehouseID: q.WarehouseID,
		Type:        q.Type,
		Query:       q.Q,
		Limit:       q.Take,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultHistoryTake
	}
	var err error
	if filter.From, err = parseDateParam(q.From); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if filter.To, err = parseDateParam(q.To); err != nil {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.List(filter)
}

// parseDateParam acepta RFC 3339 o fecha simple YYYY-MM-DD; vacío = sin filtro.
func parseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
