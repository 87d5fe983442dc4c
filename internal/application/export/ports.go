package export

import (
	"github.com/jhoicas/edm-inventario/internal/domain/entity"
	"github.com/jhoicas/edm-inventario/internal/domain/repository"
)

// MovementsPDFGenerator puerto de generación del PDF de movimientos.
// Lo implementa infrastructure/pdf con Maroto.
type MovementsPDFGenerator interface {
	GenerateMovementsPDF(warehouse *entity.Warehouse, rows []*repository.MovementRow) ([]byte, error)
}
