package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/edm-inventario/internal/application/dto"
	"github.com/jhoicas/edm-inventario/internal/application/inventory"
	"github.com/jhoicas/edm-inventario/internal/application/movement"
	"github.com/jhoicas/edm-inventario/internal/domain"
	"github.com/jhoicas/edm-inventario/internal/domain/repository"
)

// Topes de filas por export (los mismos de las rutas originales de descarga).
const (
	movementsCSVTake = 5000
	movementsPDFTake = 200
)

// ExportUseCase serializa inventario y movimientos a CSV/PDF. Solo lectura;
// reutiliza el historial del ledger y el listado de inventario.
type ExportUseCase struct {
	history       *movement.HistoryUseCase
	inventoryList *inventory.ListUseCase
	warehouseRepo repository.WarehouseRepository
	pdfGen        MovementsPDFGenerator
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	history *movement.HistoryUseCase,
	inventoryList *inventory.ListUseCase,
	warehouseRepo repository.WarehouseRepository,
	pdfGen MovementsPDFGenerator,
) *ExportUseCase {
	return &ExportUseCase{
		history:       history,
		inventoryList: inventoryList,
		warehouseRepo: warehouseRepo,
		pdfGen:        pdfGen,
	}
}

// MovementsCSV exporta el ledger filtrado a CSV. Devuelve contenido y nombre
// de archivo sugerido.
func (uc *ExportUseCase) MovementsCSV(ctx context.Context, q dto.MovementHistoryQuery) ([]byte, string, error) {
	// El tope aplica también a callers que no pasaron por el validador HTTP
	if q.Take <= 0 || q.Take > movementsCSVTake {
		q.Take = movementsCSVTake
	}
	rows, err := uc.history.List(ctx, q)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"createdAt", "type", "quantity", "sku", "name", "barcode", "from", "to", "createdBy", "note"})
	for _, r := range rows {
		_ = w.Write([]string{
			r.Movement.CreatedAt.UTC().Format(time.RFC3339),
			r.Movement.Type,
			strconv.FormatInt(r.Movement.Quantity, 10),
			r.ProductSKU,
			r.ProductName,
			deref(r.ProductBarcode),
			deref(r.FromWarehouseCode),
			deref(r.ToWarehouseCode),
			createdByLabel(r),
			deref(r.Movement.Note),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("csv movimientos: %w", err)
	}
	return buf.Bytes(), fmt.Sprintf("movements_%s.csv", q.WarehouseID), nil
}

// InventoryCSV exporta el inventario de una bodega a CSV.
func (uc *ExportUseCase) InventoryCSV(ctx context.Context, warehouseID, callerRole string) ([]byte, string, error) {
	rows, err := uc.inventoryList.ListByWarehouse(ctx, warehouseID, callerRole)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"sku", "name", "barcode", "unit", "quantity", "updatedAt"})
	for _, r := range rows {
		updatedAt := ""
		if r.UpdatedAt != nil {
			updatedAt = r.UpdatedAt.UTC().Format(time.RFC3339)
		}
		_ = w.Write([]string{
			r.SKU,
			r.Name,
			deref(r.Barcode),
			r.Unit,
			strconv.FormatInt(r.Quantity, 10),
			updatedAt,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("csv inventario: %w", err)
	}
	return buf.Bytes(), fmt.Sprintf("inventory_%s.csv", warehouseID), nil
}

// MovementsPDF exporta los últimos movimientos de la bodega a PDF (Maroto).
func (uc *ExportUseCase) MovementsPDF(ctx context.Context, warehouseID string) ([]byte, string, error) {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, "", err
	}
	if warehouse == nil {
		return nil, "", domain.ErrNotFound
	}
	rows, err := uc.history.List(ctx, dto.MovementHistoryQuery{
		WarehouseID: warehouseID,
		Take:        movementsPDFTake,
	})
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.pdfGen.GenerateMovementsPDF(warehouse, rows)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, fmt.Sprintf("movements_%s.pdf", warehouse.Code), nil
}

// createdByLabel nombre del autor, o su email como fallback.
func createdByLabel(r *repository.MovementRow) string {
	if r.CreatedByName != nil && *r.CreatedByName != "" {
		return *r.CreatedByName
	}
	return deref(r.CreatedByEmail)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
