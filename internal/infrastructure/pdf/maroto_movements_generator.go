// Package pdf implementa la generación del reporte PDF de movimientos de
// stock de una bodega.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de bodega + código  │  Fecha de generación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Cant | SKU | Producto | De | A | Por  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de filas del reporte                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/edm-inventario/internal/application/export"
	"github.com/jhoicas/edm-inventario/internal/domain/entity"
	"github.com/jhoicas/edm-inventario/internal/domain/repository"
)

var _ export.MovementsPDFGenerator = (*MarotoMovementsGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoMovementsGenerator implementa export.MovementsPDFGenerator usando Maroto v2.
type MarotoMovementsGenerator struct{}

// NewMarotoMovementsGenerator construye el generador.
func NewMarotoMovementsGenerator() *MarotoMovementsGenerator { return &MarotoMovementsGenerator{} }

// GenerateMovementsPDF genera el PDF y devuelve sus bytes.
func (g *MarotoMovementsGenerator) GenerateMovementsPDF(
	warehouse *entity.Warehouse,
	rows []*repository.MovementRow,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Movimientos de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(warehouse))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableMovementRows(rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(rows)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre + código de bodega (izq) y fecha de generación (der).
func headerRow(warehouse *entity.Warehouse) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Movimientos de stock", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Bodega: %s (%s)", warehouse.Name, warehouse.Code), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+time.Now().UTC().Format("02/01/2006 15:04 UTC"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 1, align.Center),
		h("Cant.", 1, align.Right),
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("De", 1, align.Center),
		h("A", 1, align.Center),
		h("Por", 1, align.Left),
	)
}

// tableMovementRows: una fila por entrada del ledger, la más reciente primero.
func tableMovementRows(rows []*repository.MovementRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(
				r.Movement.CreatedAt.UTC().Format("02/01/2006 15:04"),
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				r.Movement.Type,
				props.Text{Size: 7, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				strconv.FormatInt(r.Movement.Quantity, 10),
				props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				r.ProductSKU,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				r.ProductName,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				orDash(r.FromWarehouseCode),
				props.Text{Size: 7, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				orDash(r.ToWarehouseCode),
				props.Text{Size: 7, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				authorLabel(r),
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// footerRow: total de filas incluidas en el reporte.
func footerRow(count int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d movimientos en este reporte.", count), props.Text{
			Size: 7.5, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "—"
	}
	return *s
}

// authorLabel nombre del autor, o su email si no tiene nombre.
func authorLabel(r *repository.MovementRow) string {
	if r.CreatedByName != nil && *r.CreatedByName != "" {
		return *r.CreatedByName
	}
	return orDash(r.CreatedByEmail)
}
