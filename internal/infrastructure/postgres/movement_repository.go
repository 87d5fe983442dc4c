package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/edm-inventario/internal/domain/entity"
	"github.com/jhoicas/edm-inventario/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

const defaultMovementLimit = 100

// MovementRepo implementación del ledger de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta una entrada en el ledger. Append-only: no existe Update ni Delete.
func (r *MovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO stock_movements (id, type, quantity, note, product_id, from_warehouse_id, to_warehouse_id, created_by_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Type, movement.Quantity, movement.Note, movement.ProductID,
		movement.FromWarehouseID, movement.ToWarehouseID, movement.CreatedByUserID, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List devuelve filas del ledger enriquecidas con producto, códigos de bodega
// y autor. La bodega del filtro matchea origen o destino (un TRANSFER aparece
// en el historial de ambas bodegas).
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*repository.MovementRow, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.WarehouseID != "" {
		p := arg(filter.WarehouseID)
		conditions = append(conditions, fmt.Sprintf("(m.from_warehouse_id = %s OR m.to_warehouse_id = %s)", p, p))
	}
	if filter.Type != "" && filter.Type != "ALL" {
		conditions = append(conditions, "m.type = "+arg(filter.Type))
	}
	if filter.Query != "" {
		p := arg("%" + filter.Query + "%")
		conditions = append(conditions, fmt.Sprintf("(p.sku ILIKE %s OR p.name ILIKE %s OR p.barcode ILIKE %s)", p, p, p))
	}
	if filter.From != nil {
		conditions = append(conditions, "m.created_at >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "m.created_at <= "+arg(*filter.To))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultMovementLimit
	}

	query := fmt.Sprintf(`
		SELECT m.id, m.type, m.quantity, m.note, m.product_id,
		       m.from_warehouse_id, m.to_warehouse_id, m.created_by_user_id, m.created_at,
		       p.sku, p.name, p.barcode,
		       wf.code, wt.code,
		       u.name, u.email
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN warehouses wf ON wf.id = m.from_warehouse_id
		LEFT JOIN warehouses wt ON wt.id = m.to_warehouse_id
		LEFT JOIN users u ON u.id = m.created_by_user_id
		%s
		ORDER BY m.created_at DESC
		LIMIT %s`, where, arg(limit))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*repository.MovementRow
	for rows.Next() {
		var row repository.MovementRow
		if err := rows.Scan(
			&row.Movement.ID, &row.Movement.Type, &row.Movement.Quantity, &row.Movement.Note, &row.Movement.ProductID,
			&row.Movement.FromWarehouseID, &row.Movement.ToWarehouseID, &row.Movement.CreatedByUserID, &row.Movement.CreatedAt,
			&row.ProductSKU, &row.ProductName, &row.ProductBarcode,
			&row.FromWarehouseCode, &row.ToWarehouseCode,
			&row.CreatedByName, &row.CreatedByEmail,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
