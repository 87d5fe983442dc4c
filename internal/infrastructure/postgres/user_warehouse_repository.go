package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/edm-inventario/internal/domain/repository"
)

var _ repository.UserWarehouseRepository = (*UserWarehouseRepo)(nil)

// UserWarehouseRepo asignaciones usuario↔bodega sobre PostgreSQL.
type UserWarehouseRepo struct {
	q Querier
}

// NewUserWarehouseRepository construye el adaptador de asignaciones.
func NewUserWarehouseRepository(q Querier) *UserWarehouseRepo {
	return &UserWarehouseRepo{q: q}
}

// ListWarehouseIDs devuelve los IDs de bodegas asignadas a un usuario.
func (r *UserWarehouseRepo) ListWarehouseIDs(userID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT warehouse_id FROM user_warehouses WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user warehouses: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user warehouse: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Assign agrega una asignación; es idempotente si ya existe.
func (r *UserWarehouseRepo) Assign(userID, warehouseID string) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO user_warehouses (user_id, warehouse_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, warehouse_id) DO NOTHING`,
		userID, warehouseID,
	)
	if err != nil {
		return fmt.Errorf("assign warehouse: %w", err)
	}
	return nil
}

// Remove quita una asignación.
func (r *UserWarehouseRepo) Remove(userID, warehouseID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM user_warehouses WHERE user_id = $1 AND warehouse_id = $2`,
		userID, warehouseID,
	)
	if err != nil {
		return fmt.Errorf("remove warehouse assignment: %w", err)
	}
	return nil
}

// SetForUser reemplaza el conjunto completo de asignaciones del usuario.
func (r *UserWarehouseRepo) SetForUser(userID string, warehouseIDs []string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM user_warehouses WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear warehouse assignments: %w", err)
	}
	for _, wid := range warehouseIDs {
		if _, err := r.q.Exec(ctx, `
			INSERT INTO user_warehouses (user_id, warehouse_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id, warehouse_id) DO NOTHING`, userID, wid); err != nil {
			return fmt.Errorf("assign warehouse: %w", err)
		}
	}
	return nil
}
