package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/edm-inventario/internal/domain/entity"
	"github.com/jhoicas/edm-inventario/internal/domain/repository"
)

var _ repository.InventoryBalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación de InventoryBalanceRepository sobre PostgreSQL (usable con pool o tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get obtiene el saldo actual de un producto en una bodega. Si la fila no
// existe devuelve un saldo en cero (el par aún no tiene movimientos).
func (r *BalanceRepo) Get(productID, warehouseID string) (*entity.InventoryBalance, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory_balances WHERE product_id = $1 AND warehouse_id = $2`
	var b entity.InventoryBalance
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&b.ProductID, &b.WarehouseID, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryBalance{ProductID: productID, WarehouseID: warehouseID, Quantity: 0}, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate crea la fila con cantidad 0 si no existe y la bloquea con
// SELECT FOR UPDATE. El INSERT ... ON CONFLICT DO NOTHING garantiza que dos
// transacciones concurrentes sobre un par nuevo terminen serializadas sobre
// la misma fila en vez de perder una de las mutaciones.
func (r *BalanceRepo) GetForUpdate(productID, warehouseID string) (*entity.InventoryBalance, error) {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_balances (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`,
		productID, warehouseID,
	)
	if err != nil {
		return nil, fmt.Errorf("ensure balance row: %w", err)
	}

	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory_balances WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var b entity.InventoryBalance
	err = r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&b.ProductID, &b.WarehouseID, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return &b, nil
}

// SetQuantity fija la cantidad de la fila (ya bloqueada por GetForUpdate).
func (r *BalanceRepo) SetQuantity(balance *entity.InventoryBalance) error {
	query := `
		UPDATE inventory_balances SET quantity = $3, updated_at = now()
		WHERE product_id = $1 AND warehouse_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		balance.ProductID, balance.WarehouseID, balance.Quantity,
	)
	if err != nil {
		return fmt.Errorf("set balance quantity: %w", err)
	}
	return nil
}

// ListByWarehouse lista los saldos de una bodega.
func (r *BalanceRepo) ListByWarehouse(warehouseID string) ([]*entity.InventoryBalance, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM inventory_balances WHERE warehouse_id = $1`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryBalance
	for rows.Next() {
		var b entity.InventoryBalance
		if err := rows.Scan(&b.ProductID, &b.WarehouseID, &b.Quantity, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
