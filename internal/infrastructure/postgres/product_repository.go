package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/edm-inventario/internal/domain"
	"github.com/jhoicas/edm-inventario/internal/domain/entity"
	"github.com/jhoicas/edm-inventario/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, barcode, name, unit, is_demo, expires_at, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Unit, &p.IsDemo, &p.ExpiresAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. SKU y barcode son únicos.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, barcode, name, unit, is_demo, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Barcode, product.Name, product.Unit,
		product.IsDemo, product.ExpiresAt, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetBySKUOrBarcode resuelve el texto escaneado o tecleado contra barcode
// o SKU exacto (el barcode tiene prioridad si ambos matchean filas distintas).
// COALESCE es necesario: con barcode NULL la expresión (barcode = $1) es NULL
// y DESC la ordenaría primero (NULLS FIRST), ganando el match por SKU.
func (r *ProductRepo) GetBySKUOrBarcode(key string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE barcode = $1 OR sku = $1
		ORDER BY COALESCE(barcode = $1, false) DESC
		LIMIT 1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku/barcode: %w", err)
	}
	return p, nil
}

// List lista productos con paginación, los más recientes primero.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListAll devuelve el catálogo vigente completo (excluye demos vencidos), ordenado por nombre.
func (r *ProductRepo) ListAll() ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_demo = false OR expires_at IS NULL OR expires_at > now()
		ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Update actualiza nombre, barcode y unidad. El SKU es inmutable tras la creación.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, barcode = $3, unit = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Barcode, product.Unit, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID (saldos y asignaciones caen por FK cascade;
// el ledger conserva sus filas).
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// DeleteExpiredDemo elimina productos demo cuyo expires_at ya pasó.
func (r *ProductRepo) DeleteExpiredDemo(now time.Time) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM products WHERE is_demo = true AND expires_at IS NOT NULL AND expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired demo products: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// CountDemo cuenta productos demo totales y vencidos.
func (r *ProductRepo) CountDemo(now time.Time) (total, expired int64, err error) {
	query := `
		SELECT count(*),
		       count(*) FILTER (WHERE expires_at IS NOT NULL AND expires_at <= $1)
		FROM products WHERE is_demo = true`
	if err := r.q.QueryRow(context.Background(), query, now).Scan(&total, &expired); err != nil {
		return 0, 0, fmt.Errorf("count demo products: %w", err)
	}
	return total, expired, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.Unit, &p.IsDemo, &p.ExpiresAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
