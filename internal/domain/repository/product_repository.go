package repository

import (
	"time"

	"github.com/jhoicas/edm-inventario/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// GetBySKUOrBarcode es el Catalog Lookup del motor de movimientos: resuelve
// el texto escaneado/tecleado contra barcode o SKU exacto.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKUOrBarcode(key string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	// ListAll devuelve el catálogo completo vigente (sin demos vencidos),
	// ordenado por nombre; lo usa el listado de inventario.
	ListAll() ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	// DeleteExpiredDemo elimina productos demo vencidos; devuelve cuántos borró.
	DeleteExpiredDemo(now time.Time) (int64, error)
	// CountDemo devuelve total y vencidos de productos demo (estadísticas admin).
	CountDemo(now time.Time) (total, expired int64, err error)
}
