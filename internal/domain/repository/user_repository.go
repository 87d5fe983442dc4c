package repository

import (
	"time"

	"github.com/jhoicas/edm-inventario/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	List() ([]*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
	// DeleteExpiredDemo elimina usuarios demo vencidos, protegiendo el email
	// indicado (el admin del seed); devuelve cuántos borró.
	DeleteExpiredDemo(now time.Time, protectEmail string) (int64, error)
	// CountDemo devuelve total y vencidos de usuarios demo (estadísticas admin).
	CountDemo(now time.Time) (total, expired int64, err error)
}

// UserWarehouseRepository asignaciones usuario↔bodega. Un STAFF solo puede
// mover stock en bodegas que tenga asignadas; ADMIN no está restringido.
type UserWarehouseRepository interface {
	ListWarehouseIDs(userID string) ([]string, error)
	Assign(userID, warehouseID string) error
	Remove(userID, warehouseID string) error
	// SetForUser reemplaza el conjunto completo de asignaciones del usuario.
	SetForUser(userID string, warehouseIDs []string) error
}
