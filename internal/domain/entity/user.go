package entity

import "time"

// Roles de la aplicación. STAFF puede registrar movimientos; VIEWER solo consulta.
const (
	RoleAdmin  = "ADMIN"
	RoleStaff  = "STAFF"
	RoleViewer = "VIEWER"
)

// User representa un usuario del sistema.
// Los usuarios demo (IsDemo) expiran y son eliminados por el cleanup.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string // ver constantes Role*
	IsActive     bool
	IsDemo       bool
	ExpiresAt    *time.Time // nil = sin vencimiento
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si el string corresponde a un rol conocido.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff || role == RoleViewer
}
