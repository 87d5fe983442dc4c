package dto

import "time"

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest body para POST /api/users (solo ADMIN).
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=200"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN STAFF VIEWER"`
}

// UpdateUserRequest body para PUT /api/users/:id. Campos vacíos no se tocan.
type UpdateUserRequest struct {
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Name     string `json:"name,omitempty" validate:"omitempty,max=200"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=ADMIN STAFF VIEWER"`
}

// UserResponse representación pública de un usuario (sin hash).
type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	IsDemo    bool       `json:"is_demo"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// SetUserWarehousesRequest body para PUT /api/users/:id/warehouses.
type SetUserWarehousesRequest struct {
	WarehouseIDs []string `json:"warehouse_ids" validate:"required"`
}

// UserWithWarehousesResponse usuario + bodegas asignadas (vista de administración).
type UserWithWarehousesResponse struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	WarehouseIDs []string `json:"warehouse_ids"`
}
