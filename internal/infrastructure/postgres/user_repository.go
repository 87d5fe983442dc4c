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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, email, name, password_hash, role, is_active, is_demo, expires_at, created_at, updated_at`

// Create persiste un nuevo usuario. El email es único.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, role, is_active, is_demo, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Role,
		user.IsActive, user.IsDemo, user.ExpiresAt, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get user")
}

// FindByEmail obtiene un usuario por email (login).
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email), "find user by email")
}

// List lista todos los usuarios ordenados por fecha de creación.
func (r *UserRepo) List() ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
			&u.IsActive, &u.IsDemo, &u.ExpiresAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Update actualiza nombre, rol, estado y hash de contraseña.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET name = $2, password_hash = $3, role = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.PasswordHash, user.Role, user.IsActive, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete elimina un usuario. Sus asignaciones de bodega caen por cascade;
// las entradas del ledger que creó se conservan.
func (r *UserRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// DeleteExpiredDemo elimina usuarios demo vencidos, excepto el email protegido (admin del seed).
func (r *UserRepo) DeleteExpiredDemo(now time.Time, protectEmail string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(), `
		DELETE FROM users
		WHERE is_demo = true AND expires_at IS NOT NULL AND expires_at <= $1 AND email <> $2`,
		now, protectEmail,
	)
	if err != nil {
		return 0, fmt.Errorf("delete expired demo users: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// CountDemo cuenta usuarios demo totales y vencidos.
func (r *UserRepo) CountDemo(now time.Time) (total, expired int64, err error) {
	query := `
		SELECT count(*),
		       count(*) FILTER (WHERE expires_at IS NOT NULL AND expires_at <= $1)
		FROM users WHERE is_demo = true`
	if err := r.q.QueryRow(context.Background(), query, now).Scan(&total, &expired); err != nil {
		return 0, 0, fmt.Errorf("count demo users: %w", err)
	}
	return total, expired, nil
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.IsActive, &u.IsDemo, &u.ExpiresAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
