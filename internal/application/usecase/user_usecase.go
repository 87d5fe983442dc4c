package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	appauth "github.com/jhoicas/edm-inventario/internal/application/auth"
	"github.com/jhoicas/edm-inventario/internal/application/dto"
	"github.com/jhoicas/edm-inventario/internal/domain"
	"github.com/jhoicas/edm-inventario/internal/domain/entity"
	"github.com/jhoicas/edm-inventario/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// seedAdminEmail admin creado por el seed; nunca se marca demo ni se limpia.
const seedAdminEmail = "admin@example.com"

// UserUseCase administración de usuarios (solo ADMIN) y asignación de bodegas.
type UserUseCase struct {
	userRepo          repository.UserRepository
	userWarehouseRepo repository.UserWarehouseRepository
	demoRetention     time.Duration
}

// NewUserUseCase construye el caso de uso. demoRetention es la vida de un
// usuario demo antes de que el cleanup lo elimine.
func NewUserUseCase(
	userRepo repository.UserRepository,
	userWarehouseRepo repository.UserWarehouseRepository,
	demoRetention time.Duration,
) *UserUseCase {
	return &UserUseCase{
		userRepo:          userRepo,
		userWarehouseRepo: userWarehouseRepo,
		demoRetention:     demoRetention,
	}
}

// List lista todos los usuarios (demos vencidos excluidos por el repo).
func (uc *UserUseCase) List() ([]*dto.UserResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, appauth.ToUserResponse(u))
	}
	return out, nil
}

// Create da de alta un usuario. Emails que parecen de prueba
// (test/demo/example) se marcan demo con vencimiento, salvo el admin del seed.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !entity.IsValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.userRepo.FindByEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if isDemoEmail(email) {
		user.IsDemo = true
		expiresAt := now.Add(uc.demoRetention)
		user.ExpiresAt = &expiresAt
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return appauth.ToUserResponse(user), nil
}

// Update edita nombre, email, rol y/o password. Campos vacíos no se tocan.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != "" {
		user.Name = strings.TrimSpace(in.Name)
	}
	if in.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(in.Email))
	}
	if in.Role != "" {
		if !entity.IsValidRole(in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = in.Role
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return appauth.ToUserResponse(user), nil
}

// ToggleActive invierte el flag de actividad (bloqueo sin borrar).
func (uc *UserUseCase) ToggleActive(id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.IsActive = !user.IsActive
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return appauth.ToUserResponse(user), nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(id string) error {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.userRepo.Delete(id)
}

// ListWithWarehouses lista usuarios con sus bodegas asignadas (vista admin).
func (uc *UserUseCase) ListWithWarehouses() ([]*dto.UserWithWarehousesResponse, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserWithWarehousesResponse, 0, len(users))
	for _, u := range users {
		warehouseIDs, err := uc.userWarehouseRepo.ListWarehouseIDs(u.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &dto.UserWithWarehousesResponse{
			ID:           u.ID,
			Email:        u.Email,
			Name:         u.Name,
			Role:         u.Role,
			WarehouseIDs: warehouseIDs,
		})
	}
	return out, nil
}

// SetWarehouses reemplaza el conjunto de bodegas asignadas al usuario.
func (uc *UserUseCase) SetWarehouses(userID string, warehouseIDs []string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.userWarehouseRepo.SetForUser(userID, warehouseIDs)
}

// isDemoEmail heurística heredada: emails con test/demo/example son de
// prueba, excepto el admin del seed.
func isDemoEmail(email string) bool {
	if email == seedAdminEmail {
		return false
	}
	return strings.Contains(email, "test") ||
		strings.Contains(email, "demo") ||
		strings.Contains(email, "example")
}
