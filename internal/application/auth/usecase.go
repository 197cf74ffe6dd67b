package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/picking-api/internal/application/dto"
	"github.com/jhoicas/picking-api/internal/domain"
	"github.com/jhoicas/picking-api/internal/domain/entity"
	"github.com/jhoicas/picking-api/internal/domain/repository"
	"github.com/jhoicas/picking-api/pkg/jwt"
	"github.com/jhoicas/picking-api/pkg/token"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AutologinConfig configuración del token de autologin por URL.
type AutologinConfig struct {
	Secret string
	MaxAge time.Duration
}

// AuthUseCase casos de uso de autenticación: login, autologin por URL,
// alta de usuarios y restablecimiento de contraseña.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	jwtCfg    JWTConfig
	autologin AutologinConfig
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, autologin AutologinConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, autologin: autologin, now: time.Now}
}

// Login verifica username/password y genera tokens de sesión y autologin.
// Falla cerrado con ErrUnauthorized: usuario inexistente, hash corrupto o
// contraseña incorrecta producen la misma respuesta, sin filtrar cuál fue.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil || user == nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.sessionFor(user)
}

// Autologin restaura la sesión desde el token firmado que viaja en la URL.
// La verificación del token es pura; después se comprueba que el usuario siga
// existiendo. El rol vigente es el de la DB, no el embebido en el token.
func (uc *AuthUseCase) Autologin(ctx context.Context, tok string) (*dto.LoginResponse, error) {
	username, _, ok := token.Verify(uc.autologin.Secret, tok, uc.autologin.MaxAge, uc.now())
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.sessionFor(user)
}

// CreateUser da de alta un usuario: hashea la contraseña con bcrypt y persiste.
// Devuelve ErrUserAlreadyExists si el username ya está tomado.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Password == "" || !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Username
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         name,
		Role:         in.Role,
		CreatedAt:    uc.now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := toUserResponse(user)
	return &out, nil
}

// ResetPassword restablece la contraseña de un usuario existente.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	updated, err := uc.userRepo.UpdatePassword(ctx, username, string(hash))
	if err != nil {
		return err
	}
	if !updated {
		return domain.ErrNotFound
	}
	return nil
}

// ListUsers devuelve todos los usuarios (pantalla de administración).
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Bootstrap crea el admin inicial si la tabla usuarios está vacía y hay
// credenciales configuradas. Pensado para el primer arranque; no-op después.
func (uc *AuthUseCase) Bootstrap(ctx context.Context, adminUser, adminPassword, adminName string) (bool, error) {
	if adminUser == "" || adminPassword == "" {
		return false, nil
	}
	n, err := uc.userRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{
		Username: adminUser,
		Password: adminPassword,
		Name:     adminName,
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (uc *AuthUseCase) sessionFor(user *entity.User) (*dto.LoginResponse, error) {
	sess, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	auto, err := token.Sign(uc.autologin.Secret, user.Username, user.Role, uc.now())
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:          sess,
		AutologinToken: auto,
		User:           toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
