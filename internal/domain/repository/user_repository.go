package repository

import (
	"context"

	"github.com/jhoicas/picking-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para la tabla usuarios (DIP).
// Los usuarios nunca se borran; solo se crean y se les restablece la contraseña.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) (bool, error)
	List(ctx context.Context) ([]*entity.User, error)
	Count(ctx context.Context) (int, error)
}
