package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/picking-api/internal/domain"
	"github.com/jhoicas/picking-api/internal/domain/entity"
	"github.com/jhoicas/picking-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO usuarios (id, username, password_hash, nombre, rol, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.Name, user.Role, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByUsername obtiene un usuario por username; nil sin error si no existe.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `
		SELECT id, username, password_hash, nombre, rol, created_at
		FROM usuarios WHERE username = $1`
	var u entity.User
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by username: %w", err)
	}
	return &u, nil
}

// UpdatePassword reemplaza el hash de contraseña. Devuelve false si el
// username no existe.
func (r *UserRepo) UpdatePassword(ctx context.Context, username, passwordHash string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE usuarios SET password_hash = $2 WHERE username = $1`,
		username, passwordHash,
	)
	if err != nil {
		return false, fmt.Errorf("update password: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List devuelve todos los usuarios ordenados por username.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	query := `
		SELECT id, username, password_hash, nombre, rol, created_at
		FROM usuarios ORDER BY username`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Count devuelve el total de usuarios (para el bootstrap del primer admin).
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count usuarios: %w", err)
	}
	return n, nil
}
