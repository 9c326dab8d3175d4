package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-member-portal/internal/domain/apperror"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
	"github.com/oksasatya/go-member-portal/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Insert(ctx context.Context, u *entity.User) (*entity.User, error) {
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, u.Email, u.Name, u.PasswordHash, string(u.Role)).Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperror.ErrDuplicateKey
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := &entity.User{}
	var role string
	err := r.db.QueryRowContext(ctx, `
		SELECT email, name, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&u.Email, &u.Name, &u.PasswordHash, &role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.Role = entity.Role(role)
	return u, nil
}

// UpdateRole does not report a missing email; only the write itself can fail.
func (r *UserRepository) UpdateRole(ctx context.Context, email string, role entity.Role) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET role = $1 WHERE email = $2`, string(role), email); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

func (r *UserRepository) DeleteByEmail(ctx context.Context, email string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE email = $1`, email); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT email, name, password_hash, role, created_at
		FROM users
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.User
	for rows.Next() {
		u := &entity.User{}
		var role string
		if err := rows.Scan(&u.Email, &u.Name, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = entity.Role(role)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
