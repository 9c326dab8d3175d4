package repository

import (
	"context"

	"github.com/oksasatya/go-member-portal/internal/domain/entity"
)

// UserRepository is the credential store contract.
//
// Insert fails with apperror.ErrDuplicateKey when the email is taken and
// FindByEmail with apperror.ErrNotFound on a miss. UpdateRole and
// DeleteByEmail succeed when nothing matches.
type UserRepository interface {
	Insert(ctx context.Context, u *entity.User) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateRole(ctx context.Context, email string, role entity.Role) error
	DeleteByEmail(ctx context.Context, email string) error
	ListAll(ctx context.Context) ([]*entity.User, error)
}
