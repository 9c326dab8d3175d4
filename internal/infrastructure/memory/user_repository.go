// Package memory provides process-local stores for development runs
// (STORE_DRIVER=memory) and tests. Nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/go-member-portal/internal/domain/apperror"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
	"github.com/oksasatya/go-member-portal/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.RWMutex
	order []string
	users map[string]entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[string]entity.User{}}
}

func (r *UserRepository) Insert(_ context.Context, u *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return nil, apperror.ErrDuplicateKey
	}
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	u.CreatedAt = time.Now()
	r.users[u.Email] = *u
	r.order = append(r.order, u.Email)
	return u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[email]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) UpdateRole(_ context.Context, email string, role entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		u.Role = role
		r.users[email] = u
	}
	return nil
}

func (r *UserRepository) DeleteByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[email]; !ok {
		return nil
	}
	delete(r.users, email)
	for i, e := range r.order {
		if e == email {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *UserRepository) ListAll(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.order))
	for _, e := range r.order {
		u := r.users[e]
		out = append(out, &u)
	}
	return out, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
