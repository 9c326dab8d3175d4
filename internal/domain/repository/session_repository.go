package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-member-portal/internal/domain/entity"
)

// SessionStore persists sessions outside the process.
// Get returns apperror.ErrNotFound for unknown or already removed ids.
type SessionStore interface {
	Save(ctx context.Context, s *entity.Session) error
	// Refresh rewrites a session only if it is still stored, so a request
	// racing a logout or id rotation cannot bring the old session back. It
	// returns apperror.ErrNotFound when the session is gone.
	Refresh(ctx context.Context, s *entity.Session) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes every session whose expiry is before now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
