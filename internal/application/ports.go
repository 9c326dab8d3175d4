package application

import (
	"context"
	"expvar"

	"github.com/oksasatya/go-member-portal/internal/domain/entity"
)

// UserIndexer mirrors user records into a search index for the admin search
// page. Index failures never fail the user-facing operation.
type UserIndexer interface {
	Index(ctx context.Context, u *entity.User) error
	Remove(ctx context.Context, email string) error
	Search(ctx context.Context, q string, size int) ([]UserHit, error)
}

// UserHit is a single search result.
type UserHit struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  entity.Role `json:"role"`
}

// WelcomeNotifier queues the welcome email for a newly registered user.
type WelcomeNotifier interface {
	Welcome(ctx context.Context, u *entity.User) error
}

// Counters exported on /debug/vars.
var authStats = expvar.NewMap("auth")
