package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-member-portal/internal/domain/apperror"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
	repo "github.com/oksasatya/go-member-portal/internal/domain/repository"
	"github.com/oksasatya/go-member-portal/pkg/validation"
)

type AdminService struct {
	Repo    repo.UserRepository
	Logger  *logrus.Logger
	Indexer UserIndexer
}

func NewAdminService(repo repo.UserRepository, logger *logrus.Logger, indexer UserIndexer) *AdminService {
	return &AdminService{Repo: repo, Logger: logger, Indexer: indexer}
}

// VerifyAdmin re-reads the caller's record from the store. Session snapshots
// can be stale, so the stored role is authoritative. A missing record or a
// non-admin role yields apperror.ErrUnauthorized.
func (s *AdminService) VerifyAdmin(ctx context.Context, id *entity.Identity) (*entity.User, error) {
	if id == nil {
		return nil, apperror.ErrUnauthorized
	}
	u, err := s.Repo.FindByEmail(ctx, id.Email)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, apperror.ErrUnauthorized
	}
	return u, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	return s.Repo.ListAll(ctx)
}

// ChangeRole sets the role of the user with the given email. Unknown emails
// are not an error.
func (s *AdminService) ChangeRole(ctx context.Context, in RoleChangeInput) error {
	in.Normalize()
	if err := validation.Validate(in); err != nil {
		return err
	}
	if err := s.Repo.UpdateRole(ctx, in.Email, entity.Role(in.Role)); err != nil {
		return err
	}
	authStats.Add("role_changed", 1)
	if s.Indexer != nil {
		s.reindex(ctx, in.Email)
	}
	return nil
}

// DeleteUser removes the user with the given email. Unknown emails are not
// an error.
func (s *AdminService) DeleteUser(ctx context.Context, in DeleteUserInput) error {
	if err := validation.Validate(in); err != nil {
		return err
	}
	if err := s.Repo.DeleteByEmail(ctx, in.Email); err != nil {
		return err
	}
	authStats.Add("user_deleted", 1)
	if s.Indexer != nil {
		if err := s.Indexer.Remove(ctx, in.Email); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", in.Email).Warn("remove user from index failed")
		}
	}
	return nil
}

// SearchUsers queries the search index; with no index configured it returns
// an empty result.
func (s *AdminService) SearchUsers(ctx context.Context, q string, size int) ([]UserHit, error) {
	q = strings.TrimSpace(q)
	if s.Indexer == nil || q == "" {
		return []UserHit{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	return s.Indexer.Search(ctx, q, size)
}

func (s *AdminService) reindex(ctx context.Context, email string) {
	u, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		return
	}
	if err := s.Indexer.Index(ctx, u); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("reindex user failed")
	}
}
