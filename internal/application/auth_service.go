package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-member-portal/internal/domain/apperror"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
	repo "github.com/oksasatya/go-member-portal/internal/domain/repository"
	"github.com/oksasatya/go-member-portal/pkg/helpers"
	"github.com/oksasatya/go-member-portal/pkg/validation"
)

type AuthService struct {
	Repo     repo.UserRepository
	Logger   *logrus.Logger
	Indexer  UserIndexer
	Notifier WelcomeNotifier
}

func NewAuthService(repo repo.UserRepository, logger *logrus.Logger, indexer UserIndexer, notifier WelcomeNotifier) *AuthService {
	return &AuthService{Repo: repo, Logger: logger, Indexer: indexer, Notifier: notifier}
}

// Register validates the payload, hashes the password and inserts the user
// with role user. A taken email yields apperror.ErrDuplicateKey.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := validation.Validate(in); err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u, err := s.Repo.Insert(ctx, &entity.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         entity.RoleUser,
	})
	if err != nil {
		if errors.Is(err, apperror.ErrDuplicateKey) {
			authStats.Add("register_duplicate", 1)
		}
		return nil, err
	}
	authStats.Add("register_ok", 1)

	if s.Indexer != nil {
		if iErr := s.Indexer.Index(ctx, u); iErr != nil && s.Logger != nil {
			s.Logger.WithError(iErr).WithField("email", u.Email).Warn("index user failed")
		}
	}
	if s.Notifier != nil {
		if nErr := s.Notifier.Welcome(ctx, u); nErr != nil && s.Logger != nil {
			s.Logger.WithError(nErr).WithField("email", u.Email).Warn("queue welcome email failed")
		}
	}
	return u, nil
}

// Login validates the payload, loads the user and verifies the password.
// Unknown emails yield apperror.ErrNotFound and wrong passwords
// apperror.ErrInvalidCredentials. A hash that cannot be compared is logged
// and also reported as invalid credentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*entity.User, error) {
	if err := validation.Validate(in); err != nil {
		return nil, err
	}
	u, err := s.Repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	ok, vErr := helpers.VerifyPassword(u.PasswordHash, in.Password)
	if vErr != nil && s.Logger != nil {
		s.Logger.WithError(vErr).WithField("email", u.Email).Error("password verify failed")
	}
	if !ok {
		authStats.Add("login_failed", 1)
		return nil, apperror.ErrInvalidCredentials
	}
	authStats.Add("login_ok", 1)
	return u, nil
}
