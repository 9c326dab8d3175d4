package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-member-portal/internal/domain/apperror"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
	repo "github.com/oksasatya/go-member-portal/internal/domain/repository"
	"github.com/oksasatya/go-member-portal/pkg/helpers"
)

// SessionManager issues, refreshes and destroys server-side sessions.
// Anonymous sessions live only for the duration of a request; a session is
// written to the store once it carries an identity.
type SessionManager struct {
	Store  repo.SessionStore
	Signer *helpers.SessionTokenSigner
	TTL    time.Duration
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewSessionManager(store repo.SessionStore, signer *helpers.SessionTokenSigner, ttl time.Duration, logger *logrus.Logger) *SessionManager {
	return &SessionManager{Store: store, Signer: signer, TTL: ttl, Logger: logger, Now: time.Now}
}

func (m *SessionManager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *SessionManager) anonymous() *entity.Session {
	return &entity.Session{ID: uuid.NewString(), ExpiresAt: m.now().Add(m.TTL)}
}

// Load resolves the session referenced by a cookie token. Missing, forged,
// unknown and expired tokens all yield a fresh anonymous session; only a
// failing store is reported as an error.
func (m *SessionManager) Load(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return m.anonymous(), nil
	}
	sid, err := m.Signer.Parse(token)
	if err != nil {
		return m.anonymous(), nil
	}
	sess, err := m.Store.Get(ctx, sid)
	if errors.Is(err, apperror.ErrNotFound) {
		return m.anonymous(), nil
	}
	if err != nil {
		return nil, err
	}
	if sess.Expired(m.now()) {
		if dErr := m.Store.Delete(ctx, sess.ID); dErr != nil && m.Logger != nil {
			m.Logger.WithError(dErr).WithField("sid", sess.ID).Warn("drop expired session failed")
		}
		return m.anonymous(), nil
	}
	return sess, nil
}

// Authenticate stores the identity snapshot in the session under a new id and
// starts a fresh expiry window.
func (m *SessionManager) Authenticate(ctx context.Context, sess *entity.Session, id *entity.Identity) error {
	if sess.Authenticated() {
		if err := m.Store.Delete(ctx, sess.ID); err != nil {
			return fmt.Errorf("rotate session: %w", err)
		}
	}
	sess.ID = uuid.NewString()
	sess.Identity = id
	sess.ExpiresAt = m.nextExpiry(time.Time{})
	return m.Store.Save(ctx, sess)
}

// Touch slides the expiry of an authenticated session forward. A session
// removed since it was loaded (logout or id rotation elsewhere) is not
// written back; sess becomes anonymous instead.
func (m *SessionManager) Touch(ctx context.Context, sess *entity.Session) error {
	if !sess.Authenticated() {
		return nil
	}
	sess.ExpiresAt = m.nextExpiry(sess.ExpiresAt)
	err := m.Store.Refresh(ctx, sess)
	if errors.Is(err, apperror.ErrNotFound) {
		sess.Identity = nil
		return nil
	}
	return err
}

// nextExpiry returns now+TTL, never at or before prev.
func (m *SessionManager) nextExpiry(prev time.Time) time.Time {
	next := m.now().Add(m.TTL)
	if !next.After(prev) {
		next = prev.Add(time.Millisecond)
	}
	return next
}

// Destroy expires the session immediately and removes it from the store.
func (m *SessionManager) Destroy(ctx context.Context, sess *entity.Session) error {
	sess.ExpiresAt = m.now().Add(-time.Millisecond)
	wasAuthenticated := sess.Authenticated()
	sess.Identity = nil
	if !wasAuthenticated {
		return nil
	}
	if err := m.Store.Delete(ctx, sess.ID); err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrDestroy, err)
	}
	return nil
}

// Token returns the signed cookie value for sess.
func (m *SessionManager) Token(sess *entity.Session) (string, error) {
	return m.Signer.Sign(sess.ID, sess.ExpiresAt)
}

// Sweep removes every stored session that expired before now.
func (m *SessionManager) Sweep(ctx context.Context) (int, error) {
	return m.Store.DeleteExpired(ctx, m.now())
}

// RunSweeper calls Sweep every interval until ctx is cancelled.
func (m *SessionManager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := m.Sweep(ctx)
			if m.Logger == nil {
				continue
			}
			if err != nil {
				m.Logger.WithError(err).Warn("session sweep failed")
			} else if n > 0 {
				m.Logger.WithField("removed", n).Debug("expired sessions swept")
			}
		}
	}
}
