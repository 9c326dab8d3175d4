package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/go-member-portal/internal/domain/apperror"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
	"github.com/oksasatya/go-member-portal/internal/domain/repository"
)

type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]entity.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]entity.Session{}}
}

func (s *SessionStore) Save(_ context.Context, sess *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(sess)
	return nil
}

// put stores a copy of sess; callers hold mu.
func (s *SessionStore) put(sess *entity.Session) {
	cp := *sess
	if sess.Identity != nil {
		id := *sess.Identity
		cp.Identity = &id
	}
	s.sessions[sess.ID] = cp
}

func (s *SessionStore) Get(_ context.Context, id string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return &sess, nil
}

func (s *SessionStore) Refresh(_ context.Context, sess *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess.ID]; !ok {
		return apperror.ErrNotFound
	}
	s.put(sess)
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len reports how many sessions are stored.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

var _ repository.SessionStore = (*SessionStore)(nil)
