package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-member-portal/internal/domain/apperror"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
)

func TestUserRepositoryContract(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	_, err := r.Insert(ctx, &entity.User{Email: "a@x.com", Name: "Ann", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = r.Insert(ctx, &entity.User{Email: "a@x.com", Name: "Other", PasswordHash: "h"})
	assert.ErrorIs(t, err, apperror.ErrDuplicateKey)

	u, err := r.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)

	require.NoError(t, r.UpdateRole(ctx, "a@x.com", entity.RoleAdmin))
	require.NoError(t, r.UpdateRole(ctx, "ghost@x.com", entity.RoleAdmin))
	u, _ = r.FindByEmail(ctx, "a@x.com")
	assert.True(t, u.IsAdmin())

	require.NoError(t, r.DeleteByEmail(ctx, "ghost@x.com"))
	require.NoError(t, r.DeleteByEmail(ctx, "a@x.com"))
	_, err = r.FindByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	all, err := r.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSessionStoreDeleteExpired(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore()
	now := time.Now()

	require.NoError(t, s.Save(ctx, &entity.Session{ID: "old", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, s.Save(ctx, &entity.Session{ID: "new", ExpiresAt: now.Add(time.Minute)}))

	n, err := s.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, s.Len())

	_, err = s.Get(ctx, "old")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSessionStoreCopiesIdentity(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore()
	sess := &entity.Session{ID: "s", Identity: &entity.Identity{Email: "a@x.com", Role: entity.RoleUser}}
	require.NoError(t, s.Save(ctx, sess))

	sess.Identity.Role = entity.RoleAdmin
	got, err := s.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, got.Identity.Role)
}

func TestSessionStoreRefreshOnlyExisting(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore()
	sess := &entity.Session{ID: "s1", ExpiresAt: time.Now().Add(time.Minute)}

	assert.ErrorIs(t, s.Refresh(ctx, sess), apperror.ErrNotFound)
	assert.Zero(t, s.Len())

	require.NoError(t, s.Save(ctx, sess))
	sess.ExpiresAt = sess.ExpiresAt.Add(time.Minute)
	require.NoError(t, s.Refresh(ctx, sess))
	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, sess.ExpiresAt.Equal(got.ExpiresAt))
}
