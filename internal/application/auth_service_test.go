package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-member-portal/internal/domain/apperror"
	"github.com/oksasatya/go-member-portal/internal/domain/entity"
	"github.com/oksasatya/go-member-portal/internal/infrastructure/memory"
	"github.com/oksasatya/go-member-portal/pkg/helpers"
)

type recordingRepo struct {
	*memory.UserRepository
	inserts int
}

func (r *recordingRepo) Insert(ctx context.Context, u *entity.User) (*entity.User, error) {
	r.inserts++
	return r.UserRepository.Insert(ctx, u)
}

type fakeIndexer struct {
	mu      sync.Mutex
	indexed map[string]entity.Role
	removed []string
	hits    []UserHit
	err     error
}

func newFakeIndexer() *fakeIndexer { return &fakeIndexer{indexed: map[string]entity.Role{}} }

func (f *fakeIndexer) Index(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed[u.Email] = u.Role
	return f.err
}

func (f *fakeIndexer) Remove(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, email)
	return f.err
}

func (f *fakeIndexer) Search(context.Context, string, int) ([]UserHit, error) {
	return f.hits, f.err
}

type fakeNotifier struct {
	welcomed []string
	err      error
}

func (f *fakeNotifier) Welcome(_ context.Context, u *entity.User) error {
	f.welcomed = append(f.welcomed, u.Email)
	return f.err
}

func validRegistration() RegisterInput {
	return RegisterInput{Email: "a@x.com", Name: "Ann", Password: "secret1", Password2: "secret1"}
}

func TestRegisterStoresHashAndDefaultsRole(t *testing.T) {
	repo := &recordingRepo{UserRepository: memory.NewUserRepository()}
	idx, notif := newFakeIndexer(), &fakeNotifier{}
	svc := NewAuthService(repo, helpers.NewDiscardLogger(), idx, notif)

	u, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	assert.Equal(t, entity.RoleUser, u.Role)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	ok, err := helpers.VerifyPassword(u.PasswordHash, "secret1")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, entity.RoleUser, idx.indexed["a@x.com"])
	assert.Equal(t, []string{"a@x.com"}, notif.welcomed)
}

func TestRegisterMismatchedPasswordsNeverTouchesStore(t *testing.T) {
	repo := &recordingRepo{UserRepository: memory.NewUserRepository()}
	svc := NewAuthService(repo, helpers.NewDiscardLogger(), nil, nil)

	in := validRegistration()
	in.Password2 = "secret2"
	_, err := svc.Register(context.Background(), in)

	assert.True(t, apperror.IsValidation(err))
	assert.Zero(t, repo.inserts)
}

func TestRegisterDuplicate(t *testing.T) {
	repo := &recordingRepo{UserRepository: memory.NewUserRepository()}
	svc := NewAuthService(repo, helpers.NewDiscardLogger(), nil, nil)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), validRegistration())
	assert.ErrorIs(t, err, apperror.ErrDuplicateKey)
}

func TestRegisterSideChannelFailuresAreIgnored(t *testing.T) {
	idx := newFakeIndexer()
	idx.err = errors.New("es down")
	svc := NewAuthService(memory.NewUserRepository(), helpers.NewDiscardLogger(), idx, &fakeNotifier{err: errors.New("amqp down")})

	_, err := svc.Register(context.Background(), validRegistration())
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := NewAuthService(repo, helpers.NewDiscardLogger(), nil, nil)
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	t.Run("ok", func(t *testing.T) {
		u, err := svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", u.Email)
	})
	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "wrong12"})
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	})
	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{Email: "b@x.com", Password: "secret1"})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
	t.Run("invalid payload", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "123"})
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestLoginMalformedHashFailsClosed(t *testing.T) {
	repo := memory.NewUserRepository()
	_, err := repo.Insert(context.Background(), &entity.User{Email: "a@x.com", Name: "Ann", PasswordHash: "garbage"})
	require.NoError(t, err)
	svc := NewAuthService(repo, helpers.NewDiscardLogger(), nil, nil)

	_, err = svc.Login(context.Background(), LoginInput{Email: "a@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}
