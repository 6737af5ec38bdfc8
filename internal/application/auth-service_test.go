package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmms/tailor-master-service/internal/application"
	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/repository"
)

type mockUserRepo struct {
	users map[string]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*domain.User{}}
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) AddUser(_ context.Context, u *domain.User) error {
	if _, ok := m.users[u.Username]; ok {
		return repository.ErrDuplicate
	}
	u.ID = int64(len(m.users) + 1)
	cp := *u
	m.users[u.Username] = &cp
	return nil
}

func (m *mockUserRepo) UpdatePasswordHash(_ context.Context, username, hash string) error {
	u, ok := m.users[username]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *mockUserRepo) UpdateUsername(_ context.Context, oldName, newName string) error {
	u, ok := m.users[oldName]
	if !ok {
		return repository.ErrNotFound
	}
	if _, taken := m.users[newName]; taken {
		return repository.ErrDuplicate
	}
	delete(m.users, oldName)
	u.Username = newName
	m.users[newName] = u
	return nil
}

func (m *mockUserRepo) CountUsers(_ context.Context) (int, error) {
	return len(m.users), nil
}

func newAuthFixture(t *testing.T, ttl time.Duration) (*application.AuthService, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	svc := application.NewAuthService(repo, ttl)
	require.NoError(t, svc.EnsureDefaultAdmin(context.Background()))
	return svc, repo
}

func TestEnsureDefaultAdmin(t *testing.T) {
	svc, repo := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	n, _ := repo.CountUsers(ctx)
	assert.Equal(t, 1, n)

	// second call is a no-op
	require.NoError(t, svc.EnsureDefaultAdmin(ctx))
	n, _ = repo.CountUsers(ctx)
	assert.Equal(t, 1, n)
}

func TestLoginAndValidate(t *testing.T) {
	svc, _ := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ghost", "password")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)

	token, err := svc.Login(ctx, "admin", "password")
	require.NoError(t, err)
	assert.Equal(t, "admin", svc.Validate(token))

	svc.Logout(token)
	assert.Empty(t, svc.Validate(token))
	assert.Empty(t, svc.Validate("not-a-token"))
}

func TestSessionExpiry(t *testing.T) {
	svc, _ := newAuthFixture(t, time.Millisecond)
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin", "password")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	assert.Empty(t, svc.Validate(token))
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	assert.ErrorIs(t, svc.ChangePassword(ctx, "admin", "password", "short"), application.ErrWeakPassword)
	assert.ErrorIs(t, svc.ChangePassword(ctx, "admin", "wrong", "newsecret"), application.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, "admin", "password", "newsecret"))

	_, err := svc.Login(ctx, "admin", "password")
	assert.ErrorIs(t, err, application.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "admin", "newsecret")
	assert.NoError(t, err)
}

func TestChangeUsernameKeepsSessionAlive(t *testing.T) {
	svc, _ := newAuthFixture(t, time.Hour)
	ctx := context.Background()

	token, err := svc.Login(ctx, "admin", "password")
	require.NoError(t, err)

	require.NoError(t, svc.ChangeUsername(ctx, "admin", "tailor"))
	assert.Equal(t, "tailor", svc.Validate(token))

	_, err = svc.Login(ctx, "tailor", "password")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.ChangeUsername(ctx, "tailor", "  "), application.ErrValidation)
}
