package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmms/tailor-master-service/internal/domain"
	"github.com/tmms/tailor-master-service/internal/repository"
)

func TestUserAddAndGet(t *testing.T) {
	repo := repository.NewUserRepository(newTestStore(t))
	ctx := context.Background()

	u := &domain.User{Username: "admin", PasswordHash: "hash-1"}
	require.NoError(t, repo.AddUser(ctx, u))
	assert.NotZero(t, u.ID)

	got, err := repo.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hash-1", got.PasswordHash)

	got, err = repo.GetUserByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, got)

	err = repo.AddUser(ctx, &domain.User{Username: "admin", PasswordHash: "hash-2"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	n, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUserUpdates(t *testing.T) {
	repo := repository.NewUserRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.AddUser(ctx, &domain.User{Username: "admin", PasswordHash: "hash-1"}))
	require.NoError(t, repo.AddUser(ctx, &domain.User{Username: "helper", PasswordHash: "hash-2"}))

	require.NoError(t, repo.UpdatePasswordHash(ctx, "admin", "hash-3"))
	got, err := repo.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hash-3", got.PasswordHash)

	assert.ErrorIs(t, repo.UpdatePasswordHash(ctx, "ghost", "x"), repository.ErrNotFound)

	require.NoError(t, repo.UpdateUsername(ctx, "admin", "tailor"))
	got, err = repo.GetUserByUsername(ctx, "tailor")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.ErrorIs(t, repo.UpdateUsername(ctx, "tailor", "helper"), repository.ErrDuplicate)
	assert.ErrorIs(t, repo.UpdateUsername(ctx, "ghost", "other"), repository.ErrNotFound)
}
