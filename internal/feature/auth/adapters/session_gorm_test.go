package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_sentiment/internal/feature/auth/domain/entity"
	"stock_sentiment/internal/feature/auth/usecase"
)

func newSession(id string, expiresIn time.Duration) *entity.Session {
	now := time.Now().UTC().Truncate(time.Second)
	return &entity.Session{
		ID:        id,
		User:      entity.UserPublic{ID: "u1", Username: "alice", Email: "alice@example.com", CreatedAt: now},
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestSessionGorm_CreateFindDelete(t *testing.T) {
	t.Parallel()

	repo := NewSessionGorm(setupTestDB(t))
	ctx := context.Background()

	s := newSession("token-1", time.Hour)
	require.NoError(t, repo.Create(ctx, s))

	found, err := repo.FindByID(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, s.User.Username, found.User.Username)
	assert.Equal(t, s.ExpiresAt.Unix(), found.ExpiresAt.Unix())

	require.NoError(t, repo.Delete(ctx, "token-1"))
	_, err = repo.FindByID(ctx, "token-1")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)

	assert.NoError(t, repo.Delete(ctx, "never-existed"))
}

func TestSessionGorm_ExpiredIsNotFound(t *testing.T) {
	t.Parallel()

	repo := NewSessionGorm(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSession("old", -time.Minute)))
	require.NoError(t, repo.Create(ctx, newSession("live", time.Hour)))

	_, err := repo.FindByID(ctx, "old")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)

	deleted, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.FindByID(ctx, "live")
	assert.NoError(t, err)
}
