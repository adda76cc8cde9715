package adapters

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stock_sentiment/internal/feature/auth/domain/entity"
	"stock_sentiment/internal/feature/auth/usecase"
	platformdb "stock_sentiment/internal/platform/db"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := platformdb.OpenSQLite(":memory:")
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, db.AutoMigrate(Models()...), "failed to migrate tables")
	t.Cleanup(func() { _ = platformdb.Close(db) })

	return db
}

func newUser(username, email string) *entity.User {
	return &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		Salt:         "salt",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestUserGorm_Create(t *testing.T) {
	t.Parallel()

	t.Run("assigns id", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		u := newUser("alice", "alice@example.com")

		require.NoError(t, repo.Create(context.Background(), u))
		assert.Len(t, u.ID, 36)
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		require.NoError(t, repo.Create(context.Background(), newUser("alice", "alice@example.com")))

		err := repo.Create(context.Background(), newUser("alice", "other@example.com"))
		assert.ErrorIs(t, err, usecase.ErrDuplicateUser)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		require.NoError(t, repo.Create(context.Background(), newUser("alice", "alice@example.com")))

		err := repo.Create(context.Background(), newUser("bob", "alice@example.com"))
		assert.ErrorIs(t, err, usecase.ErrDuplicateUser)
	})

	t.Run("nil user", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		assert.Error(t, repo.Create(context.Background(), nil))
	})
}

func TestUserGorm_ConcurrentDuplicateRegistration(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserGorm(db)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(context.Background(), newUser("racer", "racer@example.com"))
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, usecase.ErrDuplicateUser)
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, db.Model(&UserModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserGorm_Find(t *testing.T) {
	t.Parallel()

	repo := NewUserGorm(setupTestDB(t))
	ctx := context.Background()

	users := []*entity.User{
		newUser("user1", "user1@example.com"),
		newUser("user2", "user2@example.com"),
		newUser("user3", "user3@example.com"),
	}
	for _, u := range users {
		require.NoError(t, repo.Create(ctx, u))
	}

	byName, err := repo.FindByUsername(ctx, "user2")
	require.NoError(t, err)
	assert.Equal(t, users[1].ID, byName.ID)
	assert.Equal(t, "user2@example.com", byName.Email)
	assert.Equal(t, "hash", byName.PasswordHash)
	assert.Equal(t, users[1].CreatedAt.Unix(), byName.CreatedAt.Unix())

	byID, err := repo.FindByID(ctx, users[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "user3", byID.Username)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)

	_, err = repo.FindByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}
