package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_sentiment/internal/feature/auth/domain/entity"
)

type mockSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session

	CreateFunc func(ctx context.Context, s *entity.Session) error
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: map[string]*entity.Session{}}
}

func (m *mockSessionRepository) Create(ctx context.Context, s *entity.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *mockSessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockSessionRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

var testUser = &entity.UserPublic{ID: "u1", Username: "alice", Email: "alice@example.com"}

func TestSessionUsecase_CreateLookupInvalidate(t *testing.T) {
	t.Parallel()

	repo := newMockSessionRepository()
	uc := NewSessionUsecase(repo, time.Hour)
	ctx := context.Background()

	s, err := uc.CreateSession(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, s.ID, 64)
	assert.Equal(t, *testUser, s.User)
	assert.WithinDuration(t, s.CreatedAt.Add(time.Hour), s.ExpiresAt, time.Second)

	found, err := uc.LookupSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.User.Username)

	require.NoError(t, uc.InvalidateSession(ctx, s.ID))
	_, err = uc.LookupSession(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionUsecase_LookupExpired(t *testing.T) {
	t.Parallel()

	repo := newMockSessionRepository()
	uc := NewSessionUsecase(repo, time.Hour)
	ctx := context.Background()

	s, err := uc.CreateSession(ctx, testUser)
	require.NoError(t, err)

	uc.now = func() time.Time { return s.ExpiresAt.Add(time.Second) }

	_, err = uc.LookupSession(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, repo.sessions, "expired session is removed")
}

func TestSessionUsecase_LookupEmptyID(t *testing.T) {
	t.Parallel()

	uc := NewSessionUsecase(newMockSessionRepository(), 0)
	assert.Equal(t, DefaultSessionTTL, uc.TTL())

	_, err := uc.LookupSession(context.Background(), "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.NoError(t, uc.InvalidateSession(context.Background(), ""))
}

func TestSessionUsecase_CreateStoreFailure(t *testing.T) {
	t.Parallel()

	repo := newMockSessionRepository()
	repo.CreateFunc = func(context.Context, *entity.Session) error { return errors.New("redis down") }

	_, err := NewSessionUsecase(repo, time.Hour).CreateSession(context.Background(), testUser)
	assert.ErrorContains(t, err, "redis down")
}
