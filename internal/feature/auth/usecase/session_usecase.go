package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stock_sentiment/internal/feature/auth/domain/entity"
)

// DefaultSessionTTL applies when the configured TTL is not positive.
const DefaultSessionTTL = 24 * time.Hour

// SessionRepository abstracts the persistence layer for session entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionRepository interface {
	// Create persists a new session until its ExpiresAt.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID returns ErrSessionNotFound when the token is unknown.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Delete removes a session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id string) error
}

type sessionUsecase struct {
	sessions SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionUsecase creates the session usecase.
func NewSessionUsecase(sessions SessionRepository, ttl time.Duration) *sessionUsecase {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &sessionUsecase{sessions: sessions, ttl: ttl, now: time.Now}
}

// TTL returns the lifetime given to new sessions.
func (u *sessionUsecase) TTL() time.Duration {
	return u.ttl
}

// generateSessionID returns 32 random bytes as 64 hex characters.
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// CreateSession starts a session for user.
func (u *sessionUsecase) CreateSession(ctx context.Context, user *entity.UserPublic) (*entity.Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}
	now := u.now().UTC()
	s := &entity.Session{
		ID:        id,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(u.ttl),
	}
	if err := u.sessions.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return s, nil
}

// LookupSession returns a live session. Expired sessions are removed.
func (u *sessionUsecase) LookupSession(ctx context.Context, id string) (*entity.Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	s, err := u.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.IsExpired(u.now()) {
		if err := u.sessions.Delete(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
			slog.Warn("failed to delete expired session", "error", err)
		}
		return nil, ErrSessionExpired
	}
	return s, nil
}

// InvalidateSession ends a session.
func (u *sessionUsecase) InvalidateSession(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return u.sessions.Delete(ctx, id)
}
