package di

import (
	"github.com/redis/go-redis/v9"

	"stock_sentiment/internal/feature/auth/usecase"
	"stock_sentiment/internal/platform/session"
)

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the store's own session table or collection.
func NewSessionRepository(rdb *redis.Client, store *Store) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return store.Sessions
}
