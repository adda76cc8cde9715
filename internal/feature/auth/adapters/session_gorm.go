package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"stock_sentiment/internal/feature/auth/domain/entity"
	"stock_sentiment/internal/feature/auth/usecase"
)

// sessionGorm is the relational SessionRepository used when Redis is not configured.
type sessionGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure sessionGorm implements SessionRepository.
var _ usecase.SessionRepository = (*sessionGorm)(nil)

// NewSessionGorm creates a new instance of sessionGorm.
func NewSessionGorm(db *gorm.DB) *sessionGorm {
	return &sessionGorm{db: db}
}

// Create persists a new session.
func (r *sessionGorm) Create(ctx context.Context, s *entity.Session) error {
	return r.db.WithContext(ctx).Create(sessionModelFromEntity(s)).Error
}

// FindByID retrieves an unexpired session by token.
func (r *sessionGorm) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var m SessionModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, time.Now().UTC()).
		Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return m.toEntity(), nil
}

// Delete removes a session by token.
func (r *sessionGorm) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&SessionModel{}).Error
}

// DeleteExpired removes expired sessions and returns how many were deleted.
// Redis and the Mongo TTL index expire sessions on their own; the relational store
// needs this called periodically.
func (r *sessionGorm) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", time.Now().UTC()).Delete(&SessionModel{})
	return res.RowsAffected, res.Error
}
