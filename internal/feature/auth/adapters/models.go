// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"time"

	"stock_sentiment/internal/feature/auth/domain/entity"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Username     string    `gorm:"uniqueIndex;size:32;not null"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"size:128;not null"`
	Salt         string    `gorm:"size:64;not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) toEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Salt:         m.Salt,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

// SessionModel is the GORM model for the sessions table, used when Redis is not configured.
type SessionModel struct {
	ID            string    `gorm:"primaryKey;size:64"`
	UserID        string    `gorm:"index;size:36;not null"`
	Username      string    `gorm:"size:32;not null"`
	Email         string    `gorm:"size:255;not null"`
	UserCreatedAt time.Time `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
	ExpiresAt     time.Time `gorm:"index;not null"`
}

// TableName returns the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}

func (m *SessionModel) toEntity() *entity.Session {
	return &entity.Session{
		ID: m.ID,
		User: entity.UserPublic{
			ID:        m.UserID,
			Username:  m.Username,
			Email:     m.Email,
			CreatedAt: m.UserCreatedAt.UTC(),
		},
		CreatedAt: m.CreatedAt.UTC(),
		ExpiresAt: m.ExpiresAt.UTC(),
	}
}

func sessionModelFromEntity(s *entity.Session) *SessionModel {
	return &SessionModel{
		ID:            s.ID,
		UserID:        s.User.ID,
		Username:      s.User.Username,
		Email:         s.User.Email,
		UserCreatedAt: s.User.CreatedAt,
		CreatedAt:     s.CreatedAt,
		ExpiresAt:     s.ExpiresAt,
	}
}

// Models lists the GORM models this feature migrates.
func Models() []any {
	return []any{&UserModel{}, &SessionModel{}}
}
