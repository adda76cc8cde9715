package entity

import "time"

// Session binds a random token held in the browser cookie to a user until ExpiresAt.
type Session struct {
	ID        string     `json:"id"` // 64-character hex token
	User      UserPublic `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// IsExpired reports whether now is past the expiry.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
