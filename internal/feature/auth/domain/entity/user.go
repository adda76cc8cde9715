// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User is a registered account. PasswordHash and Salt never leave the auth feature;
// everything outside it works with UserPublic.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Salt         string
	CreatedAt    time.Time
}

// UserPublic is the client-safe projection of a User.
type UserPublic struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Public drops the password fields.
func (u *User) Public() *UserPublic {
	return &UserPublic{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
