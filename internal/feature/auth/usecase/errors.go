// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned when the username or email is already registered.
	ErrDuplicateUser = errors.New("username or email already registered")

	// ErrInvalidCredentials is returned for an unknown user or a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidUsername is returned when a username fails validation.
	ErrInvalidUsername = errors.New("username must be 3-32 characters of letters, digits, '_', '-' or '.'")

	// ErrInvalidEmail is returned when an email address fails validation.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrPasswordTooShort is returned when a password is shorter than minPasswordLength.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when a session has passed its expiry.
	ErrSessionExpired = errors.New("session has expired")
)
