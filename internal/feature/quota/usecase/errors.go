// Package usecase implements the per-user daily analysis quota.
package usecase

import "errors"

var (
	// ErrDailyLimitExceeded is returned when the user has used every analysis for today.
	ErrDailyLimitExceeded = errors.New("daily analysis limit reached")

	// ErrMissingUser is returned when no user id was supplied.
	ErrMissingUser = errors.New("user id is required")
)
