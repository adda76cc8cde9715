package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"stock_sentiment/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength is the minimum number of characters in a password.
	minPasswordLength = 8

	// dummySalt and dummyHash are used when the user does not exist so that a failed
	// login costs the same as a wrong password.
	dummySalt = "00000000000000000000000000000000"
	dummyHash = "0000000000000000000000000000000000000000000000000000000000000000"
)

var validUsername = regexp.MustCompile(`^[A-Za-z0-9_.\-]{3,32}$`)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create stores a new user and assigns its ID. Uniqueness of username and email
	// is enforced by the store; a violation returns ErrDuplicateUser.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername returns ErrUserNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID returns ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

type authUsecase struct {
	users UserRepository
	now   func() time.Time
}

// NewAuthUsecase creates the account usecase.
func NewAuthUsecase(users UserRepository) *authUsecase {
	return &authUsecase{
		users: users,
		now:   time.Now,
	}
}

// validateRegistration checks the user-supplied fields of a registration.
func validateRegistration(username, email, password string) error {
	if !validUsername.MatchString(username) {
		return ErrInvalidUsername
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// CreateUser registers a user and returns it without password fields.
func (u *authUsecase) CreateUser(ctx context.Context, username, email, password string) (*entity.UserPublic, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	hash, salt, err := HashPassword(password, "")
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    u.now().UTC(),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// AuthenticateUser returns the user when username and password match and
// ErrInvalidCredentials otherwise, without telling the two failure cases apart.
func (u *authUsecase) AuthenticateUser(ctx context.Context, username, password string) (*entity.UserPublic, error) {
	user, err := u.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	salt, hash := dummySalt, dummyHash
	if user != nil {
		salt, hash = user.Salt, user.PasswordHash
	}
	match := VerifyPassword(password, salt, hash)

	if user == nil || !match {
		return nil, ErrInvalidCredentials
	}
	return user.Public(), nil
}

// GetUserByID returns the public view of a user.
func (u *authUsecase) GetUserByID(ctx context.Context, id string) (*entity.UserPublic, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}
