package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stock_sentiment/internal/feature/auth/domain/entity"
	"stock_sentiment/internal/feature/auth/usecase"
)

// userGorm implements UserRepository on a relational database through GORM.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new instance of userGorm.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts the user. The unique indexes on username and email turn a
// concurrent duplicate registration into ErrDuplicateUser (needs TranslateError).
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("nil user")
	}
	m := UserModel{
		ID:           uuid.NewString(),
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Salt:         u.Salt,
		CreatedAt:    u.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrDuplicateUser
		}
		return err
	}
	u.ID = m.ID
	return nil
}

// FindByUsername returns usecase.ErrUserNotFound when no row matches.
func (r *userGorm) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

// FindByID returns usecase.ErrUserNotFound when no row matches.
func (r *userGorm) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userGorm) findOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return m.toEntity(), nil
}
