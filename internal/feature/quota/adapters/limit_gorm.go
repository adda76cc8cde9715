package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_sentiment/internal/feature/quota/domain/entity"
	"stock_sentiment/internal/feature/quota/usecase"
)

// UserLimitModel is the user_limits table. (user_id, day) is unique.
type UserLimitModel struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       string    `gorm:"size:64;not null;uniqueIndex:idx_user_limits_user_day,priority:1"`
	Day          string    `gorm:"size:10;not null;uniqueIndex:idx_user_limits_user_day,priority:2"`
	Date         time.Time `gorm:"not null"`
	RequestCount int       `gorm:"not null;default:0"`
	UpdatedAt    time.Time
}

func (UserLimitModel) TableName() string { return "user_limits" }

func (m *UserLimitModel) toEntity() *entity.UserLimitRecord {
	return &entity.UserLimitRecord{
		UserID:    m.UserID,
		Date:      m.Date.UTC(),
		Count:     m.RequestCount,
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// Models lists the tables owned by this feature for AutoMigrate.
func Models() []any {
	return []any{&UserLimitModel{}}
}

type limitGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure limitGorm implements LimitRepository.
var _ usecase.LimitRepository = (*limitGorm)(nil)

// NewLimitGorm creates a new instance of limitGorm.
func NewLimitGorm(db *gorm.DB) *limitGorm {
	return &limitGorm{db: db}
}

// IncrementIfBelow is one INSERT ... ON CONFLICT DO UPDATE ... WHERE request_count < limit
// RETURNING request_count. When the row is capped the conflict update is skipped and no row
// comes back. The returned count is the one this statement wrote, so concurrent callers each
// see their own slot.
func (r *limitGorm) IncrementIfBelow(ctx context.Context, userID string, day time.Time, limit int, now time.Time) (int, bool, error) {
	row := UserLimitModel{
		UserID:       userID,
		Day:          entity.DayKey(day),
		Date:         entity.DayStart(day),
		RequestCount: 1,
		UpdatedAt:    now,
	}
	res := r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "day"}},
			DoUpdates: clause.Assignments(map[string]any{
				"request_count": gorm.Expr("user_limits.request_count + 1"),
				"updated_at":    now,
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				gorm.Expr("user_limits.request_count < ?", limit),
			}},
		},
		clause.Returning{Columns: []clause.Column{{Name: "request_count"}}},
	).Create(&row)
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected == 0 {
		return limit, false, nil
	}
	return row.RequestCount, true, nil
}

// CountFor returns today's count, 0 when the user has no record.
func (r *limitGorm) CountFor(ctx context.Context, userID string, day time.Time) (int, error) {
	rec, err := r.Find(ctx, userID, day)
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return 0, nil
	}
	return rec.Count, nil
}

// Find returns the record for (userID, day) or nil.
func (r *limitGorm) Find(ctx context.Context, userID string, day time.Time) (*entity.UserLimitRecord, error) {
	var m UserLimitModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, entity.DayKey(day)).
		Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m.toEntity(), nil
}

// Decrement lowers the count by one, never below zero.
func (r *limitGorm) Decrement(ctx context.Context, userID string, day time.Time, now time.Time) error {
	return r.db.WithContext(ctx).
		Model(&UserLimitModel{}).
		Where("user_id = ? AND day = ? AND request_count > 0", userID, entity.DayKey(day)).
		Updates(map[string]any{
			"request_count": gorm.Expr("request_count - 1"),
			"updated_at":    now,
		}).Error
}
