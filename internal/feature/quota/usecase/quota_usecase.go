package usecase

import (
	"context"
	"fmt"
	"time"

	"stock_sentiment/internal/feature/quota/domain/entity"
)

// LimitRepository persists UserLimitRecords.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type LimitRepository interface {
	// IncrementIfBelow atomically creates the (userID, day) record with count 1 or
	// increments it while count < limit, in one store operation. It returns the new
	// count and true, or false when the record is already at limit.
	IncrementIfBelow(ctx context.Context, userID string, day time.Time, limit int, now time.Time) (int, bool, error)

	// CountFor returns the count for (userID, day), 0 when no record exists.
	CountFor(ctx context.Context, userID string, day time.Time) (int, error)

	// Decrement lowers the count for (userID, day) by one, never below zero.
	Decrement(ctx context.Context, userID string, day time.Time, now time.Time) error
}

type quotaUsecase struct {
	limits LimitRepository
	limit  int
	now    func() time.Time
}

// NewQuotaUsecase creates the quota usecase with entity.DailyLimit.
func NewQuotaUsecase(limits LimitRepository) *quotaUsecase {
	return &quotaUsecase{limits: limits, limit: entity.DailyLimit, now: time.Now}
}

// DailyLimit returns the configured ceiling.
func (u *quotaUsecase) DailyLimit() int {
	return u.limit
}

// Reserve consumes one analysis for today when any remain.
func (u *quotaUsecase) Reserve(ctx context.Context, userID string) (entity.Reservation, error) {
	if userID == "" {
		return entity.Reservation{}, ErrMissingUser
	}
	now := u.now().UTC()
	day := entity.DayStart(now)

	count, ok, err := u.limits.IncrementIfBelow(ctx, userID, day, u.limit, now)
	if err != nil {
		return entity.Reservation{}, fmt.Errorf("check and update limit: %w", err)
	}
	res := entity.Reservation{UserID: userID, Day: day, Allowed: ok}
	if ok {
		res.Remaining = max(u.limit-count, 0)
	}
	return res, nil
}

// CheckAndUpdateLimit reports whether the user may run another analysis today and,
// if so, records it. remaining is what is left after this call.
func (u *quotaUsecase) CheckAndUpdateLimit(ctx context.Context, userID string) (allowed bool, remaining int, err error) {
	res, err := u.Reserve(ctx, userID)
	if err != nil {
		return false, 0, err
	}
	return res.Allowed, res.Remaining, nil
}

// Release gives back an allowed reservation, e.g. after the analysis failed.
func (u *quotaUsecase) Release(ctx context.Context, res entity.Reservation) error {
	if !res.Allowed {
		return nil
	}
	if err := u.limits.Decrement(ctx, res.UserID, res.Day, u.now().UTC()); err != nil {
		return fmt.Errorf("release limit: %w", err)
	}
	return nil
}

// GetRemainingAnalyses is a read-only view of today's record.
func (u *quotaUsecase) GetRemainingAnalyses(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, ErrMissingUser
	}
	count, err := u.limits.CountFor(ctx, userID, entity.DayStart(u.now()))
	if err != nil {
		return 0, fmt.Errorf("get remaining analyses: %w", err)
	}
	return max(u.limit-count, 0), nil
}

// ResetsIn is the time left until the quota resets at UTC midnight.
func (u *quotaUsecase) ResetsIn() time.Duration {
	now := u.now()
	return entity.NextReset(now).Sub(now)
}
