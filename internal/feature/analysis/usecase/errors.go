package usecase

import (
	"errors"
	"fmt"

	"stock_sentiment/internal/feature/analysis/domain/entity"
)

var (
	ErrInvalidTicker  = errors.New("invalid ticker")
	ErrLoginRequired  = errors.New("login required")
	ErrLimitReached   = errors.New("daily analysis limit reached")
	ErrAnalysisFailed = errors.New("news analysis failed")
	ErrPersistFailed  = errors.New("failed to save analysis")
)

// StageError records the stage at which an analysis request failed.
type StageError struct {
	Stage entity.Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("analysis %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf returns the failed stage of err, or "" when err is not a *StageError.
func StageOf(err error) entity.Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
