package usecase

import "errors"

var (
	// ErrInvalidTimeRange is returned for a time range other than 24h, 7d, 30d or none.
	ErrInvalidTimeRange = errors.New("invalid time_range")

	// ErrInvalidTicker is returned for an empty or malformed ticker.
	ErrInvalidTicker = errors.New("invalid ticker")

	// ErrInvalidSentiment is returned when an article carries an unknown sentiment.
	ErrInvalidSentiment = errors.New("invalid sentiment")
)
