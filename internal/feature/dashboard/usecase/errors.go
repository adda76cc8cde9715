// Package usecase implements the web front-end's dashboard logic.
package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTicker is returned before contacting the analysis service.
	ErrInvalidTicker = errors.New("invalid ticker")

	// ErrServiceUnavailable is returned when the analysis service could not be reached.
	ErrServiceUnavailable = errors.New("LLM service request failed")
)

// UpstreamError carries a non-success answer of the analysis service to the browser.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("analysis service returned %d: %s", e.StatusCode, e.Message)
}
