// Package tickertick provides a client for the tickertick news feed API.
package tickertick

import (
	"os"
	"time"
)

const (
	// DefaultBaseURL is the public tickertick API.
	DefaultBaseURL = "https://api.tickertick.com"
	// RequestsPerMinute is the documented per-client limit of the feed API.
	RequestsPerMinute = 10
	// DefaultTimeout bounds one feed request.
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration for the tickertick client.
type Config struct {
	BaseURL string        // e.g. "https://api.tickertick.com"
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads tickertick configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("TICKERTICK_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		BaseURL: base,
		Timeout: DefaultTimeout,
	}
}
