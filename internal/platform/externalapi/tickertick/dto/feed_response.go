// Package dto defines data transfer objects for the tickertick API responses.
package dto

// FeedResponse represents the JSON response from the /feed endpoint.
type FeedResponse struct {
	Stories []Story `json:"stories"`
	LastID  string  `json:"last_id,omitempty"`
}

// Story is one feed item. Time is milliseconds since the Unix epoch.
type Story struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Site        string   `json:"site"`
	Time        int64    `json:"time"`
	FaviconURL  string   `json:"favicon_url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	Tickers     []string `json:"tickers,omitempty"`
}
