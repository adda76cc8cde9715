// Package dto holds the JSON shapes of the articles endpoints.
package dto

// ArticleResponse is an article on the wire. The store's internal id is rendered as ID.
type ArticleResponse struct {
	ID               string `json:"id"`
	Ticker           string `json:"ticker"`
	OverallSentiment string `json:"overall_sentiment"`
	Summary          string `json:"summary"`
	Analysis         string `json:"analysis"`
	UserID           string `json:"user_id,omitempty"`
	CreatedAt        string `json:"created_at"`
}

// TickerArticlesResponse is the body of GET /articles/:ticker.
type TickerArticlesResponse struct {
	Ticker   string            `json:"ticker"`
	Articles []ArticleResponse `json:"articles"`
}

// TrendingResponse is the body of GET /api/trending.
type TrendingResponse struct {
	TimeRange string            `json:"time_range"`
	Articles  []ArticleResponse `json:"articles"`
}
