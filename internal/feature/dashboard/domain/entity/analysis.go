// Package entity defines the types the web front-end exchanges with the analysis service.
package entity

import articleentity "stock_sentiment/internal/feature/articles/domain/entity"

// AnalysisRequest asks the analysis service to analyze Ticker on behalf of a user.
type AnalysisRequest struct {
	UserID   string
	Username string
	Ticker   string
}

// AnalysisReply is the analysis service's answer, whatever its status.
type AnalysisReply struct {
	StatusCode        int
	Status            string
	Message           string
	Ticker            string
	RemainingAnalyses int
	Error             string
}

// AnalysisOutcome is a completed analysis as shown to the browser.
type AnalysisOutcome struct {
	Ticker            string
	Message           string
	RemainingAnalyses int
	RedirectTo        string
}

// Quota is the caller's allowance for the current UTC day.
type Quota struct {
	Remaining  int
	DailyLimit int
}

// History is the data behind the history page. Quota is nil when it could not be read.
type History struct {
	Groups []articleentity.TickerGroup
	Quota  *Quota
}
