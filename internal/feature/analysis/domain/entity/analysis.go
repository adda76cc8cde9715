// Package entity defines what the news-analysis agent produces.
package entity

import "time"

// NewsAnalysis is the structured answer of the model for one ticker.
type NewsAnalysis struct {
	Ticker           string `json:"ticker"`
	OverallSentiment string `json:"overall_sentiment"`
	Summary          string `json:"summary"`
	Analysis         string `json:"analysis"`
}

// NewsStory is one item of a news feed.
type NewsStory struct {
	ID          string
	Title       string
	URL         string
	Site        string
	Description string
	Tickers     []string
	Time        time.Time
}

// Field describes one property of NewsAnalysis for provider response schemas.
type Field struct {
	Name        string
	Description string
	Enum        []string
}

// NewsAnalysisFields is the response contract every provider is asked to follow.
var NewsAnalysisFields = []Field{
	{Name: "ticker", Description: "the ticker symbol of the company"},
	{
		Name:        "overall_sentiment",
		Description: "overall sentiment of the news (Bearish / Neutral / Bullish)",
		Enum:        []string{"Bearish", "Neutral", "Bullish"},
	},
	{Name: "summary", Description: "concise summary of the news"},
	{Name: "analysis", Description: "markdown table with per-article sentiment and reasoning"},
}

// Stage is a step of one analysis request.
type Stage string

const (
	StageReceived      Stage = "received"
	StageAuthorizing   Stage = "authorizing"
	StageLimitChecking Stage = "limit_checking"
	StageAnalyzing     Stage = "analyzing"
	StagePersisting    Stage = "persisting"
	StageResponding    Stage = "responding"
	StageFailed        Stage = "failed"
)
