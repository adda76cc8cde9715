// Package entity defines persisted analysis results.
package entity

import (
	"fmt"
	"strings"
	"time"
)

// Sentiment is the overall market mood an analysis settled on.
type Sentiment string

const (
	SentimentBearish Sentiment = "Bearish"
	SentimentNeutral Sentiment = "Neutral"
	SentimentBullish Sentiment = "Bullish"
)

// ParseSentiment accepts the three sentiments in any letter case.
func ParseSentiment(s string) (Sentiment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bearish":
		return SentimentBearish, nil
	case "neutral":
		return SentimentNeutral, nil
	case "bullish":
		return SentimentBullish, nil
	}
	return "", fmt.Errorf("unknown sentiment %q", s)
}

// Article is one persisted analysis of a ticker. UserID is empty for anonymous analyses.
type Article struct {
	ID               string
	Ticker           string
	OverallSentiment Sentiment
	Summary          string
	Analysis         string
	UserID           string
	CreatedAt        time.Time
}

// NormalizeTicker is the canonical (upper case, trimmed) form of a ticker.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// TimeRange filters trending articles by age.
type TimeRange string

const (
	TimeRangeAll TimeRange = ""
	TimeRange24h TimeRange = "24h"
	TimeRange7d  TimeRange = "7d"
	TimeRange30d TimeRange = "30d"
)

// ParseTimeRange accepts "", "24h", "7d" and "30d".
func ParseTimeRange(s string) (TimeRange, bool) {
	switch r := TimeRange(strings.TrimSpace(s)); r {
	case TimeRangeAll, TimeRange24h, TimeRange7d, TimeRange30d:
		return r, true
	}
	return "", false
}

// Window is the age covered by r, 0 for no filter.
func (r TimeRange) Window() time.Duration {
	switch r {
	case TimeRange24h:
		return 24 * time.Hour
	case TimeRange7d:
		return 7 * 24 * time.Hour
	case TimeRange30d:
		return 30 * 24 * time.Hour
	}
	return 0
}

// Since is the oldest creation time included by r at now, zero for no filter.
func (r TimeRange) Since(now time.Time) time.Time {
	w := r.Window()
	if w == 0 {
		return time.Time{}
	}
	return now.UTC().Add(-w)
}

// TickerGroup is a user's articles for one ticker, newest first.
type TickerGroup struct {
	Ticker   string
	Articles []Article
}
