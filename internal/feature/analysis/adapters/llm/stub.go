package llm

import (
	"context"

	"stock_sentiment/internal/feature/analysis/domain/entity"
	"stock_sentiment/internal/feature/analysis/usecase"
)

// StubAnalyzer answers every ticker with the same neutral analysis without any
// network access. Selected with LLM_API_PROVIDER=STUB.
type StubAnalyzer struct{}

var _ usecase.NewsAnalyzer = StubAnalyzer{}

func (StubAnalyzer) Analyze(ctx context.Context, ticker string) (*entity.NewsAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &entity.NewsAnalysis{
		Ticker:           ticker,
		OverallSentiment: "Neutral",
		Summary:          "Stub analysis for " + ticker + ". No news was fetched.",
		Analysis:         "| Title | Sentiment | Reasoning |\n|---|---|---|\n| (none) | Neutral | stub provider |",
	}, nil
}
