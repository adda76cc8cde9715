// Package agent combines a news feed with a language model to analyze a ticker.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"stock_sentiment/internal/feature/analysis/domain/entity"
	"stock_sentiment/internal/feature/analysis/usecase"
	articleentity "stock_sentiment/internal/feature/articles/domain/entity"
)

const (
	// storiesPerFeed is how many stories are requested from each feed query.
	storiesPerFeed = 20
	// minFocusedStories below this, the broad ticker feed is consulted as well.
	minFocusedStories = 5
	// maxPromptStories caps the stories passed to the model.
	maxPromptStories = 30
)

// SystemPrompt instructs the model how to judge the news.
const SystemPrompt = `You are a financial analyst.
You receive recent news stories about one stock ticker.
Judge the likely impact of each story on the stock price and classify it as Bearish, Neutral or Bullish.
Then decide the overall sentiment of the news as a whole.
Answer only with a JSON object with these fields:
- ticker: the ticker symbol of the company
- overall_sentiment: one of Bearish, Neutral, Bullish
- summary: a concise summary of the news in at most five sentences
- analysis: a markdown table with the columns Title, Sentiment, Reasoning, one row per story
If there is no news, answer Neutral and say so in the summary.`

// NewsSource returns news stories about a ticker.
type NewsSource interface {
	TickerNews(ctx context.Context, ticker string, limit int) ([]entity.NewsStory, error)
	BroadTickerNews(ctx context.Context, ticker string, limit int) ([]entity.NewsStory, error)
}

// Completion is one prompt for a model that answers with JSON.
type Completion struct {
	System string
	User   string
}

// Completer sends a prompt to a model and returns its raw JSON answer.
type Completer interface {
	Complete(ctx context.Context, req Completion) (string, error)
	Name() string
}

// Agent implements usecase.NewsAnalyzer.
type Agent struct {
	news  NewsSource
	model Completer
}

var _ usecase.NewsAnalyzer = (*Agent)(nil)

// New creates an Agent.
func New(news NewsSource, model Completer) *Agent {
	return &Agent{news: news, model: model}
}

// Analyze fetches news for ticker and asks the model for a NewsAnalysis.
func (a *Agent) Analyze(ctx context.Context, ticker string) (*entity.NewsAnalysis, error) {
	stories, err := a.collect(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch news for %s: %w", ticker, err)
	}

	raw, err := a.model.Complete(ctx, Completion{System: SystemPrompt, User: BuildPrompt(ticker, stories)})
	if err != nil {
		return nil, fmt.Errorf("%s completion: %w", a.model.Name(), err)
	}

	out, err := ParseAnalysis(raw, ticker)
	if err != nil {
		return nil, fmt.Errorf("%s answer: %w", a.model.Name(), err)
	}
	slog.Info("analyzed news", "ticker", ticker, "stories", len(stories), "provider", a.model.Name(), "sentiment", out.OverallSentiment)
	return out, nil
}

// collect prefers the focused feed and tops it up from the broad one.
func (a *Agent) collect(ctx context.Context, ticker string) ([]entity.NewsStory, error) {
	focused, ferr := a.news.TickerNews(ctx, ticker, storiesPerFeed)
	if ferr == nil && len(focused) >= minFocusedStories {
		return focused, nil
	}

	broad, berr := a.news.BroadTickerNews(ctx, ticker, storiesPerFeed)
	if ferr != nil && berr != nil {
		return nil, errors.Join(ferr, berr)
	}
	if ferr != nil {
		slog.Warn("focused news feed failed", "ticker", ticker, "error", ferr)
	}
	if berr != nil {
		slog.Warn("broad news feed failed", "ticker", ticker, "error", berr)
	}
	return mergeStories(focused, broad), nil
}

func mergeStories(lists ...[]entity.NewsStory) []entity.NewsStory {
	seen := map[string]struct{}{}
	var out []entity.NewsStory
	for _, l := range lists {
		for _, s := range l {
			key := s.ID
			if key == "" {
				key = s.URL
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, s)
		}
	}
	if len(out) > maxPromptStories {
		out = out[:maxPromptStories]
	}
	return out
}

// BuildPrompt renders the user message for ticker.
func BuildPrompt(ticker string, stories []entity.NewsStory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The ticker you need to analyze is %s.\n", ticker)
	if len(stories) == 0 {
		b.WriteString("No recent news stories were found.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Recent news stories (%d):\n", len(stories))
	for i, s := range stories {
		fmt.Fprintf(&b, "%d. [%s] %s (%s)\n", i+1, s.Time.Format("2006-01-02 15:04 UTC"), s.Title, s.Site)
		if d := strings.TrimSpace(s.Description); d != "" {
			fmt.Fprintf(&b, "   %s\n", d)
		}
	}
	return b.String()
}

// ParseAnalysis decodes the model answer and validates the sentiment. Code fences
// around the JSON are tolerated. An empty ticker is filled with the requested one.
func ParseAnalysis(raw, ticker string) (*entity.NewsAnalysis, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	var out entity.NewsAnalysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &out); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	sentiment, err := articleentity.ParseSentiment(out.OverallSentiment)
	if err != nil {
		return nil, err
	}
	out.OverallSentiment = string(sentiment)
	if strings.TrimSpace(out.Summary) == "" {
		return nil, errors.New("analysis has no summary")
	}
	if out.Ticker == "" {
		out.Ticker = ticker
	}
	out.Ticker = articleentity.NormalizeTicker(out.Ticker)
	return &out, nil
}
