// Package usecase builds, queries and formats analysis articles.
package usecase

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"stock_sentiment/internal/feature/articles/domain/entity"
	"stock_sentiment/internal/feature/articles/transport/http/dto"
)

const (
	// DefaultUserLimit caps GetArticlesByUser when no limit is given.
	DefaultUserLimit = 50
	// DefaultTrendingLimit caps GetTrendingArticles when no limit is given.
	DefaultTrendingLimit = 10
	// MaxTrendingLimit is the largest trending page a caller may ask for.
	MaxTrendingLimit = 100
)

var tickerPattern = regexp.MustCompile(`^[A-Z0-9^][A-Z0-9.\-=]{0,14}$`)

// ArticleRepository abstracts article persistence.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ArticleRepository interface {
	// Create stores a and assigns a.ID.
	Create(ctx context.Context, a *entity.Article) error
	// FindByTicker returns every article for an upper-case ticker, newest first.
	FindByTicker(ctx context.Context, ticker string) ([]entity.Article, error)
	// FindByUser returns up to limit articles created by userID, newest first.
	FindByUser(ctx context.Context, userID string, limit int) ([]entity.Article, error)
	// FindTrending returns up to limit articles created at or after since (zero for
	// no filter), newest first.
	FindTrending(ctx context.Context, since time.Time, limit int) ([]entity.Article, error)
}

type articleUsecase struct {
	repo ArticleRepository
	now  func() time.Time
}

// NewArticleUsecase creates a new instance of articleUsecase.
func NewArticleUsecase(repo ArticleRepository) *articleUsecase {
	return &articleUsecase{repo: repo, now: time.Now}
}

// ValidateTicker normalizes ticker and checks it looks like a stock symbol.
func ValidateTicker(ticker string) (string, error) {
	t := entity.NormalizeTicker(ticker)
	if !tickerPattern.MatchString(t) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTicker, ticker)
	}
	return t, nil
}

// CreateArticle persists a new analysis with an upper-case ticker and a UTC creation time.
func (u *articleUsecase) CreateArticle(ctx context.Context, ticker, sentiment, summary, analysis, userID string) (*entity.Article, error) {
	t, err := ValidateTicker(ticker)
	if err != nil {
		return nil, err
	}
	s, err := entity.ParseSentiment(sentiment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSentiment, err)
	}

	a := &entity.Article{
		Ticker:           t,
		OverallSentiment: s,
		Summary:          summary,
		Analysis:         analysis,
		UserID:           userID,
		CreatedAt:        u.now().UTC(),
	}
	if err := u.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return a, nil
}

// GetArticlesByTicker returns a ticker's articles, newest first.
func (u *articleUsecase) GetArticlesByTicker(ctx context.Context, ticker string) ([]entity.Article, error) {
	t := entity.NormalizeTicker(ticker)
	if t == "" {
		return nil, ErrInvalidTicker
	}
	return u.repo.FindByTicker(ctx, t)
}

// GetArticlesByUser returns a user's articles, newest first. limit <= 0 means DefaultUserLimit.
func (u *articleUsecase) GetArticlesByUser(ctx context.Context, userID string, limit int) ([]entity.Article, error) {
	if limit <= 0 {
		limit = DefaultUserLimit
	}
	return u.repo.FindByUser(ctx, userID, limit)
}

// TrendingLimit maps a requested page size onto 1..MaxTrendingLimit.
// limit <= 0 means DefaultTrendingLimit.
func TrendingLimit(limit int) int {
	if limit <= 0 {
		return DefaultTrendingLimit
	}
	return min(limit, MaxTrendingLimit)
}

// GetTrendingArticles returns the most recent articles within timeRange, at most
// TrendingLimit(limit) of them.
func (u *articleUsecase) GetTrendingArticles(ctx context.Context, timeRange string, limit int) ([]entity.Article, error) {
	r, ok := entity.ParseTimeRange(timeRange)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeRange, timeRange)
	}
	return u.repo.FindTrending(ctx, r.Since(u.now()), TrendingLimit(limit))
}

// GetUserHistory groups a user's recent articles by ticker.
func (u *articleUsecase) GetUserHistory(ctx context.Context, userID string) ([]entity.TickerGroup, error) {
	articles, err := u.GetArticlesByUser(ctx, userID, DefaultUserLimit)
	if err != nil {
		return nil, err
	}
	return GroupByTicker(articles), nil
}

// GroupByTicker keeps tickers in order of first appearance and the input order inside each group.
func GroupByTicker(articles []entity.Article) []entity.TickerGroup {
	groups := []entity.TickerGroup{}
	index := map[string]int{}
	for _, a := range articles {
		i, ok := index[a.Ticker]
		if !ok {
			i = len(groups)
			index[a.Ticker] = i
			groups = append(groups, entity.TickerGroup{Ticker: a.Ticker})
		}
		groups[i].Articles = append(groups[i].Articles, a)
	}
	return groups
}

// FormatArticle renders a for the wire: string id and an RFC 3339 UTC timestamp.
func FormatArticle(a entity.Article) dto.ArticleResponse {
	return dto.ArticleResponse{
		ID:               a.ID,
		Ticker:           a.Ticker,
		OverallSentiment: string(a.OverallSentiment),
		Summary:          a.Summary,
		Analysis:         a.Analysis,
		UserID:           a.UserID,
		CreatedAt:        a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// FormatArticles applies FormatArticle to every element and never returns nil.
func FormatArticles(articles []entity.Article) []dto.ArticleResponse {
	out := make([]dto.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, FormatArticle(a))
	}
	return out
}
