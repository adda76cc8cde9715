package tickertick

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stock_sentiment/internal/feature/analysis/domain/entity"
	"stock_sentiment/internal/platform/externalapi/tickertick/dto"
	"stock_sentiment/internal/shared/ratelimiter"
)

// MaxStories is the largest page the feed API serves.
const MaxStories = 50

// Client fetches news stories from the tickertick feed API.
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// NewClient creates a Client. limiter may be nil to disable client side throttling.
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// TickerNews returns stories about ticker from high quality sources.
func (c *Client) TickerNews(ctx context.Context, ticker string, limit int) ([]entity.NewsStory, error) {
	return c.Feed(ctx, "z:"+strings.ToLower(ticker), limit)
}

// BroadTickerNews returns every story tagged with ticker.
func (c *Client) BroadTickerNews(ctx context.Context, ticker string, limit int) ([]entity.NewsStory, error) {
	return c.Feed(ctx, "tt:"+strings.ToLower(ticker), limit)
}

// Feed runs a raw feed query. limit is clamped to 1..MaxStories.
func (c *Client) Feed(ctx context.Context, query string, limit int) ([]entity.NewsStory, error) {
	if c.limiter != nil {
		if err := c.limiter.WaitIfNeeded(ctx); err != nil {
			return nil, fmt.Errorf("tickertick rate limit wait: %w", err)
		}
	}

	limit = min(max(limit, 1), MaxStories)
	q := url.Values{}
	q.Set("q", query)
	q.Set("n", strconv.Itoa(limit))
	u := fmt.Sprintf("%s/feed?%s", strings.TrimRight(c.cfg.BaseURL, "/"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("tickertick http %d", res.StatusCode)
	}

	var body dto.FeedResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode tickertick feed: %w", err)
	}

	stories := make([]entity.NewsStory, 0, len(body.Stories))
	for _, s := range body.Stories {
		stories = append(stories, entity.NewsStory{
			ID:          s.ID,
			Title:       s.Title,
			URL:         s.URL,
			Site:        s.Site,
			Description: s.Description,
			Tickers:     s.Tickers,
			Time:        time.UnixMilli(s.Time).UTC(),
		})
	}
	return stories, nil
}
