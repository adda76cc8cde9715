// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_sentiment/internal/feature/articles/domain/entity"
	"stock_sentiment/internal/feature/articles/usecase"
)

// CachingArticleRepository decorates an ArticleRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingArticleRepository struct {
	inner     usecase.ArticleRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure CachingArticleRepository implements ArticleRepository.
var _ usecase.ArticleRepository = (*CachingArticleRepository)(nil)

// NewCachingArticleRepository decorates an ArticleRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "articles".
func NewCachingArticleRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ArticleRepository, namespace string) *CachingArticleRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "articles"
	}
	return &CachingArticleRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create stores the article and invalidates the ticker listing and every trending listing.
func (c *CachingArticleRepository) Create(ctx context.Context, a *entity.Article) error {
	if err := c.inner.Create(ctx, a); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}

	// Best effort: a stale entry expires with the TTL anyway
	_ = c.rdb.Del(ctx, c.tickerKey(a.Ticker)).Err()
	_ = c.deleteByPattern(ctx, c.trendingPrefix()+"*")
	return nil
}

// FindByTicker is cached per ticker.
func (c *CachingArticleRepository) FindByTicker(ctx context.Context, ticker string) ([]entity.Article, error) {
	if c.rdb == nil {
		return c.inner.FindByTicker(ctx, ticker)
	}
	return c.readThrough(ctx, c.tickerKey(ticker), func() ([]entity.Article, error) {
		return c.inner.FindByTicker(ctx, ticker)
	})
}

// FindByUser is not cached.
func (c *CachingArticleRepository) FindByUser(ctx context.Context, userID string, limit int) ([]entity.Article, error) {
	return c.inner.FindByUser(ctx, userID, limit)
}

// FindTrending caches the unfiltered listing per limit. Ranged queries move with the
// clock and go straight to the store.
func (c *CachingArticleRepository) FindTrending(ctx context.Context, since time.Time, limit int) ([]entity.Article, error) {
	if c.rdb == nil || !since.IsZero() {
		return c.inner.FindTrending(ctx, since, limit)
	}
	return c.readThrough(ctx, fmt.Sprintf("%sall:%d", c.trendingPrefix(), limit), func() ([]entity.Article, error) {
		return c.inner.FindTrending(ctx, since, limit)
	})
}

func (c *CachingArticleRepository) readThrough(ctx context.Context, key string, load func() ([]entity.Article, error)) ([]entity.Article, error) {
	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Article
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the store
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

func (c *CachingArticleRepository) tickerKey(ticker string) string {
	return fmt.Sprintf("%s:ticker:%s", c.namespace, safe(ticker))
}

func (c *CachingArticleRepository) trendingPrefix() string {
	return c.namespace + ":trending:"
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingArticleRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
