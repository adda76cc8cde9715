// Package handler serves article listings as JSON.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stock_sentiment/internal/api"
	"stock_sentiment/internal/feature/articles/domain/entity"
	"stock_sentiment/internal/feature/articles/transport/http/dto"
	"stock_sentiment/internal/feature/articles/usecase"
)

// ArticleUsecase is the read side of the articles feature.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type ArticleUsecase interface {
	GetArticlesByTicker(ctx context.Context, ticker string) ([]entity.Article, error)
	GetTrendingArticles(ctx context.Context, timeRange string, limit int) ([]entity.Article, error)
}

// ArticleHandler handles article listing requests.
type ArticleHandler struct {
	articles ArticleUsecase
}

// NewArticleHandler creates a new instance of ArticleHandler.
func NewArticleHandler(articles ArticleUsecase) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// ByTicker handles GET /articles/:ticker.
func (h *ArticleHandler) ByTicker(c *gin.Context) {
	ticker := entity.NormalizeTicker(c.Param("ticker"))
	articles, err := h.articles.GetArticlesByTicker(c.Request.Context(), ticker)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidTicker) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid ticker"})
			return
		}
		slog.Error("failed to list articles", "error", err, "ticker", ticker)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load articles"})
		return
	}
	c.JSON(http.StatusOK, dto.TickerArticlesResponse{
		Ticker:   ticker,
		Articles: usecase.FormatArticles(articles),
	})
}

// Trending handles GET /api/trending?time_range=&limit=.
// An unknown time_range is a 400; a missing, non-numeric or negative limit falls back
// to the default and an oversized one is capped.
func (h *ArticleHandler) Trending(c *gin.Context) {
	timeRange := c.Query("time_range")
	limit, _ := strconv.Atoi(c.Query("limit"))
	limit = usecase.TrendingLimit(limit)

	articles, err := h.articles.GetTrendingArticles(c.Request.Context(), timeRange, limit)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidTimeRange) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid time_range: use 24h, 7d or 30d"})
			return
		}
		slog.Error("failed to list trending articles", "error", err, "time_range", timeRange)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load articles"})
		return
	}
	c.JSON(http.StatusOK, dto.TrendingResponse{
		TimeRange: timeRange,
		Articles:  usecase.FormatArticles(articles),
	})
}
