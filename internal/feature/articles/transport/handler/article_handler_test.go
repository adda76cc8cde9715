package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stock_sentiment/internal/feature/articles/domain/entity"
	"stock_sentiment/internal/feature/articles/transport/handler"
	"stock_sentiment/internal/feature/articles/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockArticleUsecase struct {
	ByTickerFunc func(ctx context.Context, ticker string) ([]entity.Article, error)
	TrendingFunc func(ctx context.Context, timeRange string, limit int) ([]entity.Article, error)
}

func (m *mockArticleUsecase) GetArticlesByTicker(ctx context.Context, ticker string) ([]entity.Article, error) {
	return m.ByTickerFunc(ctx, ticker)
}

func (m *mockArticleUsecase) GetTrendingArticles(ctx context.Context, timeRange string, limit int) ([]entity.Article, error) {
	return m.TrendingFunc(ctx, timeRange, limit)
}

var sample = entity.Article{
	ID:               "665f1c2e9b1e8a3d4c5b6a79",
	Ticker:           "AAPL",
	OverallSentiment: entity.SentimentBullish,
	Summary:          "up",
	Analysis:         "details",
	CreatedAt:        time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC),
}

const sampleJSON = `{"id":"665f1c2e9b1e8a3d4c5b6a79","ticker":"AAPL","overall_sentiment":"Bullish","summary":"up","analysis":"details","created_at":"2026-05-10T12:00:00Z"}`

func newRouter(uc handler.ArticleUsecase) *gin.Engine {
	h := handler.NewArticleHandler(uc)
	r := gin.New()
	r.GET("/articles/:ticker", h.ByTicker)
	r.GET("/api/trending", h.Trending)
	return r
}

func TestArticleHandler_ByTicker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		url            string
		byTicker       func(ctx context.Context, ticker string) ([]entity.Article, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: lower case ticker is normalized",
			url:  "/articles/aapl",
			byTicker: func(ctx context.Context, ticker string) ([]entity.Article, error) {
				assert.Equal(t, "AAPL", ticker)
				return []entity.Article{sample}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"ticker":"AAPL","articles":[` + sampleJSON + `]}`,
		},
		{
			name: "success: no articles renders an empty list",
			url:  "/articles/NVDA",
			byTicker: func(ctx context.Context, ticker string) ([]entity.Article, error) {
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"ticker":"NVDA","articles":[]}`,
		},
		{
			name: "error: store failure",
			url:  "/articles/AAPL",
			byTicker: func(ctx context.Context, ticker string) ([]entity.Article, error) {
				return nil, errors.New("timeout")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to load articles"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newRouter(&mockArticleUsecase{ByTickerFunc: tt.byTicker})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestArticleHandler_Trending(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		url            string
		trending       func(ctx context.Context, timeRange string, limit int) ([]entity.Article, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: range and limit forwarded",
			url:  "/api/trending?time_range=7d&limit=5",
			trending: func(ctx context.Context, timeRange string, limit int) ([]entity.Article, error) {
				assert.Equal(t, "7d", timeRange)
				assert.Equal(t, 5, limit)
				return []entity.Article{sample}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"time_range":"7d","articles":[` + sampleJSON + `]}`,
		},
		{
			name: "success: no range",
			url:  "/api/trending",
			trending: func(ctx context.Context, timeRange string, limit int) ([]entity.Article, error) {
				assert.Equal(t, "", timeRange)
				assert.Equal(t, usecase.DefaultTrendingLimit, limit)
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"time_range":"","articles":[]}`,
		},
		{
			name: "success: oversized limit is capped",
			url:  "/api/trending?limit=2000000000",
			trending: func(ctx context.Context, timeRange string, limit int) ([]entity.Article, error) {
				assert.Equal(t, usecase.MaxTrendingLimit, limit)
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"time_range":"","articles":[]}`,
		},
		{
			name: "success: negative limit falls back to the default",
			url:  "/api/trending?time_range=24h&limit=-5",
			trending: func(ctx context.Context, timeRange string, limit int) ([]entity.Article, error) {
				assert.Equal(t, usecase.DefaultTrendingLimit, limit)
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"time_range":"24h","articles":[]}`,
		},
		{
			name: "error: invalid range",
			url:  "/api/trending?time_range=1y",
			trending: func(ctx context.Context, timeRange string, limit int) ([]entity.Article, error) {
				return nil, usecase.ErrInvalidTimeRange
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid time_range: use 24h, 7d or 30d"}`,
		},
		{
			name: "error: store failure",
			url:  "/api/trending?time_range=24h",
			trending: func(ctx context.Context, timeRange string, limit int) ([]entity.Article, error) {
				return nil, errors.New("timeout")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to load articles"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newRouter(&mockArticleUsecase{TrendingFunc: tt.trending})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
