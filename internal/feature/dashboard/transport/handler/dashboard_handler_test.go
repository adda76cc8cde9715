package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	articleentity "stock_sentiment/internal/feature/articles/domain/entity"
	"stock_sentiment/internal/feature/dashboard/domain/entity"
	"stock_sentiment/internal/feature/dashboard/usecase"
	"stock_sentiment/internal/platform/web"
	"stock_sentiment/internal/shared/authctx"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockDashboard struct {
	QuotaFunc   func(ctx context.Context, userID string) (entity.Quota, error)
	DetailFunc  func(ctx context.Context, rawTicker string) (string, []articleentity.Article, error)
	HistoryFunc func(ctx context.Context, userID string) (*entity.History, error)
	AnalyzeFunc func(ctx context.Context, userID, username, rawTicker string) (*entity.AnalysisOutcome, error)
}

func (m *mockDashboard) Quota(ctx context.Context, userID string) (entity.Quota, error) {
	return m.QuotaFunc(ctx, userID)
}

func (m *mockDashboard) Detail(ctx context.Context, rawTicker string) (string, []articleentity.Article, error) {
	return m.DetailFunc(ctx, rawTicker)
}

func (m *mockDashboard) History(ctx context.Context, userID string) (*entity.History, error) {
	return m.HistoryFunc(ctx, userID)
}

func (m *mockDashboard) RequestAnalysis(ctx context.Context, userID, username, rawTicker string) (*entity.AnalysisOutcome, error) {
	return m.AnalyzeFunc(ctx, userID, username, rawTicker)
}

// newRouter logs every request in as alice when loggedIn is set.
func newRouter(m *mockDashboard, loggedIn bool) *gin.Engine {
	h := NewDashboardHandler(m)
	r := gin.New()
	r.SetHTMLTemplate(web.MustTemplates())
	r.Use(func(c *gin.Context) {
		if loggedIn {
			authctx.Set(c, authctx.Identity{UserID: "u1", Username: "alice"})
		}
	})
	r.GET("/", h.Index)
	r.GET("/detail", h.Detail)
	r.GET("/history", h.History)
	r.POST("/analyze/:ticker", h.Analyze)
	return r
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestDashboardHandler_Index(t *testing.T) {
	m := &mockDashboard{QuotaFunc: func(ctx context.Context, userID string) (entity.Quota, error) {
		assert.Equal(t, "u1", userID)
		return entity.Quota{Remaining: 7, DailyLimit: 10}, nil
	}}

	w := serve(newRouter(m, true), http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<span id="remaining">7</span> / 10`)
	assert.Contains(t, w.Body.String(), "alice")

	w = serve(newRouter(&mockDashboard{}, false), http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Remaining analyses")
	assert.Contains(t, w.Body.String(), `href="/login"`)

	m.QuotaFunc = func(ctx context.Context, userID string) (entity.Quota, error) {
		return entity.Quota{}, errors.New("db down")
	}
	w = serve(newRouter(m, true), http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<span id="remaining">unknown</span>`)
}

func TestDashboardHandler_Detail(t *testing.T) {
	created := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		path         string
		detail       func(ctx context.Context, rawTicker string) (string, []articleentity.Article, error)
		wantStatus   int
		wantLocation string
		wantBody     []string
	}{
		{
			name:         "no ticker redirects home",
			path:         "/detail",
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/",
		},
		{
			name: "renders articles",
			path: "/detail?ticker=aapl",
			detail: func(ctx context.Context, rawTicker string) (string, []articleentity.Article, error) {
				assert.Equal(t, "aapl", rawTicker)
				return "AAPL", []articleentity.Article{{
					ID: "a1", Ticker: "AAPL", OverallSentiment: articleentity.SentimentBullish,
					Summary: "Strong iPhone demand", Analysis: "details", CreatedAt: created,
				}}, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{"<h2>AAPL</h2>", `class="bullish"`, "Strong iPhone demand", "2026-05-10 12:00 UTC"},
		},
		{
			name: "no articles yet",
			path: "/detail?ticker=NEW",
			detail: func(ctx context.Context, rawTicker string) (string, []articleentity.Article, error) {
				return "NEW", nil, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{"No analyses for NEW yet."},
		},
		{
			name: "invalid ticker",
			path: "/detail?ticker=%3Cb%3E",
			detail: func(ctx context.Context, rawTicker string) (string, []articleentity.Article, error) {
				return "", nil, fmt.Errorf("%w: %q", usecase.ErrInvalidTicker, rawTicker)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   []string{"Invalid ticker.", "&lt;b&gt;"},
		},
		{
			name: "store failure",
			path: "/detail?ticker=AAPL",
			detail: func(ctx context.Context, rawTicker string) (string, []articleentity.Article, error) {
				return "AAPL", nil, errors.New("db down")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   []string{"Analyses could not be loaded."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newRouter(&mockDashboard{DetailFunc: tt.detail}, false), http.MethodGet, tt.path)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			}
			for _, s := range tt.wantBody {
				assert.Contains(t, w.Body.String(), s)
			}
		})
	}
}

func TestDashboardHandler_History(t *testing.T) {
	m := &mockDashboard{HistoryFunc: func(ctx context.Context, userID string) (*entity.History, error) {
		return &entity.History{
			Groups: []articleentity.TickerGroup{
				{Ticker: "TSLA", Articles: []articleentity.Article{{Ticker: "TSLA", OverallSentiment: articleentity.SentimentBearish, Summary: "Margins shrink"}}},
				{Ticker: "AAPL", Articles: []articleentity.Article{{Ticker: "AAPL", OverallSentiment: articleentity.SentimentNeutral, Summary: "Flat quarter"}}},
			},
			Quota: &entity.Quota{Remaining: 3, DailyLimit: 10},
		}, nil
	}}

	w := serve(newRouter(m, true), http.MethodGet, "/history")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Remaining analyses today: 3 / 10")
	assert.Contains(t, body, "Margins shrink")
	assert.Less(t, strings.Index(body, "TSLA"), strings.Index(body, "AAPL"))

	m.HistoryFunc = func(ctx context.Context, userID string) (*entity.History, error) {
		return &entity.History{
			Groups: []articleentity.TickerGroup{
				{Ticker: "NVDA", Articles: []articleentity.Article{{Ticker: "NVDA", OverallSentiment: articleentity.SentimentBullish, Summary: "Demand holds"}}},
			},
		}, nil
	}
	w = serve(newRouter(m, true), http.MethodGet, "/history")
	assert.Equal(t, http.StatusOK, w.Code)
	body = w.Body.String()
	assert.Contains(t, body, "Remaining analyses today: unknown")
	assert.NotContains(t, body, "Remaining analyses today: 10")
	assert.Contains(t, body, "Demand holds")

	m.HistoryFunc = func(ctx context.Context, userID string) (*entity.History, error) {
		return nil, errors.New("db down")
	}
	w = serve(newRouter(m, true), http.MethodGet, "/history")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDashboardHandler_Analyze(t *testing.T) {
	tests := []struct {
		name       string
		analyze    func(ctx context.Context, userID, username, rawTicker string) (*entity.AnalysisOutcome, error)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			analyze: func(ctx context.Context, userID, username, rawTicker string) (*entity.AnalysisOutcome, error) {
				assert.Equal(t, "u1", userID)
				assert.Equal(t, "alice", username)
				assert.Equal(t, "AAPL", rawTicker)
				return &entity.AnalysisOutcome{
					Ticker: "AAPL", Message: "Analysis for AAPL completed", RemainingAnalyses: 9,
					RedirectTo: "/detail?ticker=AAPL",
				}, nil
			},
			wantStatus: http.StatusOK,
			wantBody: `{"status":"completed","message":"Analysis for AAPL completed","ticker":"AAPL",
				"remaining_analyses":9,"redirect_to":"/detail?ticker=AAPL"}`,
		},
		{
			name: "limit reached",
			analyze: func(ctx context.Context, userID, username, rawTicker string) (*entity.AnalysisOutcome, error) {
				return nil, &usecase.UpstreamError{StatusCode: http.StatusTooManyRequests, Message: "daily analysis limit reached"}
			},
			wantStatus: http.StatusTooManyRequests,
			wantBody:   `{"error":"daily analysis limit reached"}`,
		},
		{
			name: "upstream failure",
			analyze: func(ctx context.Context, userID, username, rawTicker string) (*entity.AnalysisOutcome, error) {
				return nil, &usecase.UpstreamError{StatusCode: http.StatusBadGateway, Message: "LLM service error"}
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"LLM service error"}`,
		},
		{
			name: "service unreachable",
			analyze: func(ctx context.Context, userID, username, rawTicker string) (*entity.AnalysisOutcome, error) {
				return nil, fmt.Errorf("%w: %v", usecase.ErrServiceUnavailable, "connection refused")
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"LLM service request failed: connection refused"}`,
		},
		{
			name: "invalid ticker",
			analyze: func(ctx context.Context, userID, username, rawTicker string) (*entity.AnalysisOutcome, error) {
				return nil, usecase.ErrInvalidTicker
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid ticker"}`,
		},
		{
			name: "unexpected error",
			analyze: func(ctx context.Context, userID, username, rawTicker string) (*entity.AnalysisOutcome, error) {
				return nil, errors.New("boom")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newRouter(&mockDashboard{AnalyzeFunc: tt.analyze}, true), http.MethodPost, "/analyze/AAPL")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
