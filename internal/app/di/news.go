// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"stock_sentiment/internal/app/config"
	"stock_sentiment/internal/feature/analysis/adapters/agent"
	"stock_sentiment/internal/feature/analysis/adapters/llm"
	"stock_sentiment/internal/feature/analysis/usecase"
	"stock_sentiment/internal/platform/externalapi/tickertick"
	platformhttp "stock_sentiment/internal/platform/http"
	"stock_sentiment/internal/shared/ratelimiter"
)

// NewNewsClient creates a tickertick client throttled to the API's per-minute allowance.
func NewNewsClient(cfg tickertick.Config) *tickertick.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = tickertick.DefaultTimeout
	}
	httpClient := platformhttp.NewHTTPClient(timeout)
	limiter := ratelimiter.NewRateLimiter(tickertick.RequestsPerMinute, time.Minute)
	return tickertick.NewClient(cfg, httpClient, limiter)
}

// NewAnalyzer builds the news analyzer selected by LLM_API_PROVIDER. The key of the
// selected provider must be set; the STUB provider needs none.
func NewAnalyzer(ctx context.Context, cfg config.Config) (usecase.NewsAnalyzer, error) {
	provider, err := llm.ParseProvider(cfg.LLMProvider)
	if err != nil {
		return nil, err
	}
	if provider == llm.ProviderStub {
		slog.Warn("using the stub analyzer; analyses are placeholders")
		return llm.StubAnalyzer{}, nil
	}

	model := cfg.LLMModel
	if model == "" {
		model = provider.DefaultModel()
	}
	apiKey := os.Getenv(provider.APIKeyEnv())

	var completer agent.Completer
	switch provider {
	case llm.ProviderGemini:
		completer, err = llm.NewGemini(ctx, apiKey, model)
	default:
		completer, err = llm.NewOpenAICompatible(llm.OpenAIConfig{
			Provider: provider,
			APIKey:   apiKey,
			Model:    model,
		}, platformhttp.NewHTTPClient(cfg.ModelTimeout()))
	}
	if err != nil {
		return nil, fmt.Errorf("configure %s: %w", provider, err)
	}

	slog.Info("news analyzer configured", "provider", provider, "model", model)
	return agent.New(NewNewsClient(cfg.TickerTick), completer), nil
}
