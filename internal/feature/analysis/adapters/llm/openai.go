package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"stock_sentiment/internal/feature/analysis/adapters/agent"
)

// OpenAIConfig configures an OpenAI compatible chat completions backend.
type OpenAIConfig struct {
	Provider Provider
	BaseURL  string
	APIKey   string
	Model    string
}

// OpenAICompatible talks to /chat/completions of OpenAI or xAI.
type OpenAICompatible struct {
	cfg    OpenAIConfig
	client *http.Client
}

var _ agent.Completer = (*OpenAICompatible)(nil)

// NewOpenAICompatible fills BaseURL and Model from the provider defaults when empty.
func NewOpenAICompatible(cfg OpenAIConfig, client *http.Client) (*OpenAICompatible, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s is not set", cfg.Provider.APIKeyEnv())
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = cfg.Provider.BaseURL()
	}
	if cfg.Model == "" {
		cfg.Model = cfg.Provider.DefaultModel()
	}
	return &OpenAICompatible{cfg: cfg, client: client}, nil
}

func (o *OpenAICompatible) Name() string { return strings.ToLower(string(o.cfg.Provider)) }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type jsonSchemaFormat struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type responseFormat struct {
	Type       string           `json:"type"`
	JSONSchema jsonSchemaFormat `json:"json_schema"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Temperature    float64        `json:"temperature"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one system and one user message and returns the assistant content.
func (o *OpenAICompatible) Complete(ctx context.Context, req agent.Completion) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       o.cfg.Model,
		Temperature: 0,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		ResponseFormat: responseFormat{
			Type:       "json_schema",
			JSONSchema: jsonSchemaFormat{Name: "news_analysis", Strict: true, Schema: JSONSchema()},
		},
	})
	if err != nil {
		return "", err
	}

	u := strings.TrimRight(o.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)

	res, err := o.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return "", err
	}
	var out chatResponse
	decodeErr := json.Unmarshal(raw, &out)

	if res.StatusCode >= 400 {
		if decodeErr == nil && out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("%s http %d: %s", o.Name(), res.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("%s http %d", o.Name(), res.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode %s response: %w", o.Name(), decodeErr)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", errors.New("completion has no content")
	}
	return out.Choices[0].Message.Content, nil
}
