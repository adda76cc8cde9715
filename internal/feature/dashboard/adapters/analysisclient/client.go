// Package analysisclient calls the analysis service on behalf of logged-in users.
package analysisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"stock_sentiment/internal/feature/dashboard/domain/entity"
	"stock_sentiment/internal/feature/dashboard/usecase"
	jwtmw "stock_sentiment/internal/platform/jwt"
)

// DefaultBaseURL is the analysis service inside the compose network.
const DefaultBaseURL = "http://llm:5002"

// maxBody bounds how much of an answer is read.
const maxBody = 1 << 20

// Client signs a short-lived service token per request and forwards it as a bearer token.
type Client struct {
	baseURL string
	client  *http.Client
	tokens  jwtmw.Generator
}

var _ usecase.AnalysisService = (*Client)(nil)

// New creates a Client. An empty baseURL means DefaultBaseURL.
func New(baseURL string, client *http.Client, tokens jwtmw.Generator) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: client, tokens: tokens}
}

// reply is the union of the service's success and error bodies.
type reply struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	Ticker            string `json:"ticker"`
	RemainingAnalyses int    `json:"remaining_analyses"`
	Error             string `json:"error"`
}

// RequestAnalysis posts to /analyze/{ticker}. Any HTTP answer is returned as a reply;
// only transport failures are errors.
func (c *Client) RequestAnalysis(ctx context.Context, req entity.AnalysisRequest) (*entity.AnalysisReply, error) {
	token, err := c.tokens.GenerateToken(req.UserID, req.Username)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/analyze/%s", c.baseURL, url.PathEscape(req.Ticker))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read analysis response: %w", err)
	}

	var body reply
	if err := json.Unmarshal(raw, &body); err != nil {
		// a proxy or crash page; keep the status so the caller can map it
		slog.Warn("analysis service returned a non-JSON body", "status", res.StatusCode, "error", err)
		body = reply{Error: strings.TrimSpace(string(raw))}
	}

	return &entity.AnalysisReply{
		StatusCode:        res.StatusCode,
		Status:            body.Status,
		Message:           body.Message,
		Ticker:            body.Ticker,
		RemainingAnalyses: body.RemainingAnalyses,
		Error:             body.Error,
	}, nil
}

// Ping checks the service's /healthz endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("analysis service health http %d", res.StatusCode)
	}
	return nil
}
