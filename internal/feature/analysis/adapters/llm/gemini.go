package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"stock_sentiment/internal/feature/analysis/adapters/agent"
	"stock_sentiment/internal/feature/analysis/domain/entity"
)

// Gemini completes prompts with the Google Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

var _ agent.Completer = (*Gemini)(nil)

// NewGemini creates a Gemini backend. With an empty apiKey the client is configured
// from the environment (GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, ...).
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	var cfg *genai.ClientConfig
	if apiKey != "" {
		cfg = &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = ProviderGemini.DefaultModel()
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

// Complete asks for JSON matching the NewsAnalysis schema at temperature 0.
func (g *Gemini) Complete(ctx context.Context, req agent.Completion) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.User), generateConfig(req.System))
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return text, nil
}

func generateConfig(system string) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    responseSchema(),
	}
}

func responseSchema() *genai.Schema {
	s := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: map[string]*genai.Schema{},
	}
	for _, f := range entity.NewsAnalysisFields {
		s.Properties[f.Name] = &genai.Schema{
			Type:        genai.TypeString,
			Description: f.Description,
			Enum:        f.Enum,
		}
		s.Required = append(s.Required, f.Name)
		s.PropertyOrdering = append(s.PropertyOrdering, f.Name)
	}
	return s
}
