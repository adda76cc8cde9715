// Package llm holds the language model backends of the news-analysis agent.
package llm

import (
	"fmt"
	"strings"

	"stock_sentiment/internal/feature/analysis/domain/entity"
)

// Provider selects a model backend.
type Provider string

const (
	ProviderGemini Provider = "GEMINI"
	ProviderOpenAI Provider = "OPENAI"
	ProviderXAI    Provider = "XAI"
	ProviderStub   Provider = "STUB"
)

// ParseProvider reads LLM_API_PROVIDER. Empty means GEMINI; anything unknown is an error.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case "":
		return ProviderGemini, nil
	case ProviderGemini, ProviderOpenAI, ProviderXAI, ProviderStub:
		return p, nil
	}
	return "", fmt.Errorf("unknown LLM_API_PROVIDER %q (want GEMINI, OPENAI, XAI or STUB)", s)
}

// DefaultModel is used when LLM_MODEL is unset.
func (p Provider) DefaultModel() string {
	switch p {
	case ProviderGemini:
		return "gemini-2.5-flash"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderXAI:
		return "grok-3-fast"
	}
	return "stub"
}

// APIKeyEnv names the environment variable holding the provider key.
func (p Provider) APIKeyEnv() string {
	return string(p) + "_API_KEY"
}

// BaseURL is the chat completions root of the OpenAI compatible providers.
func (p Provider) BaseURL() string {
	switch p {
	case ProviderOpenAI:
		return "https://api.openai.com/v1"
	case ProviderXAI:
		return "https://api.x.ai/v1"
	}
	return ""
}

// JSONSchema renders entity.NewsAnalysisFields as a strict JSON schema.
func JSONSchema() map[string]any {
	props := map[string]any{}
	required := make([]string, 0, len(entity.NewsAnalysisFields))
	for _, f := range entity.NewsAnalysisFields {
		prop := map[string]any{"type": "string", "description": f.Description}
		if len(f.Enum) > 0 {
			prop["enum"] = f.Enum
		}
		props[f.Name] = prop
		required = append(required, f.Name)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}
