package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestParseProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Provider
		wantErr bool
	}{
		{in: "", want: ProviderGemini},
		{in: "gemini", want: ProviderGemini},
		{in: "OPENAI", want: ProviderOpenAI},
		{in: " xai ", want: ProviderXAI},
		{in: "stub", want: ProviderStub},
		{in: "anthropic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseProvider(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProviderDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "OPENAI_API_KEY", ProviderOpenAI.APIKeyEnv())
	assert.Equal(t, "https://api.x.ai/v1", ProviderXAI.BaseURL())
	assert.Equal(t, "gemini-2.5-flash", ProviderGemini.DefaultModel())
	assert.Empty(t, ProviderGemini.BaseURL())
}

func TestJSONSchema(t *testing.T) {
	t.Parallel()

	s := JSONSchema()
	assert.Equal(t, "object", s["type"])
	assert.Equal(t, false, s["additionalProperties"])
	assert.Equal(t, []string{"ticker", "overall_sentiment", "summary", "analysis"}, s["required"])

	props := s["properties"].(map[string]any)
	sentiment := props["overall_sentiment"].(map[string]any)
	assert.Equal(t, []string{"Bearish", "Neutral", "Bullish"}, sentiment["enum"])
	_, hasEnum := props["summary"].(map[string]any)["enum"]
	assert.False(t, hasEnum)
}

func TestGenerateConfig(t *testing.T) {
	t.Parallel()

	cfg := generateConfig("be an analyst")
	require.NotNil(t, cfg.Temperature)
	assert.Equal(t, float32(0), *cfg.Temperature)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	require.NotNil(t, cfg.SystemInstruction)
	require.Len(t, cfg.SystemInstruction.Parts, 1)
	assert.Equal(t, "be an analyst", cfg.SystemInstruction.Parts[0].Text)

	schema := cfg.ResponseSchema
	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, []string{"ticker", "overall_sentiment", "summary", "analysis"}, schema.Required)
	assert.Equal(t, []string{"Bearish", "Neutral", "Bullish"}, schema.Properties["overall_sentiment"].Enum)
}

func TestStubAnalyzer(t *testing.T) {
	t.Parallel()

	got, err := StubAnalyzer{}.Analyze(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got.Ticker)
	assert.Equal(t, "Neutral", got.OverallSentiment)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = StubAnalyzer{}.Analyze(ctx, "AAPL")
	assert.ErrorIs(t, err, context.Canceled)
}
