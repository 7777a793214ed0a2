package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watayuraType-C/playground-ramen-concierge/internal/profile"
)

func TestNewConfigFromProfile(t *testing.T) {
	prof := &profile.Profile{
		AIEnabled:             true,
		AIProvider:            "gemini",
		AIAPIKey:              "test-key",
		AIBaseURL:             "https://generativelanguage.googleapis.com/v1beta/openai/",
		AIEmbeddingModel:      "gemini-embedding-001",
		AIEmbeddingDimensions: 768,
		AIChatModel:           "gemini-flash-latest",
	}

	cfg := NewConfigFromProfile(prof)
	require.True(t, cfg.Enabled)

	assert.Equal(t, "gemini", cfg.Embedding.Provider)
	assert.Equal(t, "gemini-embedding-001", cfg.Embedding.Model)
	assert.Equal(t, 768, cfg.Embedding.Dimensions)
	assert.Equal(t, "test-key", cfg.Embedding.APIKey)
	assert.Equal(t, prof.AIBaseURL, cfg.Embedding.BaseURL)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-flash-latest", cfg.LLM.Model)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
	assert.Equal(t, 1024, cfg.LLM.MaxTokens)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-6)

	require.NoError(t, cfg.Validate())
}

func TestNewConfigFromProfile_Disabled(t *testing.T) {
	cfg := NewConfigFromProfile(&profile.Profile{AIEnabled: false, AIAPIKey: "ignored"})
	assert.False(t, cfg.Enabled)
	assert.Empty(t, cfg.Embedding.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Enabled:   true,
			Embedding: EmbeddingConfig{Provider: "gemini", Model: "m", APIKey: "k"},
			LLM:       LLMConfig{Provider: "gemini", Model: "m", APIKey: "k"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing embedding provider", mutate: func(c *Config) { c.Embedding.Provider = "" }, wantErr: "embedding provider"},
		{name: "missing embedding key", mutate: func(c *Config) { c.Embedding.APIKey = "" }, wantErr: "embedding API key"},
		{name: "missing embedding model", mutate: func(c *Config) { c.Embedding.Model = "" }, wantErr: "embedding model"},
		{name: "missing llm provider", mutate: func(c *Config) { c.LLM.Provider = "" }, wantErr: "LLM provider"},
		{name: "missing llm key", mutate: func(c *Config) { c.LLM.APIKey = "" }, wantErr: "LLM API key"},
		{name: "missing llm model", mutate: func(c *Config) { c.LLM.Model = "" }, wantErr: "LLM model"},
		{
			name: "ollama needs no key",
			mutate: func(c *Config) {
				c.Embedding.Provider, c.Embedding.APIKey = "ollama", ""
				c.LLM.Provider, c.LLM.APIKey = "ollama", ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
