package profile

import (
	"path/filepath"
	"testing"
)

var aiEnvVars = []string{
	"RAMEN_AI_ENABLED",
	"RAMEN_AI_PROVIDER",
	"RAMEN_AI_API_KEY",
	"RAMEN_AI_BASE_URL",
	"RAMEN_AI_EMBEDDING_MODEL",
	"RAMEN_AI_EMBEDDING_DIMENSIONS",
	"RAMEN_AI_CHAT_MODEL",
	"RAMEN_CORS_ALLOW_ORIGINS",
	"RAMEN_RATE_LIMIT",
}

func clearAIEnvVars(t *testing.T) {
	for _, key := range aiEnvVars {
		t.Setenv(key, "")
	}
}

// TestAIProfileDefaults tests the default AI configuration.
func TestAIProfileDefaults(t *testing.T) {
	clearAIEnvVars(t)

	profile := &Profile{}
	profile.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"AIProvider default", "gemini", profile.AIProvider},
		{"AIBaseURL default", "https://generativelanguage.googleapis.com/v1beta/openai/", profile.AIBaseURL},
		{"AIEmbeddingModel default", "gemini-embedding-001", profile.AIEmbeddingModel},
		{"AIChatModel default", "gemini-flash-latest", profile.AIChatModel},
		{"AIAPIKey default", "", profile.AIAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, tt.actual)
			}
		})
	}

	if profile.AIEnabled {
		t.Error("AIEnabled should be false by default")
	}
	if profile.AIEmbeddingDimensions != 768 {
		t.Errorf("AIEmbeddingDimensions: expected 768, got %d", profile.AIEmbeddingDimensions)
	}
}

// TestAIProfileFromEnv tests reading AI configuration from the environment.
func TestAIProfileFromEnv(t *testing.T) {
	clearAIEnvVars(t)
	t.Setenv("RAMEN_AI_ENABLED", "true")
	t.Setenv("RAMEN_AI_API_KEY", "test-key")
	t.Setenv("RAMEN_AI_BASE_URL", "https://api.openai.com/v1")
	t.Setenv("RAMEN_AI_EMBEDDING_MODEL", "text-embedding-3-small")
	t.Setenv("RAMEN_AI_EMBEDDING_DIMENSIONS", "1536")
	t.Setenv("RAMEN_AI_CHAT_MODEL", "gpt-4o-mini")
	t.Setenv("RAMEN_CORS_ALLOW_ORIGINS", "http://localhost:3000, https://ramen.example.com,")

	profile := &Profile{}
	profile.FromEnv()

	if !profile.AIEnabled {
		t.Error("AIEnabled: expected true")
	}
	if profile.AIAPIKey != "test-key" {
		t.Errorf("AIAPIKey: expected test-key, got %q", profile.AIAPIKey)
	}
	if profile.AIBaseURL != "https://api.openai.com/v1" {
		t.Errorf("AIBaseURL: got %q", profile.AIBaseURL)
	}
	if profile.AIEmbeddingModel != "text-embedding-3-small" {
		t.Errorf("AIEmbeddingModel: got %q", profile.AIEmbeddingModel)
	}
	if profile.AIEmbeddingDimensions != 1536 {
		t.Errorf("AIEmbeddingDimensions: expected 1536, got %d", profile.AIEmbeddingDimensions)
	}
	if profile.AIChatModel != "gpt-4o-mini" {
		t.Errorf("AIChatModel: got %q", profile.AIChatModel)
	}
	if len(profile.CORSAllowOrigins) != 2 || profile.CORSAllowOrigins[1] != "https://ramen.example.com" {
		t.Errorf("CORSAllowOrigins: got %v", profile.CORSAllowOrigins)
	}
	if !profile.IsAIEnabled() {
		t.Error("IsAIEnabled: expected true with API key")
	}
}

// TestAIProfileKeepsPresetValues tests that flag-provided values survive FromEnv.
func TestAIProfileKeepsPresetValues(t *testing.T) {
	clearAIEnvVars(t)

	profile := &Profile{AIChatModel: "custom-chat", AIEmbeddingDimensions: 256}
	profile.FromEnv()

	if profile.AIChatModel != "custom-chat" {
		t.Errorf("AIChatModel: expected custom-chat, got %q", profile.AIChatModel)
	}
	if profile.AIEmbeddingDimensions != 256 {
		t.Errorf("AIEmbeddingDimensions: expected 256, got %d", profile.AIEmbeddingDimensions)
	}
}

func TestRateLimitFromEnv(t *testing.T) {
	tests := []struct {
		value    string
		expected float64
	}{
		{"", 0},
		{"2.5", 2.5},
		{"0", 0},
		{"-1", 0},
		{"fast", 0},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			clearAIEnvVars(t)
			t.Setenv("RAMEN_RATE_LIMIT", tt.value)

			profile := &Profile{}
			profile.FromEnv()
			if profile.RateLimitPerSecond != tt.expected {
				t.Errorf("RateLimitPerSecond = %v, want %v", profile.RateLimitPerSecond, tt.expected)
			}
		})
	}
}

func TestIsAIEnabled(t *testing.T) {
	tests := []struct {
		name     string
		profile  Profile
		expected bool
	}{
		{"disabled", Profile{AIEnabled: false, AIAPIKey: "key"}, false},
		{"enabled without key", Profile{AIEnabled: true}, false},
		{"enabled with key", Profile{AIEnabled: true, AIAPIKey: "key"}, true},
		{"ollama without key", Profile{AIEnabled: true, AIProvider: "ollama"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.IsAIEnabled(); got != tt.expected {
				t.Errorf("IsAIEnabled() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("sqlite dsn derived from data dir", func(t *testing.T) {
		dir := t.TempDir()
		profile := &Profile{Mode: "dev", Data: dir, Driver: "sqlite"}
		if err := profile.Validate(); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		want := filepath.Join(profile.Data, "ramen_dev.db")
		if profile.DSN != want {
			t.Errorf("DSN = %q, want %q", profile.DSN, want)
		}
	})

	t.Run("unknown mode falls back to demo", func(t *testing.T) {
		profile := &Profile{Mode: "weird", Data: t.TempDir()}
		if err := profile.Validate(); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if profile.Mode != "demo" {
			t.Errorf("Mode = %q, want demo", profile.Mode)
		}
		if profile.Driver != "sqlite" {
			t.Errorf("Driver = %q, want sqlite", profile.Driver)
		}
	})

	t.Run("missing data dir", func(t *testing.T) {
		profile := &Profile{Mode: "dev", Data: filepath.Join(t.TempDir(), "missing"), Driver: "sqlite"}
		if err := profile.Validate(); err == nil {
			t.Error("expected error for missing data dir")
		}
	})

	t.Run("unsupported driver", func(t *testing.T) {
		profile := &Profile{Mode: "dev", Data: t.TempDir(), Driver: "mysql"}
		if err := profile.Validate(); err == nil {
			t.Error("expected error for mysql driver")
		}
	})

	t.Run("postgres requires dsn", func(t *testing.T) {
		profile := &Profile{Mode: "dev", Data: t.TempDir(), Driver: "postgres"}
		if err := profile.Validate(); err == nil {
			t.Error("expected error for empty postgres dsn")
		}
	})
}

func TestIsDev(t *testing.T) {
	if (&Profile{Mode: "prod"}).IsDev() {
		t.Error("prod should not be dev")
	}
	if !(&Profile{Mode: "demo"}).IsDev() {
		t.Error("demo should be dev")
	}
}
