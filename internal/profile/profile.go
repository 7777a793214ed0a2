package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where the shop log is stored
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string
	// CORSAllowOrigins lists the browser origins allowed to call the API. Empty allows any.
	CORSAllowOrigins []string
	// RateLimitPerSecond is the sustained request rate per client. Zero disables limiting.
	RateLimitPerSecond float64

	// AI Configuration
	AIEnabled             bool   // RAMEN_AI_ENABLED
	AIProvider            string // RAMEN_AI_PROVIDER (default: gemini)
	AIAPIKey              string // RAMEN_AI_API_KEY
	AIBaseURL             string // RAMEN_AI_BASE_URL (default: Gemini OpenAI-compatible endpoint)
	AIEmbeddingModel      string // RAMEN_AI_EMBEDDING_MODEL (default: gemini-embedding-001)
	AIEmbeddingDimensions int    // RAMEN_AI_EMBEDDING_DIMENSIONS (default: 768)
	AIChatModel           string // RAMEN_AI_CHAT_MODEL (default: gemini-flash-latest)
}

const (
	defaultAIProvider           = "gemini"
	defaultAIBaseURL            = "https://generativelanguage.googleapis.com/v1beta/openai/"
	defaultAIEmbeddingModel     = "gemini-embedding-001"
	defaultAIEmbeddingDimension = 768
	defaultAIChatModel          = "gemini-flash-latest"
)

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if AI is enabled and an API key or base URL is configured.
func (p *Profile) IsAIEnabled() bool {
	return p.AIEnabled && (p.AIAPIKey != "" || p.AIProvider == "ollama")
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads AI configuration from environment variables.
// Values already set on the profile are kept when the variable is absent.
func (p *Profile) FromEnv() {
	keep := func(current, fallback string) string {
		if current != "" {
			return current
		}
		return fallback
	}

	if v := os.Getenv("RAMEN_AI_ENABLED"); v != "" {
		p.AIEnabled = v == "true"
	}
	p.AIProvider = getEnvOrDefault("RAMEN_AI_PROVIDER", keep(p.AIProvider, defaultAIProvider))
	p.AIAPIKey = getEnvOrDefault("RAMEN_AI_API_KEY", p.AIAPIKey)
	p.AIBaseURL = getEnvOrDefault("RAMEN_AI_BASE_URL", keep(p.AIBaseURL, defaultAIBaseURL))
	p.AIEmbeddingModel = getEnvOrDefault("RAMEN_AI_EMBEDDING_MODEL", keep(p.AIEmbeddingModel, defaultAIEmbeddingModel))
	p.AIChatModel = getEnvOrDefault("RAMEN_AI_CHAT_MODEL", keep(p.AIChatModel, defaultAIChatModel))

	if v := os.Getenv("RAMEN_AI_EMBEDDING_DIMENSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.AIEmbeddingDimensions = n
		} else {
			slog.Warn("ignoring invalid embedding dimensions", slog.String("value", v))
		}
	}
	if p.AIEmbeddingDimensions <= 0 {
		p.AIEmbeddingDimensions = defaultAIEmbeddingDimension
	}

	if v := os.Getenv("RAMEN_CORS_ALLOW_ORIGINS"); v != "" {
		p.CORSAllowOrigins = splitList(v)
	}
	if v := os.Getenv("RAMEN_RATE_LIMIT"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n >= 0 {
			p.RateLimitPerSecond = n
		} else {
			slog.Warn("ignoring invalid rate limit", slog.String("value", v))
		}
	}
}

func splitList(s string) []string {
	list := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		absDir, err := filepath.Abs(dataDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}
	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unsupported driver %q: only 'postgres' and 'sqlite' are supported", p.Driver)
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "ramen-concierge")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/ramen-concierge"
		}
	}
	if p.Data == "" {
		p.Data = "."
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", p.Data), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("ramen_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("dsn is required for the postgres driver")
	}

	return nil
}
