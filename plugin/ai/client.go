package ai

import (
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// newClientConfig builds an OpenAI-compatible client config for provider.
// Gemini and Ollama both expose the OpenAI wire format.
func newClientConfig(provider, apiKey, baseURL string) (openai.ClientConfig, error) {
	var clientConfig openai.ClientConfig

	switch provider {
	case "gemini", "openai":
		clientConfig = openai.DefaultConfig(apiKey)
		if baseURL != "" {
			clientConfig.BaseURL = baseURL
		}

	case "ollama":
		clientConfig = openai.DefaultConfig("ollama")
		if baseURL == "" {
			baseURL = "http://localhost:11434/v1"
		}
		clientConfig.BaseURL = baseURL

	default:
		return clientConfig, fmt.Errorf("unsupported AI provider: %s", provider)
	}

	return clientConfig, nil
}
