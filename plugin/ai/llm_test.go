package ai

import (
	"context"
	"net/http"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMService(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *LLMConfig
		expectError bool
	}{
		{name: "Gemini config", cfg: &LLMConfig{Provider: "gemini", Model: "gemini-flash-latest", APIKey: "k"}},
		{name: "OpenAI config", cfg: &LLMConfig{Provider: "openai", Model: "gpt-4o-mini", APIKey: "k"}},
		{name: "Ollama config", cfg: &LLMConfig{Provider: "ollama", Model: "llama3"}},
		{name: "Unsupported provider", cfg: &LLMConfig{Provider: "unsupported"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLLMService(tt.cfg)
			if tt.expectError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLLMService_Chat(t *testing.T) {
	fake := &fakeOpenAI{reply: "  濃厚な味噌が好みならここです。 \n"}
	server := newFakeOpenAI(t, fake)
	service, err := NewLLMService(&LLMConfig{Provider: "openai", Model: "chat-model", APIKey: "k", BaseURL: server.URL + "/v1", MaxTokens: 256})
	require.NoError(t, err)

	reply, err := service.Chat(context.Background(), FormatMessages("system", "hello"))
	require.NoError(t, err)
	assert.Equal(t, "濃厚な味噌が好みならここです。", reply)
	assert.Equal(t, "chat-model", fake.lastChat["model"])
	assert.Nil(t, fake.lastChat["response_format"])

	messages, ok := fake.lastChat["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
}

func TestLLMService_ChatJSON(t *testing.T) {
	fake := &fakeOpenAI{reply: `{"name":"蔦"}`}
	server := newFakeOpenAI(t, fake)
	service, err := NewLLMService(&LLMConfig{Provider: "openai", Model: "m", APIKey: "k", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)

	reply, err := service.ChatJSON(context.Background(), []Message{UserMessage("extract")})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"蔦"}`, reply)

	format, ok := fake.lastChat["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", format["type"])
}

func TestLLMService_Errors(t *testing.T) {
	t.Run("empty reply", func(t *testing.T) {
		server := newFakeOpenAI(t, &fakeOpenAI{reply: "   "})
		service, err := NewLLMService(&LLMConfig{Provider: "openai", Model: "m", APIKey: "k", BaseURL: server.URL + "/v1"})
		require.NoError(t, err)
		_, err = service.Chat(context.Background(), []Message{UserMessage("hi")})
		require.Error(t, err)
	})

	t.Run("unavailable", func(t *testing.T) {
		server := newFakeOpenAI(t, &fakeOpenAI{status: http.StatusServiceUnavailable})
		service, err := NewLLMService(&LLMConfig{Provider: "openai", Model: "m", APIKey: "k", BaseURL: server.URL + "/v1"})
		require.NoError(t, err)
		_, err = service.Chat(context.Background(), []Message{UserMessage("hi")})
		require.Error(t, err)
	})
}

func TestConvertMessages(t *testing.T) {
	messages := []Message{
		{Role: "system", Content: "You are a ramen concierge"},
		{Role: "user", Content: "Hello"},
		{Role: "assistant", Content: "Hi there"},
		{Role: "unknown", Content: "?"},
	}

	converted := convertMessages(messages)
	require.Len(t, converted, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, converted[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, converted[1].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, converted[2].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, converted[3].Role)
	assert.Equal(t, "Hello", converted[1].Content)
}
