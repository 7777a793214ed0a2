package ai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeOpenAI serves the subset of the OpenAI wire format the services use.
type fakeOpenAI struct {
	// embed maps input text to a vector. Missing texts get an empty vector.
	embed map[string][]float32
	// reply is returned as the single chat choice.
	reply string
	// status, when set, fails every request.
	status int

	lastChat map[string]any
}

func newFakeOpenAI(t *testing.T, f *fakeOpenAI) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.status != 0 {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(`{"error":{"message":"unavailable","type":"server_error"}}`))
			return
		}
		body := map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasSuffix(r.URL.Path, "/embeddings"):
			inputs, _ := body["input"].([]any)
			data := []map[string]any{}
			// Reverse order to exercise index mapping.
			for i := len(inputs) - 1; i >= 0; i-- {
				text, _ := inputs[i].(string)
				data = append(data, map[string]any{
					"object":    "embedding",
					"index":     i,
					"embedding": f.embed[text],
				})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": data, "model": body["model"]})

		case strings.HasSuffix(r.URL.Path, "/chat/completions"):
			f.lastChat = body
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":     "chatcmpl-test",
				"object": "chat.completion",
				"model":  body["model"],
				"choices": []map[string]any{{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": f.reply},
				}},
			})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}
