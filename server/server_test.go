package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watayuraType-C/playground-ramen-concierge/internal/profile"
	ramenmw "github.com/watayuraType-C/playground-ramen-concierge/server/middleware"
	storetest "github.com/watayuraType-C/playground-ramen-concierge/store/test"
)

func newProfile() *profile.Profile {
	return &profile.Profile{
		Mode:                  "dev",
		Version:               "test",
		AIEnabled:             true,
		AIProvider:            "ollama",
		AIEmbeddingModel:      "nomic-embed-text",
		AIEmbeddingDimensions: 768,
		AIChatModel:           "llama3",
	}
}

func TestNewServer(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)

	s, err := NewServer(ctx, newProfile(), ts)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.GetEcho().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(ramenmw.HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/api/manage-ramen", nil)
	rec = httptest.NewRecorder()
	s.GetEcho().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestNewServer_RateLimit(t *testing.T) {
	ctx := context.Background()
	p := newProfile()
	p.RateLimitPerSecond = 0.5

	s, err := NewServer(ctx, p, storetest.NewTestingStore(ctx, t))
	require.NoError(t, err)

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		s.GetEcho().ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestNewServer_AIDisabled(t *testing.T) {
	ctx := context.Background()
	p := newProfile()
	p.AIEnabled = false

	_, err := NewServer(ctx, p, storetest.NewTestingStore(ctx, t))
	require.Error(t, err)
}
