package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watayuraType-C/playground-ramen-concierge/server/internal/observability"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(1)

	// Burst of 2, then refused.
	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	// Other clients have their own bucket.
	assert.True(t, rl.Allow("b"))
}

func TestRateLimiter_Forget(t *testing.T) {
	rl := NewRateLimiter(10)
	rl.Allow("a")
	rl.Allow("b")

	assert.Equal(t, 0, rl.Forget(time.Hour))
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 2, rl.Forget(time.Millisecond))
}

func TestRateLimiter_Middleware(t *testing.T) {
	e := echo.New()
	e.Use(NewRateLimiter(0.5).Middleware())
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do().Code)
	rec := do()
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	body := map[string]string{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", body["code"])
}

func TestRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	metrics := observability.NewMetrics()

	e := echo.New()
	e.Use(RequestContext(logger, metrics))
	e.GET("/ok", func(c echo.Context) error {
		reqCtx, ok := observability.FromContext(c.Request().Context())
		require.True(t, ok)
		return c.String(http.StatusOK, reqCtx.RequestID)
	})
	e.GET("/fail", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "down")
	})

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "fixed-id")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fixed-id", rec.Body.String())
	assert.Equal(t, "fixed-id", rec.Header().Get(HeaderRequestID))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Len(t, rec.Header().Get(HeaderRequestID), 36)

	assert.Contains(t, buf.String(), `"msg":"request completed"`)
	assert.Contains(t, buf.String(), `"msg":"request failed"`)

	snapshot := metrics.Snapshot()
	assert.EqualValues(t, 2, snapshot.RequestTotal)
	assert.EqualValues(t, 1, snapshot.RequestFailed)
	assert.Contains(t, snapshot.Operations, "GET /ok")
}
