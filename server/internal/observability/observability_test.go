package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestContextLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	reqCtx := NewRequestContextWithID(logger, "req-1", "search")
	reqCtx.Error("search failed", errors.New("boom"), slog.Int(LogFieldStatus, 503))

	record := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "search failed", record["msg"])
	assert.Equal(t, "req-1", record[LogFieldRequestID])
	assert.Equal(t, "search", record[LogFieldOperation])
	assert.Equal(t, "boom", record["error"])
	assert.EqualValues(t, 503, record[LogFieldStatus])
}

func TestNewRequestContext(t *testing.T) {
	reqCtx := NewRequestContext(nil, "list")
	assert.Len(t, reqCtx.RequestID, 36)
	assert.NotNil(t, reqCtx.Logger)
	assert.GreaterOrEqual(t, reqCtx.DurationMs(), int64(0))
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Equal(t, slog.Default(), Logger(context.Background()))

	reqCtx := NewRequestContext(slog.Default(), "parse")
	ctx := WithRequestContext(context.Background(), reqCtx)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, reqCtx, got)
	assert.NotNil(t, Logger(ctx))
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.Record("search", 100*time.Millisecond, false)
	m.Record("search", 300*time.Millisecond, true)
	m.Record("list", 10*time.Millisecond, false)

	snapshot := m.Snapshot()
	assert.EqualValues(t, 3, snapshot.RequestTotal)
	assert.EqualValues(t, 1, snapshot.RequestFailed)
	require.Contains(t, snapshot.Operations, "search")
	assert.EqualValues(t, 2, snapshot.Operations["search"].Count)
	assert.EqualValues(t, 1, snapshot.Operations["search"].ErrorCount)
	assert.EqualValues(t, 200, snapshot.Operations["search"].AverageMs)
	assert.InDelta(t, 66.67, snapshot.SuccessRate(), 0.01)

	m.Reset()
	assert.EqualValues(t, 0, m.Snapshot().RequestTotal)
	assert.Equal(t, 100.0, m.Snapshot().SuccessRate())
}

func TestMetricsConcurrent(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.Record("register", time.Millisecond, j%10 == 0)
			}
		}()
	}
	wg.Wait()
	snapshot := m.Snapshot()
	assert.EqualValues(t, 1000, snapshot.RequestTotal)
	assert.EqualValues(t, 100, snapshot.RequestFailed)
}
