package sink

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/logshield/pkg/logging"
	"github.com/codeready-toolchain/logshield/pkg/metrics"
)

func TestJSONLSink_Emit(t *testing.T) {
	var buf bytes.Buffer
	p := NewJSONLProvider(&buf, slog.LevelInfo)
	s := p.CreateSink("billing")
	ctx := context.Background()

	assert.False(t, s.Enabled(ctx, slog.LevelDebug))

	scope := s.BeginScope("invoice 12")
	s.Emit(ctx, logging.Entry{
		Time:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600)),
		Level:   slog.LevelError,
		EventID: logging.EventID{ID: 3},
		Message: "charge failed",
		Err:     errors.New("timeout"),
	})
	scope.End()
	s.Emit(ctx, logging.Entry{Level: slog.LevelDebug, Message: "dropped"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	line := lines[0]
	assert.Equal(t, "2026-03-01T11:00:00Z", line["time"])
	assert.Equal(t, "ERROR", line["level"])
	assert.Equal(t, "billing", line["category"])
	assert.EqualValues(t, 3, line["event_id"])
	assert.NotContains(t, line, "event_name")
	assert.Equal(t, "charge failed", line["message"])
	assert.Equal(t, "timeout", line["error"])
	assert.Equal(t, []any{"invoice 12"}, line["scopes"])
}

func TestJSONLProvider_ConcurrentWritesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	p := NewJSONLProvider(&buf, slog.LevelInfo)
	ctx := context.Background()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := p.CreateSink("worker")
			for i := 0; i < 25; i++ {
				s.Emit(ctx, logging.Entry{Level: slog.LevelInfo, Message: "tick"})
			}
		}()
	}
	wg.Wait()

	assert.Len(t, decodeLines(t, &buf), 200)
}

func TestOpenJSONL_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "masked.jsonl")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		p, err := OpenJSONL(path, slog.LevelInfo)
		require.NoError(t, err)
		provider := logging.NewProvider(p, nil)
		provider.Logger("file").Info(ctx, "mail %s", "john.doe@example.com")
		require.NoError(t, provider.Close())
		require.NoError(t, p.Close(), "closing twice must be safe")
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := decodeLines(t, bytes.NewBuffer(data))
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, "mail ***@example.com", line["message"])
	}
	assert.NotContains(t, string(data), "john.doe")
}

func TestOpenJSONL_InvalidPath(t *testing.T) {
	_, err := OpenJSONL(filepath.Join(t.TempDir(), "missing", "dir", "x.jsonl"), slog.LevelInfo)
	assert.Error(t, err)
}

func TestJSONLSink_WriteFailureIsReported(t *testing.T) {
	before := testutil.ToFloat64(metrics.SinkErrorsTotal.WithLabelValues("file"))

	s := NewJSONLProvider(failingWriter{}, slog.LevelInfo).CreateSink("broken")
	s.Emit(context.Background(), logging.Entry{Level: slog.LevelInfo, Message: "lost"})

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.SinkErrorsTotal.WithLabelValues("file")))
}
