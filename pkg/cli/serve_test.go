package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/logshield/pkg/config"
	"github.com/codeready-toolchain/logshield/pkg/logging"
	"github.com/codeready-toolchain/logshield/pkg/masking"
	"github.com/codeready-toolchain/logshield/pkg/sink"
)

func TestNewBaseHandler(t *testing.T) {
	t.Run("json at warn", func(t *testing.T) {
		var buf bytes.Buffer
		h := newBaseHandler(&config.LoggingConfig{Level: config.LogLevelWarn, Format: config.LogFormatJSON}, &buf)
		logger := slog.New(h)
		logger.Info("dropped")
		logger.Warn("kept", "k", "v")

		var line map[string]any
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
		assert.Equal(t, "kept", line["msg"])
		assert.Equal(t, "v", line["k"])
	})

	t.Run("nil config is text at info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(newBaseHandler(nil, &buf))
		logger.Debug("dropped")
		logger.Info("kept")

		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), "msg=kept")
	})
}

func TestProcessLoggerMasks(t *testing.T) {
	var buf bytes.Buffer
	svc := masking.NewService(nil)
	logger := slog.New(logging.NewHandler(newBaseHandler(nil, &buf), svc))

	logger.Info("Login from mario.rossi@example.it")

	assert.Contains(t, buf.String(), "***@example.it")
	assert.NotContains(t, buf.String(), "mario.rossi")
}

func TestSetupSinks_FileSink(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "masked.jsonl")

	cfg := config.Default()
	cfg.Sinks.File.Enabled = true
	cfg.Sinks.File.Path = path

	var base bytes.Buffer
	svc := masking.NewService(nil)
	sinks, err := setupSinks(ctx, cfg, slog.NewTextHandler(&base, nil), svc)
	require.NoError(t, err)
	require.Len(t, sinks.providers, 2)
	assert.Nil(t, sinks.dbClient)
	assert.Nil(t, sinks.otelLogs)
	assert.Nil(t, sinks.cleanup)

	loggers := logging.NewProvider(sinks.providers, svc)
	loggers.Logger("orders").Info(ctx, "card %s", "4111 1111 1111 1234")
	require.NoError(t, loggers.Close())
	sinks.Close()
	sinks.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"card **** **** **** 1234"`)
	assert.Contains(t, base.String(), "card **** **** **** 1234")
	assert.NotContains(t, string(data)+base.String(), "4111 1111")
}

func TestSetupSinks_OTel(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Sinks.OTel.Enabled = true
	cfg.Sinks.OTel.Endpoint = "localhost:4317"
	cfg.Sinks.OTel.Insecure = true

	sinks, err := setupSinks(ctx, cfg, slog.NewTextHandler(&bytes.Buffer{}, nil), masking.NewService(nil))
	require.NoError(t, err)
	require.NotNil(t, sinks.otelLogs)
	require.Len(t, sinks.providers, 2)
	assert.IsType(t, &sink.OTelProvider{}, sinks.providers[1])
	sinks.Close()
	assert.Nil(t, sinks.otelLogs)
}

func TestSetupSinks_FileSinkBadPath(t *testing.T) {
	cfg := config.Default()
	cfg.Sinks.File.Enabled = true
	cfg.Sinks.File.Path = filepath.Join(t.TempDir(), "missing", "x.jsonl")

	_, err := setupSinks(context.Background(), cfg, slog.NewTextHandler(&bytes.Buffer{}, nil), masking.NewService(nil))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to open log file"))
}

func TestSetupSinks_DatabaseConfigMissing(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")
	cfg := config.Default()
	cfg.Sinks.Database.Enabled = true

	_, err := setupSinks(context.Background(), cfg, slog.NewTextHandler(&bytes.Buffer{}, nil), masking.NewService(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load database config")
}
