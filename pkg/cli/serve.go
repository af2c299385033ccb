package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/codeready-toolchain/logshield/pkg/api"
	"github.com/codeready-toolchain/logshield/pkg/cleanup"
	"github.com/codeready-toolchain/logshield/pkg/config"
	"github.com/codeready-toolchain/logshield/pkg/database"
	"github.com/codeready-toolchain/logshield/pkg/logging"
	"github.com/codeready-toolchain/logshield/pkg/masking"
	"github.com/codeready-toolchain/logshield/pkg/sink"
)

// otelShutdownTimeout bounds the final flush of exported log records.
const otelShutdownTimeout = 5 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API with the configured sinks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), root.configDir)
		},
	}
}

func runServe(parent context.Context, configDir string) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Load .env file from config directory
	envPath := filepath.Join(configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		slog.Warn("Could not load .env file, continuing with existing environment",
			"path", envPath, "error", err)
	} else {
		slog.Info("Loaded environment", "path", envPath)
	}

	// 1. Configuration and masking engine
	cfg, svc, err := loadMaskingService(ctx, configDir)
	if err != nil {
		return err
	}

	// 2. Process logger: every line this process writes is masked
	base := newBaseHandler(cfg.Logging, os.Stderr)
	slog.SetDefault(slog.New(logging.NewHandler(base, svc)))
	gin.SetMode(gin.ReleaseMode)

	slog.Info("Starting logshield",
		"http_port", cfg.Server.HTTPPort,
		"config_dir", configDir,
		"detectors", svc.Catalog().Len())

	// 3. Sinks
	sinks, err := setupSinks(ctx, cfg, base, svc)
	if err != nil {
		return err
	}
	defer sinks.Close()

	loggers := logging.NewProvider(sinks.providers, svc)

	// 4. HTTP server (non-blocking)
	server := api.NewServer(cfg.Server, svc, loggers)
	if sinks.dbClient != nil {
		server.SetDatabase(sinks.dbClient)
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", server.Addr())
		if err := server.Start(); err != nil {
			errCh <- err
		}
	}()

	// 5. Wait for shutdown signal or server error
	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case serveErr = <-errCh:
		slog.Error("Server error triggered shutdown", "error", serveErr)
	}

	// 6. Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
	if err := loggers.Close(); err != nil {
		slog.Error("Error closing sinks", "error", err)
	}

	slog.Info("Shutdown complete")
	return serveErr
}

// sinkSet holds the sinks enabled by configuration and what they own.
type sinkSet struct {
	providers sink.MultiProvider
	dbClient  *database.Client
	otelLogs  *sink.OTelLogs
	cleanup   *cleanup.Service
}

// setupSinks builds the sink providers enabled in cfg. The slog sink over
// base is always present.
func setupSinks(ctx context.Context, cfg *config.Config, base slog.Handler, svc *masking.Service) (_ *sinkSet, err error) {
	s := &sinkSet{
		providers: sink.MultiProvider{sink.NewSlogProvider(base)},
	}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	level := cfg.Logging.Level.SlogLevel()

	if cfg.Sinks.Database.Enabled {
		dbConfig, err := database.LoadConfigFromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load database config: %w", err)
		}
		s.dbClient, err = database.NewClient(ctx, dbConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		slog.Info("Connected to PostgreSQL database")

		s.providers = append(s.providers, sink.NewDatabaseProvider(s.dbClient.Entries, level))
		s.cleanup = cleanup.NewService(cfg.Sinks.Database, s.dbClient.Entries)
		s.cleanup.Start(ctx)
	}

	if cfg.Sinks.File.Enabled {
		fileProvider, err := sink.OpenJSONL(cfg.Sinks.File.Path, level)
		if err != nil {
			return nil, err
		}
		s.providers = append(s.providers, fileProvider)
		slog.Info("File sink enabled", "path", cfg.Sinks.File.Path)
	}

	s.otelLogs, err = sink.InitOTelLogs(ctx, cfg.Sinks.OTel, svc)
	if err != nil {
		return nil, err
	}
	if s.otelLogs != nil {
		s.providers = append(s.providers, s.otelLogs.SinkProvider())
		slog.Info("OpenTelemetry log export enabled",
			"endpoint", cfg.Sinks.OTel.Endpoint,
			"exporter", cfg.Sinks.OTel.Exporter)
	}

	return s, nil
}

// Close stops background work and releases every sink. Safe to call more
// than once.
func (s *sinkSet) Close() {
	if s.cleanup != nil {
		s.cleanup.Stop()
		s.cleanup = nil
	}
	if err := s.providers.Close(); err != nil {
		slog.Error("Error closing sink providers", "error", err)
	}
	if s.otelLogs != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()
		if err := s.otelLogs.Shutdown(shutdownCtx); err != nil {
			slog.Error("Error shutting down OpenTelemetry logs", "error", err)
		}
		s.otelLogs = nil
	}
	if s.dbClient != nil {
		if err := s.dbClient.Close(); err != nil {
			slog.Error("Error closing database client", "error", err)
		}
		s.dbClient = nil
	}
}
