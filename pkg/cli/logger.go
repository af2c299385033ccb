package cli

import (
	"io"
	"log/slog"

	"github.com/codeready-toolchain/logshield/pkg/config"
)

// newBaseHandler builds the unmasked handler of the process logger.
func newBaseHandler(cfg *config.LoggingConfig, w io.Writer) slog.Handler {
	if cfg == nil {
		cfg = config.DefaultLoggingConfig()
	}
	opts := &slog.HandlerOptions{
		Level:     cfg.Level.SlogLevel(),
		AddSource: cfg.AddSource,
	}
	if cfg.Format == config.LogFormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
