package config

import (
	"log/slog"
	"strings"
)

// LogLevel is the minimum level of the process logger
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// IsValid checks if the log level is valid
func (l LogLevel) IsValid() bool {
	switch LogLevel(strings.ToLower(string(l))) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// SlogLevel converts the configured level to a slog.Level.
// Unknown values map to slog.LevelInfo.
func (l LogLevel) SlogLevel() slog.Level {
	switch LogLevel(strings.ToLower(string(l))) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat selects the slog handler used for the process logger
type LogFormat string

const (
	// LogFormatText writes logfmt-style key=value lines
	LogFormatText LogFormat = "text"
	// LogFormatJSON writes one JSON object per line
	LogFormatJSON LogFormat = "json"
)

// IsValid checks if the log format is valid
func (f LogFormat) IsValid() bool {
	return f == LogFormatText || f == LogFormatJSON
}

// OTelExporter selects the OTLP transport
type OTelExporter string

const (
	OTelExporterGRPC OTelExporter = "grpc"
	OTelExporterHTTP OTelExporter = "http"
)

// IsValid checks if the exporter is valid
func (e OTelExporter) IsValid() bool {
	return e == OTelExporterGRPC || e == OTelExporterHTTP
}
