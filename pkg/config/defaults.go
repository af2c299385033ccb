package config

import "time"

const (
	// DefaultHTTPPort is used when server.http_port is not set
	DefaultHTTPPort = "8080"

	// DefaultShutdownTimeout bounds graceful HTTP shutdown
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultOTelServiceName is the service.name resource attribute for exported logs
	DefaultOTelServiceName = "logshield"

	// DefaultEntryRetention is how long the database sink keeps entries
	DefaultEntryRetention = 30 * 24 * time.Hour

	// DefaultCleanupInterval is how often expired entries are removed
	DefaultCleanupInterval = time.Hour

	// DefaultFileSinkPath is the JSON-lines file written when the file sink is enabled without a path
	DefaultFileSinkPath = "logshield.jsonl"
)

// DefaultServerConfig returns the built-in server settings.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		HTTPPort:        DefaultHTTPPort,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// DefaultLoggingConfig returns the built-in process logger settings.
func DefaultLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Level:  LogLevelInfo,
		Format: LogFormatText,
	}
}

// DefaultMaskingConfig returns a configuration with every builtin detector
// enabled and no custom patterns.
func DefaultMaskingConfig() *MaskingConfig {
	return &MaskingConfig{}
}

// DefaultSinksConfig returns all optional sinks disabled.
func DefaultSinksConfig() *SinksConfig {
	return &SinksConfig{
		OTel: &OTelSinkConfig{
			Exporter:    OTelExporterGRPC,
			ServiceName: DefaultOTelServiceName,
		},
		Database: &DatabaseSinkConfig{
			Retention:       DefaultEntryRetention,
			CleanupInterval: DefaultCleanupInterval,
		},
		File: &FileSinkConfig{
			Path: DefaultFileSinkPath,
		},
	}
}

// Default returns a complete configuration built purely from defaults.
// Used when no logshield.yaml is present, and by tests.
func Default() *Config {
	return &Config{
		Server:  DefaultServerConfig(),
		Logging: DefaultLoggingConfig(),
		Masking: DefaultMaskingConfig(),
		Sinks:   DefaultSinksConfig(),
	}
}
