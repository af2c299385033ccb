package config

import "time"

// Config is the umbrella configuration object returned by Initialize() and
// used throughout the application.
type Config struct {
	configDir string // Configuration directory path (for reference)

	Server  *ServerConfig
	Logging *LoggingConfig
	Masking *MaskingConfig
	Sinks   *SinksConfig
}

// Initialize is defined in loader.go

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	HTTPPort        string        `yaml:"http_port,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
}

// LoggingConfig controls the process logger (the masking slog handler and
// whatever it writes to).
type LoggingConfig struct {
	Level     LogLevel  `yaml:"level,omitempty"`
	Format    LogFormat `yaml:"format,omitempty"`
	AddSource bool      `yaml:"add_source,omitempty"`
}

// MaskingConfig selects the detectors that make up the pattern catalog.
// Builtin detectors keep their fixed relative order; custom patterns are
// appended after them in the order listed.
type MaskingConfig struct {
	DisabledDetectors []string         `yaml:"disabled_detectors,omitempty"`
	CustomPatterns    []MaskingPattern `yaml:"custom_patterns,omitempty"`
}

// MaskingPattern defines a user-supplied regex detector with a fixed replacement.
type MaskingPattern struct {
	Name        string `yaml:"name"`
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
	Description string `yaml:"description,omitempty"`
}

// SinksConfig groups the downstream sinks the masking logger writes to.
// The process logger (stderr) is always active; everything here is optional.
type SinksConfig struct {
	OTel     *OTelSinkConfig     `yaml:"otel,omitempty"`
	Database *DatabaseSinkConfig `yaml:"database,omitempty"`
	File     *FileSinkConfig     `yaml:"file,omitempty"`
}

// OTelSinkConfig configures export of masked log records over OTLP.
type OTelSinkConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Endpoint    string            `yaml:"endpoint,omitempty"`
	Exporter    OTelExporter      `yaml:"exporter,omitempty"`
	Insecure    bool              `yaml:"insecure,omitempty"`
	Headers     map[string]string `yaml:"headers,omitempty"`
	ServiceName string            `yaml:"service_name,omitempty"`
}

// DatabaseSinkConfig enables persistence of masked entries in PostgreSQL.
// Connection settings come from DB_* environment variables.
type DatabaseSinkConfig struct {
	Enabled bool `yaml:"enabled"`
	// Retention is how long stored entries are kept. Pruning is off when zero.
	Retention       time.Duration `yaml:"retention,omitempty"`
	CleanupInterval time.Duration `yaml:"cleanup_interval,omitempty"`
}

// FileSinkConfig enables a JSON-lines file sink.
type FileSinkConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// ConfigDir returns the configuration directory path
func (c *Config) ConfigDir() string {
	return c.configDir
}

// Stats contains statistics about loaded configuration
type Stats struct {
	DisabledDetectors int
	CustomPatterns    int
	EnabledSinks      []string
}

// Stats returns configuration statistics for logging/monitoring
func (c *Config) Stats() Stats {
	s := Stats{}
	if c.Masking != nil {
		s.DisabledDetectors = len(c.Masking.DisabledDetectors)
		s.CustomPatterns = len(c.Masking.CustomPatterns)
	}
	if c.Sinks != nil {
		if c.Sinks.OTel != nil && c.Sinks.OTel.Enabled {
			s.EnabledSinks = append(s.EnabledSinks, "otel")
		}
		if c.Sinks.Database != nil && c.Sinks.Database.Enabled {
			s.EnabledSinks = append(s.EnabledSinks, "database")
		}
		if c.Sinks.File != nil && c.Sinks.File.Enabled {
			s.EnabledSinks = append(s.EnabledSinks, "file")
		}
	}
	return s
}
