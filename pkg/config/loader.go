package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the configuration file looked up in the config directory
const ConfigFileName = "logshield.yaml"

// LogshieldYAMLConfig represents the complete logshield.yaml file structure
type LogshieldYAMLConfig struct {
	Server  *ServerConfig    `yaml:"server"`
	Logging *LoggingConfig   `yaml:"logging"`
	Masking *MaskingConfig   `yaml:"masking"`
	Sinks   *SinksYAMLConfig `yaml:"sinks"`
}

// SinksYAMLConfig mirrors SinksConfig; kept separate so an absent section
// can be told apart from an explicitly disabled one.
type SinksYAMLConfig struct {
	OTel     *OTelSinkConfig         `yaml:"otel"`
	Database *DatabaseSinkYAMLConfig `yaml:"database"`
	File     *FileSinkConfig         `yaml:"file"`
}

// DatabaseSinkYAMLConfig mirrors DatabaseSinkConfig with pointer durations,
// so an explicit zero retention is kept instead of falling back to the default.
type DatabaseSinkYAMLConfig struct {
	Enabled         bool           `yaml:"enabled"`
	Retention       *time.Duration `yaml:"retention"`
	CleanupInterval *time.Duration `yaml:"cleanup_interval"`
}

// Initialize loads, validates, and returns ready-to-use configuration.
// This is the primary entry point for configuration loading.
//
// Steps performed:
//  1. Load logshield.yaml from configDir (absent file = built-in defaults)
//  2. Expand {{.VAR}} environment references
//  3. Parse YAML into structs
//  4. Merge user-defined values over built-in defaults
//  5. Validate all configuration
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("Initializing configuration")

	cfg, err := load(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	stats := cfg.Stats()
	log.Info("Configuration initialized successfully",
		"disabled_detectors", stats.DisabledDetectors,
		"custom_patterns", stats.CustomPatterns,
		"sinks", stats.EnabledSinks)

	return cfg, nil
}

// load is the internal loader (not exported)
func load(_ context.Context, configDir string) (*Config, error) {
	loader := &configLoader{
		configDir: configDir,
	}

	yamlCfg, err := loader.loadLogshieldYAML()
	if err != nil {
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, NewLoadError(ConfigFileName, err)
		}
		slog.Info("No configuration file found, using built-in defaults",
			"file", filepath.Join(configDir, ConfigFileName))
		yamlCfg = &LogshieldYAMLConfig{}
	}

	cfg := Default()
	cfg.configDir = configDir

	if yamlCfg.Server != nil {
		if err := mergo.Merge(cfg.Server, yamlCfg.Server, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge server config: %w", err)
		}
	}
	if yamlCfg.Logging != nil {
		if err := mergo.Merge(cfg.Logging, yamlCfg.Logging, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge logging config: %w", err)
		}
	}
	if yamlCfg.Masking != nil {
		cfg.Masking = yamlCfg.Masking
	}
	if err := mergeSinks(cfg.Sinks, yamlCfg.Sinks); err != nil {
		return nil, fmt.Errorf("failed to merge sinks config: %w", err)
	}

	return cfg, nil
}

// mergeSinks overlays user sink sections onto the defaults section by section.
func mergeSinks(dst *SinksConfig, src *SinksYAMLConfig) error {
	if src == nil {
		return nil
	}
	if src.OTel != nil {
		if err := mergo.Merge(dst.OTel, src.OTel, mergo.WithOverride); err != nil {
			return err
		}
	}
	if src.Database != nil {
		dst.Database.Enabled = src.Database.Enabled
		if src.Database.Retention != nil {
			dst.Database.Retention = *src.Database.Retention
		}
		if src.Database.CleanupInterval != nil {
			dst.Database.CleanupInterval = *src.Database.CleanupInterval
		}
	}
	if src.File != nil {
		if err := mergo.Merge(dst.File, src.File, mergo.WithOverride); err != nil {
			return err
		}
	}
	return nil
}

// validate performs comprehensive validation on loaded configuration
func validate(cfg *Config) error {
	validator := NewValidator(cfg)
	return validator.ValidateAll()
}

type configLoader struct {
	configDir string
}

func (l *configLoader) loadYAML(filename string, target any) error {
	path := filepath.Join(l.configDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}

	data = ExpandEnv(data)

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return nil
}

func (l *configLoader) loadLogshieldYAML() (*LogshieldYAMLConfig, error) {
	var config LogshieldYAMLConfig
	if err := l.loadYAML(ConfigFileName, &config); err != nil {
		return nil, err
	}
	return &config, nil
}
