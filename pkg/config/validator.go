package config

import (
	"fmt"
	"regexp"
	"strconv"
)

// ConfigValidator validates configuration comprehensively with clear error messages
type ConfigValidator struct {
	cfg *Config
}

// NewValidator creates a validator for the given configuration
func NewValidator(cfg *Config) *ConfigValidator {
	return &ConfigValidator{cfg: cfg}
}

// ValidateAll performs comprehensive validation (fail-fast - stops at first error)
func (v *ConfigValidator) ValidateAll() error {
	if err := v.validateServer(); err != nil {
		return fmt.Errorf("server validation failed: %w", err)
	}

	if err := v.validateLogging(); err != nil {
		return fmt.Errorf("logging validation failed: %w", err)
	}

	if err := v.validateMasking(); err != nil {
		return fmt.Errorf("masking validation failed: %w", err)
	}

	if err := v.validateSinks(); err != nil {
		return fmt.Errorf("sink validation failed: %w", err)
	}

	return nil
}

func (v *ConfigValidator) validateServer() error {
	s := v.cfg.Server
	if s == nil {
		return NewValidationError("server", "server", "", ErrMissingRequiredField)
	}
	port, err := strconv.Atoi(s.HTTPPort)
	if err != nil || port < 1 || port > 65535 {
		return NewValidationError("server", "server", "http_port", fmt.Errorf("%w: %q", ErrInvalidValue, s.HTTPPort))
	}
	if s.ShutdownTimeout < 0 {
		return NewValidationError("server", "server", "shutdown_timeout", fmt.Errorf("%w: must not be negative", ErrInvalidValue))
	}
	return nil
}

func (v *ConfigValidator) validateLogging() error {
	l := v.cfg.Logging
	if l == nil {
		return NewValidationError("logging", "logging", "", ErrMissingRequiredField)
	}
	if !l.Level.IsValid() {
		return NewValidationError("logging", "logging", "level", fmt.Errorf("%w: %q", ErrInvalidValue, l.Level))
	}
	if !l.Format.IsValid() {
		return NewValidationError("logging", "logging", "format", fmt.Errorf("%w: %q", ErrInvalidValue, l.Format))
	}
	return nil
}

func (v *ConfigValidator) validateMasking() error {
	m := v.cfg.Masking
	if m == nil {
		return nil
	}

	builtin := GetBuiltinConfig()
	for _, name := range m.DisabledDetectors {
		if !builtin.HasDetector(name) {
			return NewValidationError("masking", name, "disabled_detectors", ErrDetectorNotFound)
		}
	}

	seen := make(map[string]bool)
	for i, p := range m.CustomPatterns {
		id := p.Name
		if id == "" {
			id = fmt.Sprintf("custom_patterns[%d]", i)
			return NewValidationError("masking", id, "name", ErrMissingRequiredField)
		}
		if seen[p.Name] || builtin.HasDetector(p.Name) {
			return NewValidationError("masking", id, "name", ErrDuplicateName)
		}
		seen[p.Name] = true

		if p.Pattern == "" {
			return NewValidationError("masking", id, "pattern", ErrMissingRequiredField)
		}
		if p.Replacement == "" {
			return NewValidationError("masking", id, "replacement", ErrMissingRequiredField)
		}
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return NewValidationError("masking", id, "pattern", fmt.Errorf("%w: %v", ErrInvalidPattern, err))
		}
		// A pattern that matches "" would produce zero-length spans at every offset
		if re.MatchString("") {
			return NewValidationError("masking", id, "pattern", fmt.Errorf("%w: matches the empty string", ErrInvalidPattern))
		}
	}
	return nil
}

func (v *ConfigValidator) validateSinks() error {
	s := v.cfg.Sinks
	if s == nil {
		return nil
	}
	if s.OTel != nil && s.OTel.Enabled {
		if s.OTel.Endpoint == "" {
			return NewValidationError("sink", "otel", "endpoint", ErrMissingRequiredField)
		}
		if !s.OTel.Exporter.IsValid() {
			return NewValidationError("sink", "otel", "exporter", fmt.Errorf("%w: %q", ErrInvalidValue, s.OTel.Exporter))
		}
	}
	if s.Database != nil && s.Database.Enabled {
		if s.Database.Retention < 0 {
			return NewValidationError("sink", "database", "retention", fmt.Errorf("%w: must not be negative", ErrInvalidValue))
		}
		if s.Database.Retention > 0 && s.Database.CleanupInterval <= 0 {
			return NewValidationError("sink", "database", "cleanup_interval", fmt.Errorf("%w: must be positive", ErrInvalidValue))
		}
	}
	if s.File != nil && s.File.Enabled && s.File.Path == "" {
		return NewValidationError("sink", "file", "path", ErrMissingRequiredField)
	}
	return nil
}
