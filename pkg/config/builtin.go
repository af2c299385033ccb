package config

import (
	"sync"
)

// BuiltinConfig holds all built-in configuration data: the ordered detector
// definitions that form the default pattern catalog.
type BuiltinConfig struct {
	// Detectors is ordered by priority: an earlier detector wins when two
	// detectors match overlapping text.
	Detectors []BuiltinDetector
}

// BuiltinDetector is the lexical definition of one builtin PII detector.
// The masking rule for each name lives in pkg/masking.
type BuiltinDetector struct {
	Name        string
	Pattern     string
	Description string
}

var (
	builtinConfig     *BuiltinConfig
	builtinConfigOnce sync.Once
)

// GetBuiltinConfig returns the singleton built-in configuration (thread-safe, lazy-initialized)
func GetBuiltinConfig() *BuiltinConfig {
	builtinConfigOnce.Do(initBuiltinConfig)
	return builtinConfig
}

func initBuiltinConfig() {
	builtinConfig = &BuiltinConfig{
		Detectors: initBuiltinDetectors(),
	}
}

// HasDetector reports whether name is a builtin detector.
func (b *BuiltinConfig) HasDetector(name string) bool {
	for _, d := range b.Detectors {
		if d.Name == name {
			return true
		}
	}
	return false
}

// DetectorNames returns builtin detector names in priority order.
func (b *BuiltinConfig) DetectorNames() []string {
	names := make([]string, 0, len(b.Detectors))
	for _, d := range b.Detectors {
		names = append(names, d.Name)
	}
	return names
}

// Patterns are RE2 syntax. Card numbers sit before phone numbers: both match
// long digit runs, and a 13-16 digit run is the more specific shape.
func initBuiltinDetectors() []BuiltinDetector {
	return []BuiltinDetector{
		{
			Name:        "email",
			Pattern:     `[a-zA-Z0-9._%+-]+@[a-zA-Z0-9-]+(?:\.[a-zA-Z0-9-]+)*\.[a-zA-Z]{2,}`,
			Description: "Email addresses (domain is preserved)",
		},
		{
			Name:        "credit_card",
			Pattern:     `\b\d(?:[ -]?\d){12,15}\b`,
			Description: "Payment card numbers, 13-16 digits with optional space/hyphen separators",
		},
		{
			Name:        "national_id",
			Pattern:     `(?i)\b[a-z]{6}[0-9]{2}[a-z][0-9]{2}[a-z][0-9]{3}[a-z]\b`,
			Description: "Italian codice fiscale",
		},
		{
			Name:        "phone_number",
			Pattern:     `(?:\+39[ \t]?|\b)(?:\d{3}[-. \t]?\d{3}[-. \t]?\d{4}|\d{2}[-. \t]?\d{4}[-. \t]?\d{4})\b`,
			Description: "Italian phone numbers with optional +39 prefix (3-3-4 or 2-4-4 grouping)",
		},
		{
			Name:        "street_address",
			Pattern:     `(?i)\b(?:via|viale|piazza|corso|largo|strada|piazzale|vicolo|borgo)[ \t]+\p{L}+(?:[ \t]+\p{L}+)*[ \t]*,[ \t]?\p{L}+(?:[ \t]+\p{L}+)*`,
			Description: "Italian street addresses followed by a city",
		},
	}
}
