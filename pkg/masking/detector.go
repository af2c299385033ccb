package masking

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternKind identifies the family of sensitive data a detector targets.
type PatternKind string

const (
	KindEmail         PatternKind = "email"
	KindCreditCard    PatternKind = "credit_card"
	KindNationalID    PatternKind = "national_id"
	KindPhoneNumber   PatternKind = "phone_number"
	KindStreetAddress PatternKind = "street_address"
)

// customKindPrefix marks kinds contributed by configuration rather than code.
const customKindPrefix = "custom:"

// CustomKind returns the kind used for a configured custom pattern.
func CustomKind(name string) PatternKind {
	return PatternKind(customKindPrefix + name)
}

// IsCustom reports whether the kind was contributed by configuration.
func (k PatternKind) IsCustom() bool {
	return strings.HasPrefix(string(k), customKindPrefix)
}

// MaskFunc turns a matched substring into its redacted form.
type MaskFunc func(raw string) string

// DetectorDef is the uncompiled definition of a detector. Priority is not
// part of the definition: it is the definition's position in the catalog.
type DetectorDef struct {
	Kind        PatternKind
	Pattern     string
	Mask        MaskFunc
	Description string
}

// Detector pairs a compiled matching rule with a masking rule.
// Detectors are immutable once built and shared by all callers.
type Detector struct {
	kind        PatternKind
	priority    int
	description string
	re          *regexp.Regexp
	mask        MaskFunc
}

// compileDetector compiles def in leftmost-longest mode. RE2 matching is
// linear in the input length for every pattern, including the address and
// phone shapes that would backtrack badly on a backtracking engine.
func compileDetector(def DetectorDef, priority int) (*Detector, error) {
	if def.Kind == "" {
		return nil, fmt.Errorf("detector at position %d: empty kind", priority)
	}
	if def.Mask == nil {
		return nil, fmt.Errorf("detector %s: no masking rule", def.Kind)
	}
	re, err := regexp.Compile(def.Pattern)
	if err != nil {
		return nil, fmt.Errorf("detector %s: %w", def.Kind, err)
	}
	re.Longest()

	return &Detector{
		kind:        def.Kind,
		priority:    priority,
		description: def.Description,
		re:          re,
		mask:        def.Mask,
	}, nil
}

// Kind returns the detector's pattern kind.
func (d *Detector) Kind() PatternKind { return d.kind }

// Priority returns the catalog position; lower wins on overlap.
func (d *Detector) Priority() int { return d.priority }

// Description returns a human-readable summary of what the detector matches.
func (d *Detector) Description() string { return d.description }

// Pattern returns the source of the matching rule.
func (d *Detector) Pattern() string { return d.re.String() }

// Redact applies the detector's masking rule to a raw match.
func (d *Detector) Redact(raw string) string { return d.mask(raw) }
