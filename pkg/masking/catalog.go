package masking

import (
	"fmt"
	"slices"
	"sync"

	"github.com/codeready-toolchain/logshield/pkg/config"
)

// Catalog is the ordered, immutable list of detectors the engine runs.
// A detector's position is its priority: when spans from two detectors
// overlap, the earlier detector wins. A Catalog is safe for concurrent use.
type Catalog struct {
	detectors []*Detector
}

// NewCatalog compiles defs into a catalog, assigning priorities in order.
// Any definition that fails to compile fails the whole catalog: a broken
// pattern is a startup fault, never a per-message one.
func NewCatalog(defs ...DetectorDef) (*Catalog, error) {
	c := &Catalog{detectors: make([]*Detector, 0, len(defs))}
	seen := make(map[PatternKind]bool, len(defs))
	for i, def := range defs {
		if seen[def.Kind] {
			return nil, fmt.Errorf("detector %s: %w", def.Kind, config.ErrDuplicateName)
		}
		seen[def.Kind] = true

		d, err := compileDetector(def, i)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", config.ErrInvalidPattern, err)
		}
		c.detectors = append(c.detectors, d)
	}
	return c, nil
}

// With returns a new catalog holding c's detectors followed by defs.
// c itself is not modified.
func (c *Catalog) With(defs ...DetectorDef) (*Catalog, error) {
	all := make([]DetectorDef, 0, len(c.detectors)+len(defs))
	for _, d := range c.detectors {
		all = append(all, DetectorDef{
			Kind:        d.kind,
			Pattern:     d.re.String(),
			Mask:        d.mask,
			Description: d.description,
		})
	}
	return NewCatalog(append(all, defs...)...)
}

// Detectors returns the detectors in priority order.
func (c *Catalog) Detectors() []*Detector {
	return slices.Clone(c.detectors)
}

// Len returns the number of detectors.
func (c *Catalog) Len() int {
	return len(c.detectors)
}

// Kinds returns the detector kinds in priority order.
func (c *Catalog) Kinds() []PatternKind {
	kinds := make([]PatternKind, len(c.detectors))
	for i, d := range c.detectors {
		kinds[i] = d.kind
	}
	return kinds
}

// BuiltinDefs returns the builtin detector definitions in priority order,
// skipping any whose name is listed in disabled.
func BuiltinDefs(disabled ...string) ([]DetectorDef, error) {
	builtin := config.GetBuiltinConfig()
	defs := make([]DetectorDef, 0, len(builtin.Detectors))
	for _, bd := range builtin.Detectors {
		if slices.Contains(disabled, bd.Name) {
			continue
		}
		kind := PatternKind(bd.Name)
		rule, ok := builtinRules[kind]
		if !ok {
			return nil, fmt.Errorf("builtin detector %s: %w", bd.Name, config.ErrDetectorNotFound)
		}
		defs = append(defs, DetectorDef{
			Kind:        kind,
			Pattern:     bd.Pattern,
			Mask:        rule,
			Description: bd.Description,
		})
	}
	return defs, nil
}

// BuildCatalog builds the catalog described by cfg: the enabled builtin
// detectors followed by the custom patterns in configuration order.
// A nil cfg yields the builtin catalog.
func BuildCatalog(cfg *config.MaskingConfig) (*Catalog, error) {
	if cfg == nil {
		cfg = &config.MaskingConfig{}
	}

	defs, err := BuiltinDefs(cfg.DisabledDetectors...)
	if err != nil {
		return nil, err
	}
	for _, p := range cfg.CustomPatterns {
		defs = append(defs, DetectorDef{
			Kind:        CustomKind(p.Name),
			Pattern:     p.Pattern,
			Mask:        ReplaceWith(p.Replacement),
			Description: p.Description,
		})
	}
	return NewCatalog(defs...)
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the process-wide builtin catalog, built on first use.
// The builtin patterns are constants, so a failure here is a programming
// error and panics.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := BuildCatalog(nil)
		if err != nil {
			panic(fmt.Sprintf("masking: builtin catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
