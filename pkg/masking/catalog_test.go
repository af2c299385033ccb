package masking

import (
	"testing"

	"github.com/codeready-toolchain/logshield/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	assert.Equal(t, []PatternKind{
		KindEmail,
		KindCreditCard,
		KindNationalID,
		KindPhoneNumber,
		KindStreetAddress,
	}, c.Kinds())

	for i, d := range c.Detectors() {
		assert.Equal(t, i, d.Priority(), "detector %s", d.Kind())
		assert.NotEmpty(t, d.Pattern())
		assert.NotEmpty(t, d.Description())
		assert.False(t, d.Kind().IsCustom())
	}
	assert.Same(t, c, DefaultCatalog())
}

func TestBuildCatalog_DisabledDetector(t *testing.T) {
	c, err := BuildCatalog(&config.MaskingConfig{
		DisabledDetectors: []string{string(KindStreetAddress)},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())
	assert.NotContains(t, c.Kinds(), KindStreetAddress)

	svc := NewService(c)
	assert.Equal(t, "Address: Via Roma, Milano", svc.Mask("Address: Via Roma, Milano"))
	assert.Equal(t, "My email is ***@example.com", svc.Mask("My email is john.doe@example.com"))
}

func TestBuildCatalog_CustomPattern(t *testing.T) {
	c, err := BuildCatalog(&config.MaskingConfig{
		CustomPatterns: []config.MaskingPattern{
			{
				Name:        "iban",
				Pattern:     `\bIT\d{2}[A-Z]\d{10}[0-9A-Z]{12}\b`,
				Replacement: "[MASKED_IBAN]",
				Description: "Italian IBAN",
			},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 6, c.Len())

	last := c.Detectors()[5]
	assert.Equal(t, CustomKind("iban"), last.Kind())
	assert.True(t, last.Kind().IsCustom())
	assert.Equal(t, 5, last.Priority())

	svc := NewService(c)
	result := svc.Redact("wire to IT60X0542811101000000123456 from john@example.com")
	assert.Equal(t, "wire to [MASKED_IBAN] from ***@example.com", result.Text)
	assert.Equal(t, map[PatternKind]int{CustomKind("iban"): 1, KindEmail: 1}, result.Plan.CountByKind())
}

func TestNewCatalog_Errors(t *testing.T) {
	t.Run("invalid pattern", func(t *testing.T) {
		_, err := NewCatalog(DetectorDef{Kind: "broken", Pattern: `([a-z`, Mask: ReplaceWith("x")})
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrInvalidPattern)
	})

	t.Run("duplicate kind", func(t *testing.T) {
		def := DetectorDef{Kind: "dup", Pattern: `a`, Mask: ReplaceWith("x")}
		_, err := NewCatalog(def, def)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrDuplicateName)
	})

	t.Run("missing mask", func(t *testing.T) {
		_, err := NewCatalog(DetectorDef{Kind: "nomask", Pattern: `a`})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no masking rule")
	})

	t.Run("empty kind", func(t *testing.T) {
		_, err := NewCatalog(DetectorDef{Pattern: `a`, Mask: ReplaceWith("x")})
		require.Error(t, err)
	})
}

func TestCatalog_WithDoesNotModifyReceiver(t *testing.T) {
	base := DefaultCatalog()
	extended, err := base.With(DetectorDef{
		Kind:    CustomKind("ticket"),
		Pattern: `\bTCK-\d{6}\b`,
		Mask:    ReplaceWith("TCK-******"),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, base.Len())
	assert.Equal(t, 6, extended.Len())
	assert.Equal(t, "see TCK-123456", NewService(base).Mask("see TCK-123456"))
	assert.Equal(t, "see TCK-******", NewService(extended).Mask("see TCK-123456"))

	_, err = base.With(DetectorDef{Kind: KindEmail, Pattern: `x`, Mask: ReplaceWith("x")})
	assert.ErrorIs(t, err, config.ErrDuplicateName)
}

func TestDetector_FindSpans(t *testing.T) {
	phone := DefaultCatalog().Detectors()[3]
	require.Equal(t, KindPhoneNumber, phone.Kind())

	spans := phone.FindSpans("call 333-123-4567 now or 02 1234 5678 later")
	require.Len(t, spans, 2)

	assert.Equal(t, SensitiveSpan{
		Start:    5,
		Length:   12,
		Kind:     KindPhoneNumber,
		Priority: 3,
		RawText:  "333-123-4567",
	}, spans[0])
	assert.Equal(t, "02 1234 5678", spans[1].RawText)

	assert.Empty(t, phone.FindSpans("no digits here"))
}

func TestDetector_SkipsEmptyMatches(t *testing.T) {
	c, err := NewCatalog(DetectorDef{Kind: "optional", Pattern: `x*`, Mask: ReplaceWith("X")})
	require.NoError(t, err)

	spans := c.Detectors()[0].FindSpans("abxxc")
	require.Len(t, spans, 1)
	assert.Equal(t, 2, spans[0].Start)
	assert.Equal(t, 2, spans[0].Length)
	assert.Equal(t, "abXc", NewService(c).Mask("abxxc"))
}
