package masking

// Result is the outcome of masking one message.
type Result struct {
	// Text is the masked message.
	Text string
	// Plan holds the applied replacements, ordered by descending offset.
	Plan ReplacementPlan
}

// Redacted reports whether anything was replaced.
func (r Result) Redacted() bool {
	return len(r.Plan) > 0
}

// Service is the masking facade: detection, conflict resolution and
// rewriting composed into a single call. It holds nothing but its catalog,
// so one instance is shared by every logger in the process.
type Service struct {
	catalog *Catalog
}

// NewService creates a masking service over catalog.
// A nil catalog selects DefaultCatalog().
func NewService(catalog *Catalog) *Service {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Service{catalog: catalog}
}

// Catalog returns the catalog the service masks with.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// Mask returns message with all sensitive spans redacted.
// The empty message is returned as-is without running any detector.
func (s *Service) Mask(message string) string {
	return s.Redact(message).Text
}

// MaskPtr is Mask for optional messages: nil stays nil.
func (s *Service) MaskPtr(message *string) *string {
	if message == nil {
		return nil
	}
	masked := s.Mask(*message)
	return &masked
}

// Redact masks message and returns the applied plan alongside the text.
func (s *Service) Redact(message string) Result {
	if message == "" {
		return Result{Text: message}
	}

	plan := s.catalog.Plan(message)
	if len(plan) == 0 {
		return Result{Text: message}
	}
	return Result{
		Text: plan.Apply(message),
		Plan: plan,
	}
}

var _ Redactor = (*Service)(nil)
