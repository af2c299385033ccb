package masking

// Masker redacts sensitive data from an already-formatted log message.
// Implementations must be safe for concurrent use and free of side effects.
type Masker interface {
	// Mask returns message with every detected sensitive span replaced.
	// Messages without matches are returned unchanged.
	Mask(message string) string
}

// Redactor is a Masker that also reports what it replaced.
// Callers use the plan for metrics; the raw matched text it carries must
// never be logged.
type Redactor interface {
	Masker

	// Redact returns the masked message together with the applied plan.
	Redact(message string) Result
}
