package sink

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/codeready-toolchain/logshield/pkg/logging"
)

// jsonlRecord is one line of a JSON-lines log file.
type jsonlRecord struct {
	Time      time.Time `json:"time"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	EventID   int       `json:"event_id,omitempty"`
	EventName string    `json:"event_name,omitempty"`
	Message   string    `json:"message"`
	Error     string    `json:"error,omitempty"`
	Scopes    []string  `json:"scopes,omitempty"`
}

// JSONLProvider writes entries of every category as JSON lines to a single
// writer. Writes are serialized so lines never interleave.
type JSONLProvider struct {
	mu       sync.Mutex
	w        io.Writer
	minLevel slog.Level
	closer   io.Closer
}

// NewJSONLProvider creates a provider writing to w. Entries below minLevel
// are dropped.
func NewJSONLProvider(w io.Writer, minLevel slog.Level) *JSONLProvider {
	return &JSONLProvider{w: w, minLevel: minLevel}
}

// OpenJSONL opens (or creates) the file at path for appending and returns a
// provider writing to it. Close closes the file.
func OpenJSONL(path string, minLevel slog.Level) (*JSONLProvider, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	p := NewJSONLProvider(f, minLevel)
	p.closer = f
	return p, nil
}

// CreateSink implements logging.SinkProvider.
func (p *JSONLProvider) CreateSink(category string) logging.Sink {
	return &JSONLSink{provider: p, category: category}
}

// Close closes the underlying file, if the provider opened one.
func (p *JSONLProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closer == nil {
		return nil
	}
	err := p.closer.Close()
	p.closer = nil
	return err
}

func (p *JSONLProvider) write(line []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := p.w.Write(line)
	return err
}

// JSONLSink is the per-category sink of a JSONLProvider.
type JSONLSink struct {
	provider *JSONLProvider
	category string
	scopes   scopeStack
}

// Enabled implements logging.Sink.
func (s *JSONLSink) Enabled(_ context.Context, level slog.Level) bool {
	return level >= s.provider.minLevel
}

// BeginScope implements logging.Sink.
func (s *JSONLSink) BeginScope(state any) logging.Scope {
	return s.scopes.push(state)
}

// Emit implements logging.Sink.
func (s *JSONLSink) Emit(ctx context.Context, e logging.Entry) {
	if !s.Enabled(ctx, e.Level) {
		return
	}

	rec := jsonlRecord{
		Time:      e.Time.UTC(),
		Level:     e.Level.String(),
		Category:  s.category,
		EventID:   e.EventID.ID,
		EventName: e.EventID.Name,
		Message:   e.Message,
		Scopes:    s.scopes.states(),
	}
	if e.Err != nil {
		rec.Error = e.Err.Error()
	}

	line, err := json.Marshal(rec)
	if err != nil {
		reportFailure("file", s.category, err)
		return
	}
	if err := s.provider.write(append(line, '\n')); err != nil {
		reportFailure("file", s.category, err)
	}
}

var (
	_ logging.Sink         = (*JSONLSink)(nil)
	_ logging.SinkProvider = (*JSONLProvider)(nil)
)
