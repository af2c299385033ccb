package logging

import (
	"io"
	"sync"

	"github.com/codeready-toolchain/logshield/pkg/masking"
)

// Provider is a SinkProvider that wraps every sink of an inner provider in a
// masking Logger. Loggers are cached per category: under concurrent first
// use of a category exactly one Logger (and one inner sink) is created.
type Provider struct {
	inner    SinkProvider
	redactor masking.Redactor

	mu      sync.RWMutex
	loggers map[string]*Logger
}

// NewProvider wraps inner. A nil redactor selects the builtin masking service.
func NewProvider(inner SinkProvider, redactor masking.Redactor) *Provider {
	if redactor == nil {
		redactor = masking.NewService(nil)
	}
	return &Provider{
		inner:    inner,
		redactor: redactor,
		loggers:  make(map[string]*Logger),
	}
}

// Logger returns the cached masking logger for category, creating it on
// first use.
func (p *Provider) Logger(category string) *Logger {
	p.mu.RLock()
	l, ok := p.loggers[category]
	p.mu.RUnlock()
	if ok {
		return l
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.loggers[category]; ok {
		return l
	}
	l = NewLogger(category, p.inner.CreateSink(category), p.redactor)
	p.loggers[category] = l
	return l
}

// CreateSink implements SinkProvider, so providers chain.
func (p *Provider) CreateSink(category string) Sink {
	return p.Logger(category)
}

// Len returns the number of cached loggers.
func (p *Provider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.loggers)
}

// Close drops every cached logger and closes the inner provider if it
// holds resources. Loggers handed out earlier keep working until the inner
// provider is closed.
func (p *Provider) Close() error {
	p.mu.Lock()
	clear(p.loggers)
	p.mu.Unlock()

	if c, ok := p.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var _ SinkProvider = (*Provider)(nil)
