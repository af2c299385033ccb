package sink

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/codeready-toolchain/logshield/pkg/logging"
)

// Multi fans every entry out to several sinks.
type Multi []logging.Sink

// Enabled reports whether any sink is enabled at level.
func (m Multi) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range m {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// BeginScope opens the scope on every sink; ending it ends all of them.
func (m Multi) BeginScope(state any) logging.Scope {
	scopes := make(multiScope, len(m))
	for i, s := range m {
		scopes[i] = s.BeginScope(state)
	}
	return scopes
}

// Emit hands e to every sink enabled at its level.
func (m Multi) Emit(ctx context.Context, e logging.Entry) {
	for _, s := range m {
		if s.Enabled(ctx, e.Level) {
			s.Emit(ctx, e)
		}
	}
}

type multiScope []logging.Scope

func (ms multiScope) End() {
	for i := len(ms) - 1; i >= 0; i-- {
		if ms[i] != nil {
			ms[i].End()
		}
	}
}

// MultiProvider creates Multi sinks over several providers.
type MultiProvider []logging.SinkProvider

// CreateSink implements logging.SinkProvider.
func (mp MultiProvider) CreateSink(category string) logging.Sink {
	if len(mp) == 1 {
		return mp[0].CreateSink(category)
	}
	sinks := make(Multi, len(mp))
	for i, p := range mp {
		sinks[i] = p.CreateSink(category)
	}
	return sinks
}

// Close closes every provider that holds resources and joins their errors.
func (mp MultiProvider) Close() error {
	var errs []error
	for _, p := range mp {
		if c, ok := p.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

var (
	_ logging.Sink         = Multi(nil)
	_ logging.SinkProvider = MultiProvider(nil)
)
