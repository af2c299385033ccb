package sink

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/logshield/pkg/logging"
)

func TestMulti_FansOutByLevel(t *testing.T) {
	debug := &recordingSink{minLevel: slog.LevelDebug}
	warn := &recordingSink{minLevel: slog.LevelWarn}
	m := Multi{debug, warn}
	ctx := context.Background()

	assert.True(t, m.Enabled(ctx, slog.LevelDebug))
	assert.False(t, Multi{warn}.Enabled(ctx, slog.LevelInfo))
	assert.False(t, Multi{}.Enabled(ctx, slog.LevelError))

	m.Emit(ctx, logging.Entry{Level: slog.LevelInfo, Message: "info"})
	m.Emit(ctx, logging.Entry{Level: slog.LevelError, Message: "error"})

	require.Len(t, debug.Entries(), 2)
	require.Len(t, warn.Entries(), 1)
	assert.Equal(t, "error", warn.Entries()[0].Message)
}

func TestMulti_ScopeEndsEverySink(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}

	scope := Multi{a, b}.BeginScope("tx 9")
	assert.Equal(t, []any{"tx 9"}, a.scopes)
	assert.Equal(t, []any{"tx 9"}, b.scopes)

	scope.End()
	assert.Equal(t, 1, a.ended)
	assert.Equal(t, 1, b.ended)
}

func TestMultiProvider_CreateSink(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}

	single := MultiProvider{&staticProvider{sink: a}}.CreateSink("x")
	assert.Same(t, a, single)

	both := MultiProvider{&staticProvider{sink: a}, &staticProvider{sink: b}}.CreateSink("x")
	require.IsType(t, Multi{}, both)
	assert.Len(t, both.(Multi), 2)
}

func TestMultiProvider_CloseJoinsErrors(t *testing.T) {
	ok := &staticProvider{}
	failing := &staticProvider{err: errors.New("flush failed")}
	plain := NewSlogProvider(slog.Default().Handler())

	err := MultiProvider{ok, failing, plain}.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flush failed")
	assert.True(t, ok.closed)
	assert.True(t, failing.closed)

	assert.NoError(t, MultiProvider{ok}.Close())
}

func TestMulti_MaskedOnceForAllSinks(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	provider := logging.NewProvider(MultiProvider{&staticProvider{sink: a}, &staticProvider{sink: b}}, nil)

	provider.Logger("fanout").Warn(context.Background(), "CF %s", "RSSMRA85M01H501U")

	for _, s := range []*recordingSink{a, b} {
		require.Len(t, s.Entries(), 1)
		assert.Equal(t, "CF RSS*********501U", s.Entries()[0].Message)
	}
}
