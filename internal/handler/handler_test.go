package handler_test

import (
	"context"
	"log/slog"
	"regexp"
	"sync"
	"testing"

	"github.com/jkroepke/memory-logger/internal/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lines struct {
	mu    sync.Mutex
	lines []string
}

func (l *lines) Accept(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lines = append(l.lines, line)
}

func (l *lines) get() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string{}, l.lines...)
}

func TestHandler(t *testing.T) {
	t.Parallel()

	store := &lines{}
	logger := slog.New(handler.New(store, handler.Options{Level: slog.LevelInfo}))

	logger.Info("msg1", handler.TargetKey, "mod")
	logger.Warn("msg2", handler.TargetKey, "mod")
	logger.Debug("filtered", handler.TargetKey, "mod")

	assert.Equal(t, []string{
		"[mod] INFO  | msg1",
		"[mod] WARN  | msg2",
	}, store.get())
}

func TestHandlerModulePathFallback(t *testing.T) {
	t.Parallel()

	store := &lines{}
	logger := slog.New(handler.New(store, handler.Options{}))

	logger.Info("no target")

	assert.Equal(t, []string{
		"[github.com/jkroepke/memory-logger/internal/handler_test] INFO  | no target",
	}, store.get())
}

func TestHandlerUnknownTarget(t *testing.T) {
	t.Parallel()

	store := &lines{}
	h := handler.New(store, handler.Options{})

	require.NoError(t, h.Handle(context.Background(), slog.NewRecord(testTime, slog.LevelError, "pc-less", 0)))

	assert.Equal(t, []string{"[?] ERROR | pc-less"}, store.get())
}

func TestHandlerTargetPattern(t *testing.T) {
	t.Parallel()

	store := &lines{}
	logger := slog.New(handler.New(store, handler.Options{
		Level:  slog.LevelInfo,
		Target: regexp.MustCompile("^app::"),
	}))

	logger.Info("kept", handler.TargetKey, "app::db")
	logger.Info("dropped", handler.TargetKey, "other")
	logger.With(handler.TargetKey, "app::http").Warn("scoped")

	other := logger.With(handler.TargetKey, "other")
	assert.False(t, other.Enabled(context.Background(), slog.LevelError))
	other.Error("dropped as well")

	// a scoped target rejected by Enabled can not be overridden per record
	other.Info("override", handler.TargetKey, "app::override")

	// the record target wins over an accepted scoped one
	logger.With(handler.TargetKey, "app::http").Info("override", handler.TargetKey, "app::override")

	assert.Equal(t, []string{
		"[app::db] INFO  | kept",
		"[app::http] WARN  | scoped",
		"[app::override] INFO  | override",
	}, store.get())
}

func TestHandlerEnabled(t *testing.T) {
	t.Parallel()

	h := handler.New(&lines{}, handler.Options{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestHandlerAttrs(t *testing.T) {
	t.Parallel()

	store := &lines{}
	logger := slog.New(handler.New(store, handler.Options{Attrs: true}))

	logger.With("component", "db", handler.TargetKey, "app").
		WithGroup("req").
		With("id", 7).
		Info("query", "rows", 3, handler.TargetKey, "grouped")

	logger.Info("plain", handler.TargetKey, "app", "n", 1)

	assert.Equal(t, []string{
		`[app] INFO  | query component="db" req.id=7 req.rows=3 req.target="grouped"`,
		`[app] INFO  | plain n=1`,
	}, store.get())
}

func TestHandlerWithoutAttrsIsExact(t *testing.T) {
	t.Parallel()

	store := &lines{}
	logger := slog.New(handler.New(store, handler.Options{}))

	logger.With("component", "db", handler.TargetKey, "mod").WithGroup("g").Info("msg", "n", 1)

	assert.Equal(t, []string{"[mod] INFO  | msg"}, store.get())
}
