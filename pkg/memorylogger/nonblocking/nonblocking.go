// Package nonblocking implements a memory logger backed by an unbounded queue.
// Logging and read operations never block.
package nonblocking

import (
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/jkroepke/memory-logger/internal/handler"
	"github.com/jkroepke/memory-logger/internal/metrics"
	"github.com/jkroepke/memory-logger/internal/registry"
	"github.com/jkroepke/memory-logger/internal/store"
	"github.com/jkroepke/memory-logger/pkg/memorylogger"
)

const mode = "nonblocking"

// MemoryLogger is a non-blocking memory logger.
//
// There should be only a single instance of it in a program, see [Setup].
// Any number of goroutines may log concurrently; reading is meant for a single consumer.
type MemoryLogger struct {
	queue   *store.ConcurrentQueue
	handler *handler.Handler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Setup creates a MemoryLogger keeping records at or above level and installs
// it as the default [slog.Logger]. opts may be nil.
//
// Setup should be called only once. Further calls return [memorylogger.ErrAlreadyInstalled];
// use [Installed] to get the first instance.
func Setup(level slog.Leveler, opts *memorylogger.Options) (*MemoryLogger, error) {
	return setup(registry.Global, level, opts)
}

// Installed returns the installed non-blocking MemoryLogger.
func Installed() (*MemoryLogger, bool) {
	owner, _ := registry.Global.Owner()
	logger, ok := owner.(*MemoryLogger)

	return logger, ok
}

// New creates a MemoryLogger keeping records at or above level without installing it.
// Write into it through [MemoryLogger.Logger] or [MemoryLogger.Handler]. opts may be nil.
func New(level slog.Leveler, opts *memorylogger.Options) *MemoryLogger {
	if opts == nil {
		opts = &memorylogger.Options{}
	}

	m := &MemoryLogger{
		queue:   store.NewConcurrentQueue(),
		metrics: metrics.New(opts.Registerer, mode),
	}

	m.handler = handler.New(m.queue, handler.Options{
		Level:   level,
		Target:  opts.Target,
		Attrs:   opts.Attrs,
		Metrics: m.metrics,
	})
	m.logger = slog.New(m.handler)

	return m
}

func setup(slot *registry.Slot, level slog.Leveler, opts *memorylogger.Options) (*MemoryLogger, error) {
	m := New(level, opts)

	if err := slot.Install(m, m.handler); err != nil {
		return nil, fmt.Errorf("%s memory logger: %w", mode, err)
	}

	return m, nil
}

// Read returns a sequence over the buffered lines.
//
// The sequence consumes the lines. To iterate twice, collect it first, e.g. with [slices.Collect].
func (m *MemoryLogger) Read() iter.Seq[string] {
	return m.queue.Drain()
}

// Dump writes the buffered lines to w, each followed by a line break, consuming them.
func (m *MemoryLogger) Dump(w io.Writer) error {
	return m.metrics.Dump(w, m.queue.Dump) //nolint:wrapcheck
}

// Len returns the number of buffered lines.
func (m *MemoryLogger) Len() int {
	return m.queue.Len()
}

// Logger returns a [slog.Logger] writing into this MemoryLogger.
func (m *MemoryLogger) Logger() *slog.Logger {
	return m.logger
}

// Handler returns the [slog.Handler] of this MemoryLogger.
func (m *MemoryLogger) Handler() slog.Handler {
	return m.handler
}
