// Package blocking implements a memory logger sharing a single buffer through a mutex.
// Logging and read operations may block.
package blocking

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jkroepke/memory-logger/internal/handler"
	"github.com/jkroepke/memory-logger/internal/metrics"
	"github.com/jkroepke/memory-logger/internal/registry"
	"github.com/jkroepke/memory-logger/internal/store"
	"github.com/jkroepke/memory-logger/pkg/memorylogger"
)

const mode = "blocking"

// BufferView is a reference to the buffered data.
// It locks the logger until Release is called, causing logging to block.
type BufferView = store.BufferView

// MemoryLogger is a blocking memory logger.
//
// There should be only a single instance of it in a program, see [Setup].
type MemoryLogger struct {
	buffer  *store.SharedBuffer
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

// Installed returns the installed blocking MemoryLogger.
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
		buffer:  store.NewSharedBuffer(opts.BufferSize),
		metrics: metrics.New(opts.Registerer, mode),
	}

	m.handler = handler.New(m.buffer, handler.Options{
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

// Read returns a reference to the buffered data.
// It locks the logger until [BufferView.Release] is called, causing logging to block.
func (m *MemoryLogger) Read() *BufferView {
	return m.buffer.Read()
}

// View calls fn with the buffered data. The logger is locked while fn runs.
func (m *MemoryLogger) View(fn func(contents string)) {
	m.buffer.View(fn)
}

// Dump writes the buffered data to w and clears the buffer.
// If w fails, the buffer is kept and the error is returned.
func (m *MemoryLogger) Dump(w io.Writer) error {
	return m.metrics.Dump(w, m.buffer.Dump) //nolint:wrapcheck
}

// Clear empties the buffer.
// It locks the logger, causing logging to block.
func (m *MemoryLogger) Clear() {
	m.buffer.Clear()
}

// Logger returns a [slog.Logger] writing into this MemoryLogger.
func (m *MemoryLogger) Logger() *slog.Logger {
	return m.logger
}

// Handler returns the [slog.Handler] of this MemoryLogger.
func (m *MemoryLogger) Handler() slog.Handler {
	return m.handler
}
