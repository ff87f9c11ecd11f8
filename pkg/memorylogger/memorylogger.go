// Package memorylogger provides the options shared by the two memory logger
// flavours:
//
//   - [github.com/jkroepke/memory-logger/pkg/memorylogger/blocking]: a single buffer shared
//     through a mutex. Logging and read operations may block.
//   - [github.com/jkroepke/memory-logger/pkg/memorylogger/nonblocking]: lines are managed
//     through an unbounded queue. Logging and read operations never block.
//
// Both install themselves as the process-wide [log/slog] default logger.
// Only one memory logger can be installed per process; the flavours must not be mixed.
package memorylogger

import (
	"github.com/jkroepke/memory-logger/internal/filter"
	"github.com/jkroepke/memory-logger/internal/format"
	"github.com/jkroepke/memory-logger/internal/handler"
	"github.com/jkroepke/memory-logger/internal/registry"
	"github.com/jkroepke/memory-logger/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

// LevelTrace is one step more verbose than [slog.LevelDebug].
const LevelTrace = format.LevelTrace

// TargetKey is the attribute key of the record target, e.g.
//
//	slog.Info("connected", memorylogger.TargetKey, "app::db")
//	logger := slog.With(memorylogger.TargetKey, "app::db")
const TargetKey = handler.TargetKey

var (
	// ErrAlreadyInstalled is returned by Setup if a memory logger was installed before.
	ErrAlreadyInstalled = registry.ErrAlreadyInstalled

	// ErrLockPoisoned is returned by the blocking flavour after a panic
	// occurred while the buffer was locked.
	ErrLockPoisoned = store.ErrLockPoisoned
)

// Matcher filters records by target. [*regexp.Regexp] implements it.
type Matcher = filter.Matcher

// MatcherFunc adapts a function to [Matcher].
type MatcherFunc = filter.MatcherFunc

// Options configures a memory logger.
type Options struct {
	// Target keeps only records whose target matches. If nil, no target filtering is applied.
	Target Matcher

	// Attrs appends record attributes as key=value pairs to each line.
	// Off by default, lines are rendered as "[<target>] <LEVEL> | <message>".
	Attrs bool

	// Registerer receives the memory logger metrics. If nil, no metrics are recorded.
	Registerer prometheus.Registerer

	// BufferSize preallocates the buffer of the blocking flavour in bytes.
	BufferSize int
}

// ParseTarget compiles a target pattern with one of the engines "regexp", "glob" or "cel".
// An empty pattern returns nil.
func ParseTarget(engine, pattern string) (Matcher, error) {
	return filter.Parse(engine, pattern) //nolint:wrapcheck
}
