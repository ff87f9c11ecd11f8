package filter

import (
	"log/slog"

	"github.com/puzpuzpuz/xsync/v3"
)

// Filter decides whether a record is retained, based on a minimum level and
// an optional target matcher.
type Filter struct {
	level  slog.Leveler
	target Matcher

	// decisions caches the result of target per target string.
	decisions *xsync.MapOf[string, bool]
}

// New returns a Filter retaining records at or above level. If target is nil,
// no target filtering is applied.
func New(level slog.Leveler, target Matcher) *Filter {
	if level == nil {
		level = slog.LevelInfo
	}

	filter := &Filter{
		level:  level,
		target: target,
	}

	if target != nil {
		filter.decisions = xsync.NewMapOf[string, bool]()
	}

	return filter
}

// Accepts reports whether a record with the given level and target is retained.
func (f *Filter) Accepts(level slog.Level, target string) bool {
	if !f.Target(target) {
		return false
	}

	return f.Level(level)
}

// Level reports whether level is at least as severe as the configured minimum.
func (f *Filter) Level(level slog.Level) bool {
	return level >= f.level.Level()
}

// Target reports whether target passes the configured matcher.
// Always true if no matcher is configured.
func (f *Filter) Target(target string) bool {
	if f.target == nil {
		return true
	}

	matched, _ := f.decisions.LoadOrCompute(target, func() bool {
		return f.target.MatchString(target)
	})

	return matched
}

// HasTarget reports whether target filtering is enabled.
func (f *Filter) HasTarget() bool {
	return f.target != nil
}

// MinLevel returns the configured minimum level.
func (f *Filter) MinLevel() slog.Level {
	return f.level.Level()
}
