package cmd

import (
	"context"
	"log/slog"

	"github.com/jkroepke/memory-logger/pkg/memorylogger"
)

const demoTarget = "memory_logger::demo"

//nolint:gochecknoglobals
var samples = []struct {
	target  string
	level   slog.Level
	message string
}{
	{demoTarget, slog.LevelInfo, "This is a info."},
	{demoTarget, slog.LevelWarn, "This is a warning."},
	{demoTarget + "::db", slog.LevelError, "This is an error."},
	{demoTarget + "::db", slog.LevelDebug, "This is a debug message."},
	{"other", memorylogger.LevelTrace, "This is a trace message."},
}

// emitSamples logs a record per sample, followed by a summary record without explicit target.
func emitSamples(ctx context.Context, logger *slog.Logger) {
	for _, sample := range samples {
		logger.LogAttrs(ctx, sample.level, sample.message, slog.String(memorylogger.TargetKey, sample.target))
	}

	logger.With(memorylogger.TargetKey, demoTarget).WithGroup("demo").
		LogAttrs(ctx, slog.LevelInfo, "This is a record with attributes.", slog.Int("samples", len(samples)))

	logger.LogAttrs(ctx, slog.LevelInfo, "samples emitted")
}
