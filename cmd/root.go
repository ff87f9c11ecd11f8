package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"runtime/debug"

	"github.com/dustin/go-humanize"
	"github.com/jkroepke/memory-logger/internal/config"
	"github.com/jkroepke/memory-logger/internal/config/types"
	"github.com/jkroepke/memory-logger/pkg/memorylogger"
	"github.com/jkroepke/memory-logger/pkg/memorylogger/blocking"
	"github.com/jkroepke/memory-logger/pkg/memorylogger/nonblocking"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/zitadel/logging"
)

// sink is the part of a memory logger the command drives.
type sink interface {
	Logger() *slog.Logger
	Dump(w io.Writer) error
}

type installFunc func(mode types.Mode, level slog.Leveler, opts *memorylogger.Options) (sink, error)

// Execute runs memory-logger. It installs the configured memory logger as default logger,
// logs sample records across targets and levels, and dumps the captured lines to stdout.
// Diagnostics are written to stderr.
func Execute(args []string, stdout, stderr io.Writer, version, commit, date string) int {
	return execute(args, stdout, stderr, version, commit, date, install)
}

//nolint:cyclop
func execute(args []string, stdout, stderr io.Writer, version, commit, date string, install installFunc) int {
	conf, err := configure(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		if errors.Is(err, config.ErrVersion) {
			printVersion(stdout, version, commit, date)

			return 0
		}

		_, _ = fmt.Fprintln(stderr, err.Error())

		return 1
	}

	logger, err := configureLogger(conf, stderr)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, fmt.Errorf("error configure logging: %w", err).Error())

		return 1
	}

	ctx := logging.ToContext(context.Background(), logger)

	logger.LogAttrs(ctx, slog.LevelDebug, "config", slog.String("config", conf.String()))

	target, err := memorylogger.ParseTarget(conf.Logger.Target.Engine, conf.Logger.Target.Pattern)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, fmt.Errorf("error parsing logger target: %w", err).Error())

		return 1
	}

	registry := prometheus.NewRegistry()
	opts := &memorylogger.Options{
		Target:     target,
		Attrs:      conf.Logger.Attrs,
		BufferSize: int(conf.Logger.BufferSize), //nolint:gosec
	}

	if conf.Logger.Metrics {
		opts.Registerer = registry
	}

	memoryLogger, err := install(conf.Logger.Mode, conf.Logger.Level, opts)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, err.Error())

		return 1
	}

	logger.LogAttrs(ctx, slog.LevelDebug, "memory logger installed",
		slog.Any("mode", logging.StringerValuer(conf.Logger.Mode)),
		slog.Any("level", conf.Logger.Level),
	)

	emitSamples(ctx, memoryLogger.Logger())

	written, err := dump(memoryLogger, stdout, conf.Dump.Compression)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, err.Error())

		return 1
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "dumped "+humanize.Bytes(written),
		slog.Uint64("bytes", written),
		slog.Any("compression", logging.StringerValuer(conf.Dump.Compression)),
	)

	if conf.Logger.Metrics {
		if err = logMetrics(ctx, registry); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, err.Error())

			return 1
		}
	}

	return 0
}

// install installs a memory logger as default logger. If a memory logger of the same
// mode was installed before, the existing one is returned.
func install(mode types.Mode, level slog.Leveler, opts *memorylogger.Options) (sink, error) {
	switch mode {
	case types.ModeBlocking:
		memoryLogger, err := blocking.Setup(level, opts)
		if err == nil {
			return memoryLogger, nil
		}

		if installed, ok := blocking.Installed(); ok && errors.Is(err, memorylogger.ErrAlreadyInstalled) {
			return installed, nil
		}

		return nil, fmt.Errorf("error installing memory logger: %w", err)
	case types.ModeNonBlocking:
		memoryLogger, err := nonblocking.Setup(level, opts)
		if err == nil {
			return memoryLogger, nil
		}

		if installed, ok := nonblocking.Installed(); ok && errors.Is(err, memorylogger.ErrAlreadyInstalled) {
			return installed, nil
		}

		return nil, fmt.Errorf("error installing memory logger: %w", err)
	default:
		return nil, fmt.Errorf("unknown memory logger mode: %d", mode)
	}
}

// configure parses the command line arguments and loads the configuration.
func configure(args []string, logWriter io.Writer) (config.Config, error) {
	conf, err := config.New(args, logWriter)
	if err != nil {
		return config.Config{}, fmt.Errorf("configuration parse error: %w", err)
	}

	if err = config.Validate(conf); err != nil {
		return config.Config{}, fmt.Errorf("configuration validation error: %w", err)
	}

	return conf, nil
}

func configureLogger(conf config.Config, writer io.Writer) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{
		AddSource: false,
		Level:     conf.Log.Level,
	}

	switch conf.Log.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(writer, opts)), nil
	case "console":
		return slog.New(slog.NewTextHandler(writer, opts)), nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownLogFormat, conf.Log.Format)
	}
}

func printVersion(writer io.Writer, version, commit, date string) {
	//goland:noinspection GoBoolExpressions
	if version == "dev" {
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			_, _ = fmt.Fprintf(writer, "version: %s\ngo: %s\n", buildInfo.Main.Version, buildInfo.GoVersion)

			return
		}
	}

	_, _ = fmt.Fprintf(writer, "version: %s\ncommit: %s\ndate: %s\ngo: %s\n", version, commit, date, runtime.Version())
}
