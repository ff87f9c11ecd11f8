package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jkroepke/memory-logger/internal/config/types"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/zitadel/logging"
)

// dump writes the lines of memoryLogger to w and returns the number of bytes written to w.
func dump(memoryLogger sink, w io.Writer, compression types.Compression) (uint64, error) {
	counter := &countingWriter{w: w}

	encoder, err := newEncoder(counter, compression)
	if err != nil {
		return 0, fmt.Errorf("error creating %s encoder: %w", compression, err)
	}

	if err = memoryLogger.Dump(encoder); err != nil {
		_ = encoder.Close()

		return counter.n, fmt.Errorf("error dumping lines: %w", err)
	}

	if err = encoder.Close(); err != nil {
		return counter.n, fmt.Errorf("error flushing %s encoder: %w", compression, err)
	}

	return counter.n, nil
}

func newEncoder(w io.Writer, compression types.Compression) (io.WriteCloser, error) {
	switch compression {
	case types.CompressionGzip:
		return gzip.NewWriterLevel(w, gzip.BestCompression) //nolint:wrapcheck
	case types.CompressionZstd:
		return zstd.NewWriter(w) //nolint:wrapcheck
	case types.CompressionNone:
		return nopCloser{w}, nil
	default:
		return nil, fmt.Errorf("unknown compression: %d", compression)
	}
}

// logMetrics logs every gathered counter with the logger of ctx.
func logMetrics(ctx context.Context, gatherer prometheus.Gatherer) error {
	logger, ok := logging.FromContext(ctx)
	if !ok {
		logger = slog.New(slog.DiscardHandler)
	}

	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("error gathering metrics: %w", err)
	}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			attrs := make([]slog.Attr, 0, len(metric.GetLabel())+1)
			for _, label := range metric.GetLabel() {
				attrs = append(attrs, slog.String(label.GetName(), label.GetValue()))
			}

			attrs = append(attrs, slog.Float64("value", metric.GetCounter().GetValue()))

			logger.LogAttrs(ctx, slog.LevelInfo, family.GetName(), attrs...)
		}
	}

	return nil
}

type countingWriter struct {
	w io.Writer
	n uint64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += uint64(n) //nolint:gosec

	return n, err //nolint:wrapcheck
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
