package metrics_test

import (
	"io"
	"strings"
	"testing"

	"github.com/jkroepke/memory-logger/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry, "blocking")

	m.Accepted()
	m.Accepted()
	m.Filtered()
	require.NoError(t, m.Dump(io.Discard, func(w io.Writer) error {
		_, err := w.Write(make([]byte, 42))

		return err
	}))
	require.ErrorIs(t, m.Dump(io.Discard, func(io.Writer) error {
		return io.ErrShortWrite
	}), io.ErrShortWrite)

	expected := `
# HELP memory_logger_records_total Count of log records handled, by result
# TYPE memory_logger_records_total counter
memory_logger_records_total{mode="blocking",result="accepted"} 2
memory_logger_records_total{mode="blocking",result="filtered"} 1
# HELP memory_logger_dump_bytes_total Count of bytes written by dump
# TYPE memory_logger_dump_bytes_total counter
memory_logger_dump_bytes_total{mode="blocking"} 42
`

	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected)))
}

func TestMetricsNil(t *testing.T) {
	t.Parallel()

	m := metrics.New(nil, "blocking")
	assert.Nil(t, m)

	assert.NotPanics(t, func() {
		m.Accepted()
		m.Filtered()
		require.NoError(t, m.Dump(io.Discard, func(io.Writer) error { return nil }))
	})
}

func TestMetricsRegisteredTwice(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	first := metrics.New(registry, "nonblocking")
	second := metrics.New(registry, "nonblocking")

	first.Accepted()
	second.Accepted()

	expected := `
# HELP memory_logger_records_total Count of log records handled, by result
# TYPE memory_logger_records_total counter
memory_logger_records_total{mode="nonblocking",result="accepted"} 2
memory_logger_records_total{mode="nonblocking",result="filtered"} 0
`

	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "memory_logger_records_total"))
}
