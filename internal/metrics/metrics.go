package metrics

import (
	"errors"
	"io"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "memory_logger"
)

// Metrics counts records passing through a memory logger.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	accepted    prometheus.Counter
	filtered    prometheus.Counter
	dumpedBytes prometheus.Counter
}

// New registers the memory logger metrics on registerer.
// It returns nil if registerer is nil. Metrics registered before by another
// memory logger of the same mode are shared.
func New(registerer prometheus.Registerer, mode string) *Metrics {
	if registerer == nil {
		return nil
	}

	registerer = prometheus.WrapRegistererWith(prometheus.Labels{"mode": mode}, registerer)

	records := register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "records",
		Name:      "total",
		Help:      "Count of log records handled, by result",
	}, []string{"result"}))

	return &Metrics{
		accepted: records.WithLabelValues("accepted"),
		filtered: records.WithLabelValues("filtered"),
		dumpedBytes: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "dump",
			Name:      "bytes_total",
			Help:      "Count of bytes written by dump",
		})),
	}
}

func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	err := registerer.Register(collector)
	if err == nil {
		return collector
	}

	var alreadyRegistered prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		if existing, ok := alreadyRegistered.ExistingCollector.(T); ok {
			return existing
		}
	}

	panic(err)
}

func (m *Metrics) Accepted() {
	if m != nil {
		m.accepted.Inc()
	}
}

func (m *Metrics) Filtered() {
	if m != nil {
		m.filtered.Inc()
	}
}

// Dump calls dump with a writer wrapping w and counts the bytes written through it.
func (m *Metrics) Dump(w io.Writer, dump func(w io.Writer) error) error {
	if m == nil {
		return dump(w)
	}

	counter := &countingWriter{w: w}
	err := dump(counter)

	if counter.n > 0 {
		m.dumpedBytes.Add(float64(counter.n))
	}

	return err
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n

	return n, err //nolint:wrapcheck
}
