package handler

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/jkroepke/memory-logger/internal/filter"
	"github.com/jkroepke/memory-logger/internal/format"
	"github.com/jkroepke/memory-logger/internal/metrics"
)

// TargetKey is the attribute key carrying the record target.
const TargetKey = "target"

// Store accepts formatted lines.
type Store interface {
	Accept(line string)
}

// Handler implements [slog.Handler]. It filters records, formats them into
// lines and hands the lines to a [Store].
type Handler struct {
	filter    *filter.Filter
	formatter format.Formatter
	store     Store
	metrics   *metrics.Metrics

	// target is set by WithAttrs.
	target       string
	preformatted []byte
	groups       []string
}

// Options configures a [Handler].
type Options struct {
	// Level reports the minimum level to keep.
	// If nil, the Handler uses [slog.LevelInfo].
	Level slog.Leveler

	// Target filters records by their target. If nil, no target filtering is applied.
	Target filter.Matcher

	// Attrs appends record attributes to each line.
	Attrs bool

	Metrics *metrics.Metrics
}

// New returns a Handler writing accepted lines into store.
func New(store Store, opts Options) *Handler {
	return &Handler{
		filter:    filter.New(opts.Level, opts.Target),
		formatter: format.Formatter{Attrs: opts.Attrs},
		store:     store,
		metrics:   opts.Metrics,
	}
}

// Enabled reports whether records of level may be retained. If the handler
// has been scoped to a target, the target filter is applied as well.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	if h.target != "" && !h.filter.Target(h.target) {
		return false
	}

	return h.filter.Level(level)
}

// Handle filters and formats record and passes the line to the store.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	target := h.target

	var attrs []byte

	if h.formatter.Attrs {
		attrs = slices.Clone(h.preformatted)
	}

	prefix := h.groupPrefix()

	record.Attrs(func(attr slog.Attr) bool {
		if prefix == "" && attr.Key == TargetKey && attr.Value.Kind() == slog.KindString {
			target = attr.Value.String()
		} else if h.formatter.Attrs {
			attrs = format.AppendAttr(attrs, prefix, attr)
		}

		return true
	})

	target = format.Target(target, record.PC)

	if !h.filter.Accepts(record.Level, target) {
		h.metrics.Filtered()

		return nil
	}

	h.store.Accept(h.formatter.Format(target, record.Level, record.Message, attrs))
	h.metrics.Accepted()

	return nil
}

// WithAttrs returns a Handler scoped to attrs. A string attribute with the key
// [TargetKey] sets the target of all records logged through the returned handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	handler := h.clone()
	prefix := handler.groupPrefix()

	for _, attr := range attrs {
		if len(handler.groups) == 0 && attr.Key == TargetKey && attr.Value.Kind() == slog.KindString {
			handler.target = attr.Value.String()

			continue
		}

		// Pre-format the attributes.
		handler.preformatted = format.AppendAttr(handler.preformatted, prefix, attr)
	}

	return handler
}

// WithGroup returns a Handler that qualifies the keys of subsequent attributes with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	handler := h.clone()
	handler.groups = append(handler.groups, name)

	return handler
}

func (h *Handler) clone() *Handler {
	handler := *h
	handler.preformatted = slices.Clip(h.preformatted)
	handler.groups = slices.Clip(h.groups)

	return &handler
}

func (h *Handler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}

	return strings.Join(h.groups, ".") + "."
}
