package format

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"
)

// LevelTrace is the level below [slog.LevelDebug].
const LevelTrace = slog.Level(-8)

// UnknownTarget is used when neither a target nor a module path is available.
const UnknownTarget = "?"

// Formatter renders accepted records into single text lines:
//
//	[<target>] <LEVEL> | <message>
//
// The level is padded to five characters.
type Formatter struct {
	// Attrs appends record attributes as key=value pairs after the message.
	Attrs bool
}

// Format renders one line. attrs holds attributes rendered by [AppendAttr]
// and is only appended if f.Attrs is set.
func (f Formatter) Format(target string, level slog.Level, message string, attrs []byte) string {
	buf := make([]byte, 0, len(target)+len(message)+len(attrs)+16)
	buf = fmt.Appendf(buf, "[%s] %-5s | %s", target, LevelName(level), message)

	if f.Attrs {
		buf = append(buf, attrs...)
	}

	return string(buf)
}

// LevelName returns the upper case name of level.
func LevelName(level slog.Level) string {
	switch level {
	case slog.LevelError:
		return "ERROR"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelDebug:
		return "DEBUG"
	case LevelTrace:
		return "TRACE"
	default:
		return level.String()
	}
}

// Target resolves the effective target of a record: target if not empty,
// else the package path of the function at pc, else [UnknownTarget].
func Target(target string, pc uintptr) string {
	if target != "" {
		return target
	}

	if modulePath := ModulePath(pc); modulePath != "" {
		return modulePath
	}

	return UnknownTarget
}

// ModulePath returns the package path of the function at pc.
// It returns an empty string if pc is zero or unknown.
func ModulePath(pc uintptr) string {
	if pc == 0 {
		return ""
	}

	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()

	return packagePath(frame.Function)
}

// packagePath strips the function and receiver part of a fully qualified function name,
// e.g. "github.com/a/b.(*T).M" becomes "github.com/a/b".
func packagePath(function string) string {
	if function == "" {
		return ""
	}

	lastSlash := strings.LastIndexByte(function, '/')
	if lastSlash < 0 {
		lastSlash = 0
	}

	if dot := strings.IndexByte(function[lastSlash:], '.'); dot >= 0 {
		return function[:lastSlash+dot]
	}

	return function
}

// AppendAttr renders attr as " key=value" onto buf. prefix is prepended to the key
// and is used for groups opened by [slog.Handler.WithGroup].
//
//nolint:cyclop
func AppendAttr(buf []byte, prefix string, attr slog.Attr) []byte {
	// Resolve the Attr's value before doing anything else.
	attr.Value = attr.Value.Resolve()
	// Ignore empty Attrs.
	if attr.Equal(slog.Attr{}) {
		return buf
	}

	key := prefix + attr.Key

	switch attr.Value.Kind() {
	case slog.KindString:
		// Quote string values, to make them easy to parse.
		buf = fmt.Appendf(buf, " %s=%q", key, attr.Value.String())
	case slog.KindTime:
		// write times in a standard way, without the monotonic time.
		buf = fmt.Appendf(buf, " %s=%s", key, attr.Value.Time().Format(time.RFC3339Nano))
	case slog.KindGroup:
		attrs := attr.Value.Group()
		// Ignore empty groups.
		if len(attrs) == 0 {
			return buf
		}
		// If the key is non-empty, write it out and nest the rest of the attrs.
		// Otherwise, inline the attrs.
		if attr.Key != "" {
			buf = fmt.Appendf(buf, " %s={", key)
		}

		for _, ga := range attrs {
			buf = AppendAttr(buf, "", ga)
		}

		if attr.Key != "" {
			buf = append(buf, " }"...)
		}
	case slog.KindDuration:
		buf = fmt.Appendf(buf, " %s=%s", key, attr.Value.Duration().String())
	case slog.KindInt64:
		buf = fmt.Appendf(buf, " %s=%d", key, attr.Value.Int64())
	case slog.KindUint64:
		buf = fmt.Appendf(buf, " %s=%d", key, attr.Value.Uint64())
	case slog.KindFloat64:
		buf = fmt.Appendf(buf, " %s=%g", key, attr.Value.Float64())
	case slog.KindBool:
		buf = fmt.Appendf(buf, " %s=%t", key, attr.Value.Bool())
	case slog.KindAny, slog.KindLogValuer:
		buf = fmt.Appendf(buf, " %s=%v", key, attr.Value.Any())
	default:
		buf = fmt.Appendf(buf, " %s=%s", key, attr.Value)
	}

	return buf
}
