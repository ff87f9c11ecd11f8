package config

import (
	"log/slog"

	"github.com/jkroepke/memory-logger/internal/config/types"
	"github.com/jkroepke/memory-logger/internal/filter"
)

//nolint:gochecknoglobals
var Defaults = Config{
	Log: Log{
		Format: "console",
		Level:  slog.LevelInfo,
	},
	Logger: Logger{
		Mode:  types.ModeBlocking,
		Level: slog.LevelInfo,
		Target: LoggerTarget{
			Engine:  filter.EngineRegexp,
			Pattern: "",
		},
		Attrs:      false,
		BufferSize: 0,
		Metrics:    false,
	},
	Dump: Dump{
		Compression: types.CompressionNone,
	},
}
