package config

import (
	"log/slog"

	"github.com/jkroepke/memory-logger/internal/config/types"
)

type Config struct {
	ConfigFile string `json:"config" yaml:"config"`
	Log        Log    `json:"log"    yaml:"log"`
	Logger     Logger `json:"logger" yaml:"logger"`
	Dump       Dump   `json:"dump"   yaml:"dump"`
}

// Log configures the diagnostics of the command itself.
type Log struct {
	Format string     `json:"format" yaml:"format"`
	Level  slog.Level `json:"level"  yaml:"level"`
}

// Logger configures the installed memory logger.
type Logger struct {
	Mode       types.Mode   `json:"mode"        yaml:"mode"`
	Level      slog.Level   `json:"level"       yaml:"level"`
	Target     LoggerTarget `json:"target"      yaml:"target"`
	Attrs      bool         `json:"attrs"       yaml:"attrs"`
	BufferSize uint         `json:"buffer-size" yaml:"buffer-size"`
	Metrics    bool         `json:"metrics"     yaml:"metrics"`
}

type LoggerTarget struct {
	Engine  string `json:"engine"  yaml:"engine"`
	Pattern string `json:"pattern" yaml:"pattern"`
}

type Dump struct {
	Compression types.Compression `json:"compression" yaml:"compression"`
}
