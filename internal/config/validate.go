package config

import (
	"fmt"
	"slices"

	"github.com/jkroepke/memory-logger/internal/config/types"
	"github.com/jkroepke/memory-logger/internal/filter"
)

// Validate validates the config.
func Validate(conf Config) error {
	if err := validateLogConfig(conf); err != nil {
		return err
	}

	return validateLoggerConfig(conf)
}

func validateLogConfig(conf Config) error {
	if conf.Log.Format == "" {
		return fmt.Errorf("log.format is %w", ErrRequired)
	}

	if !slices.Contains([]string{"json", "console"}, conf.Log.Format) {
		return fmt.Errorf("%w: %s", ErrUnknownLogFormat, conf.Log.Format)
	}

	return nil
}

func validateLoggerConfig(conf Config) error {
	if conf.Logger.BufferSize > 0 && conf.Logger.Mode != types.ModeBlocking {
		return ErrBufferSizeNonBlocking
	}

	if _, err := filter.Parse(conf.Logger.Target.Engine, conf.Logger.Target.Pattern); err != nil {
		return fmt.Errorf("logger.target.pattern: %w", err)
	}

	return nil
}
