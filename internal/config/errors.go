package config

import "errors"

var (
	ErrRequired              = errors.New("required")
	ErrUnknownLogFormat      = errors.New("unknown log format")
	ErrBufferSizeNonBlocking = errors.New("logger.buffer-size is only supported by the blocking mode")
)
