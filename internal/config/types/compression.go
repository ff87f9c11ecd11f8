package types

import (
	"fmt"
	"strings"
)

// Compression selects how dumped lines are encoded.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

// String returns the string representation of the compression.
//
//goland:noinspection GoMixedReceiverTypes
func (c Compression) String() string {
	text, err := c.MarshalText()
	if err != nil {
		panic(err)
	}

	return string(text)
}

// MarshalText implements the [encoding.TextMarshaler] interface.
//
//goland:noinspection GoMixedReceiverTypes
func (c Compression) MarshalText() ([]byte, error) {
	switch c {
	case CompressionNone:
		return []byte("none"), nil
	case CompressionGzip:
		return []byte("gzip"), nil
	case CompressionZstd:
		return []byte("zstd"), nil
	default:
		return nil, fmt.Errorf("unknown identifier %d", c)
	}
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
//
//goland:noinspection GoMixedReceiverTypes
func (c *Compression) UnmarshalText(text []byte) error {
	config := strings.ToLower(string(text))
	switch config {
	case "none", "":
		*c = CompressionNone
	case "gzip":
		*c = CompressionGzip
	case "zstd":
		*c = CompressionZstd
	default:
		return fmt.Errorf("invalid value %s", config)
	}

	return nil
}
