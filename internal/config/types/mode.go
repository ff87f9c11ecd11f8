package types

import (
	"fmt"
	"strings"
)

// Mode selects the memory logger flavour.
type Mode int

const (
	ModeBlocking Mode = iota
	ModeNonBlocking
)

// String returns the string representation of the mode.
//
//goland:noinspection GoMixedReceiverTypes
func (m Mode) String() string {
	text, err := m.MarshalText()
	if err != nil {
		panic(err)
	}

	return string(text)
}

// MarshalText implements the [encoding.TextMarshaler] interface.
//
//goland:noinspection GoMixedReceiverTypes
func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case ModeBlocking:
		return []byte("blocking"), nil
	case ModeNonBlocking:
		return []byte("nonblocking"), nil
	default:
		return nil, fmt.Errorf("unknown identifier %d", m)
	}
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
//
//goland:noinspection GoMixedReceiverTypes
func (m *Mode) UnmarshalText(text []byte) error {
	config := strings.ToLower(string(text))
	switch config {
	case "blocking":
		*m = ModeBlocking
	case "nonblocking", "non-blocking":
		*m = ModeNonBlocking
	default:
		return fmt.Errorf("invalid value %s", config)
	}

	return nil
}
