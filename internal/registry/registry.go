package registry

import (
	"errors"
	"log/slog"
	"sync"
)

// ErrAlreadyInstalled is returned when a global logger has been installed before.
var ErrAlreadyInstalled = errors.New("attempted to set a logger after the logging system was already initialized")

// Global is the process-wide slot. Installing into it replaces the default [slog.Logger].
//
//nolint:gochecknoglobals
var Global = New(slog.SetDefault)

// Slot is a write-once cell holding the installed logger for the remaining
// lifetime of the process. There is no way to uninstall.
type Slot struct {
	mu         sync.Mutex
	owner      any
	handler    slog.Handler
	setDefault func(logger *slog.Logger)
}

// New returns an empty Slot. setDefault is called once with the installed
// logger; it may be nil.
func New(setDefault func(logger *slog.Logger)) *Slot {
	return &Slot{setDefault: setDefault}
}

// Install stores owner and makes handler the default log handler.
// Every call after the first successful one returns [ErrAlreadyInstalled]
// and leaves the first installation untouched.
func (s *Slot) Install(owner any, handler slog.Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handler != nil {
		return ErrAlreadyInstalled
	}

	s.owner = owner
	s.handler = handler

	if s.setDefault != nil {
		s.setDefault(slog.New(handler))
	}

	return nil
}

// Owner returns the owner passed to the successful [Slot.Install], if any.
func (s *Slot) Owner() (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.owner, s.handler != nil
}

// Handler returns the installed handler, or nil.
func (s *Slot) Handler() slog.Handler {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.handler
}
