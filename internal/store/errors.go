package store

import "errors"

// ErrLockPoisoned is returned (or raised) once a panic occurred while the
// buffer lock was held. The buffer contents can not be trusted anymore.
var ErrLockPoisoned = errors.New("memory logger: inner lock poisoned")
