package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidSnapshot is returned when a snapshot violates the conversation invariants.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// ErrFieldAlreadySet is returned when a committed field would be overwritten.
var ErrFieldAlreadySet = errors.New("field already set")

// ErrUnknownField is returned for field names or indices outside the field table.
var ErrUnknownField = errors.New("unknown field")
