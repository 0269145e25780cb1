package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound       = errors.New("not found")
	ErrNoSession      = errors.New("no active session")
	ErrUnitMismatch   = errors.New("units are not comparable")
	ErrNotImplemented = errors.New("not implemented")
)
