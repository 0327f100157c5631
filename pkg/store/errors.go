package store

import "errors"

// Sentinel errors. Callers match with errors.Is; every failure path
// wraps one of these (or an os/json error) with context.
var (
	// ErrInvalidFormat means markdown content had no valid date header.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrNotFound means a required file is missing. Load-or-create
	// paths treat absence as empty state and never return this.
	ErrNotFound = errors.New("not found")

	// ErrSerialization means a sidecar could not be decoded.
	ErrSerialization = errors.New("serialization failure")
)
