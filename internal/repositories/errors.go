package repositories

import "errors"

// Storage error taxonomy. Callers match with errors.Is; repository methods
// wrap these with the failing collection and operation named.
var (
	// ErrStorageUnavailable means the database cannot be opened at all.
	// Fatal for the application, there is no fallback store.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrStorageBlocked means another open connection holds the database
	// and a schema rebuild cannot proceed. The user has to close the other
	// session.
	ErrStorageBlocked = errors.New("storage blocked by another connection")

	// ErrDuplicateKey is returned by Insert when the ID already exists.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound is returned when a record with the given ID does not exist.
	ErrNotFound = errors.New("record not found")
)
