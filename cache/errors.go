package cache

import (
	"errors"
	"fmt"
)

// ==================== Sentinel Errors ====================

var (
	// ErrUnknownBackend is returned by New for an unregistered cache method
	ErrUnknownBackend = errors.New("unknown cache method")

	// ErrNoCacheDB is returned when the bolt backend is requested without
	// an open cache database
	ErrNoCacheDB = errors.New("cache database not available")

	// ErrBadEntry marks a cache file whose name is not <name>-<version>
	ErrBadEntry = errors.New("malformed cache entry name")

	// ErrSelfImport is returned when importing the bolt backend into the
	// database it reads from
	ErrSelfImport = errors.New("cannot import the bolt cache into itself")
)

// ==================== Structured Error Types ====================

// BackendError reports a failure of one backend while reading a category.
type BackendError struct {
	// Backend is the backend name (e.g., "metadata-md5")
	Backend string

	// Category is empty when the category list itself could not be read
	Category string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *BackendError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("cache %s: %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("cache %s [%s]: %v", e.Backend, e.Category, e.Err)
}

// Unwrap allows errors.Is() and errors.As() to work with wrapped errors
func (e *BackendError) Unwrap() error {
	return e.Err
}

// IsBackendError checks if the error is (or wraps) a backend failure.
func IsBackendError(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}
