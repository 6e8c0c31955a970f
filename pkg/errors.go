package pkg

import (
	"errors"
	"fmt"
)

// Sentinel errors - simple error constants that can be checked with errors.Is()
var (
	// ErrInvalidVersion is returned when a record's version cannot be parsed
	// under the active parse policy.
	ErrInvalidVersion = errors.New("invalid package version")

	// ErrInvalidRecord is returned when a record lacks its category or name.
	ErrInvalidRecord = errors.New("invalid metadata record")

	// ErrOverlayRange is returned when a version references an overlay
	// index that the tree does not know about.
	ErrOverlayRange = errors.New("overlay index out of range")
)

// RecordError wraps record conversion errors with the identity of the
// offending package version.
type RecordError struct {
	// Category and Name identify the package (e.g., "app-editors", "vim")
	Category string
	Name     string

	// Version is the raw version string from the record
	Version string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *RecordError) Error() string {
	return fmt.Sprintf("record %s/%s-%s: %v", e.Category, e.Name, e.Version, e.Err)
}

// Unwrap allows errors.Is() and errors.As() to work with wrapped errors
func (e *RecordError) Unwrap() error {
	return e.Err
}
