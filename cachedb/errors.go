package cachedb

import (
	"errors"
	"fmt"
)

// ==================== Sentinel Errors ====================

var (
	// Run IDs
	ErrEmptyUUID   = fmt.Errorf("run ID cannot be empty")
	ErrInvalidUUID = fmt.Errorf("run ID is not a UUID")

	// ErrEmptyKey: a repository or category name was empty
	ErrEmptyKey = fmt.Errorf("repository and category must be set")

	// ErrRecordNotFound: no such run, repository or category snapshot
	ErrRecordNotFound = fmt.Errorf("not found in cache")

	// ErrBucketNotFound: a top-level bucket is missing, usually a cache file
	// written by something else
	ErrBucketNotFound = fmt.Errorf("cache bucket missing")

	// ErrCorruptedData: a stored JSON value does not decode
	ErrCorruptedData = fmt.Errorf("stored value does not decode")
)

// ==================== Structured Error Types ====================

// DatabaseError is a bbolt failure: opening the file, a transaction, or a
// bucket operation.
type DatabaseError struct {
	Op     string // "open", "replace category", "delete repository", ...
	Bucket string // optional
	Err    error
}

func (e *DatabaseError) Error() string {
	if e.Bucket != "" {
		return fmt.Sprintf("cache database %s [bucket: %s]: %v", e.Op, e.Bucket, e.Err)
	}
	return fmt.Sprintf("cache database %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// RecordError concerns one stored snapshot or run.
type RecordError struct {
	Op  string
	Key string // "repo/category" or a run ID
	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("cache record %s [%s]: %v", e.Op, e.Key, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// CRCError is a failure computing, storing or loading a category
// fingerprint. Key is "repo/category", or the directory for "compute".
type CRCError struct {
	Op  string
	Key string
	Err error
}

func (e *CRCError) Error() string {
	return fmt.Sprintf("CRC %s [%s]: %v", e.Op, e.Key, e.Err)
}

func (e *CRCError) Unwrap() error { return e.Err }

// ValidationError rejects an argument before any transaction starts. Err
// is one of the sentinels above.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("validation failed [%s=%s]: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("validation failed [%s]: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ==================== Error Inspection Helpers ====================

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDatabaseError reports whether err is or wraps a *DatabaseError.
func IsDatabaseError(err error) bool {
	var de *DatabaseError
	return errors.As(err, &de)
}

// IsRecordNotFound checks if the error indicates a missing run or
// repository.
func IsRecordNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}
