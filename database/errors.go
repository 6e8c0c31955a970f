package database

import (
	"errors"
	"fmt"
	"io"

	"go-eix/pkg"
)

// Sentinel errors - simple error constants that can be checked with errors.Is()
var (
	// ErrBadMagic is returned when a file does not start with Magic
	ErrBadMagic = errors.New("not a package database")

	// ErrFormatVersion is returned when a file was written by another
	// format version. The only remedy is regenerating the database.
	ErrFormatVersion = errors.New("unsupported database format version")

	// ErrCorruptIndex is returned when a record references an interned
	// table slot that is out of range or unused
	ErrCorruptIndex = errors.New("corrupt table index")

	// ErrCorruptRecord is returned when a record's contents do not fit its
	// stored length or carry impossible values
	ErrCorruptRecord = errors.New("corrupt package record")

	// ErrNoPackage is returned by ReadField and Skip when no package is open
	ErrNoPackage = errors.New("no package opened")

	// ErrNotInterned is returned by the writer when a string is missing
	// from the header tables
	ErrNotInterned = errors.New("string not interned")

	// ErrOverlayRange is returned by the writer for versions referencing
	// an overlay the header does not list
	ErrOverlayRange = pkg.ErrOverlayRange
)

// FormatError is returned before any package is decoded when a file has
// the wrong magic or format version.
type FormatError struct {
	// Got is the format version found in the file (zero for bad magic)
	Got uint64

	// Want is the compiled in FormatVersion
	Want uint64

	// Err is ErrBadMagic or ErrFormatVersion
	Err error
}

// Error implements the error interface
func (e *FormatError) Error() string {
	if errors.Is(e.Err, ErrFormatVersion) {
		return fmt.Sprintf("database format: %v (file %d, supported %d)", e.Err, e.Got, e.Want)
	}
	return fmt.Sprintf("database format: %v", e.Err)
}

// Unwrap allows errors.Is() and errors.As() to work with wrapped errors
func (e *FormatError) Unwrap() error {
	return e.Err
}

// IOError wraps stream failures, including truncation which surfaces as
// io.ErrUnexpectedEOF.
type IOError struct {
	// Op is the operation that failed (e.g., "open", "read header", "write")
	Op string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("database %s: %v", e.Op, e.Err)
}

// Unwrap allows errors.Is() and errors.As() to work with wrapped errors
func (e *IOError) Unwrap() error {
	return e.Err
}

// CorruptIndexError reports a record index that does not resolve in its
// table. It unwraps to ErrCorruptIndex.
type CorruptIndexError struct {
	Table string
	Index uint64
	Size  int
}

// Error implements the error interface
func (e *CorruptIndexError) Error() string {
	return fmt.Sprintf("%v: %s index %d (table size %d)", ErrCorruptIndex, e.Table, e.Index, e.Size)
}

// Unwrap allows errors.Is() and errors.As() to work with wrapped errors
func (e *CorruptIndexError) Unwrap() error {
	return ErrCorruptIndex
}

// IsFormatError reports whether err is a format mismatch.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsCorrupt reports whether err signals a structurally invalid file.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorruptIndex) || errors.Is(err, ErrCorruptRecord)
}

// IsTruncated reports whether err was caused by a stream ending early.
func IsTruncated(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr) && errors.Is(err, io.ErrUnexpectedEOF)
}
