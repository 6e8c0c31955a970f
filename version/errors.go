package version

import (
	"errors"
	"fmt"
)

var (
	// ErrUnparseable is returned for an empty version or one that does not
	// start with a digit.
	ErrUnparseable = errors.New("unparseable version")

	// ErrMalformed is returned when a component is broken: '.' or "-r"
	// without digits, or '_' without a known suffix keyword.
	ErrMalformed = errors.New("malformed version component")

	// ErrTrailingGarbage is returned when text is left over after a
	// complete version and the parser does not accept garbage.
	ErrTrailingGarbage = errors.New("trailing garbage in version")
)

// ParseError describes where and why a version string failed to parse.
type ParseError struct {
	// Input is the original version string
	Input string

	// Offset is the byte offset of the offending component
	Offset int

	// Reason is a short human readable description
	Reason string

	// Err is one of the sentinel errors above
	Err error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("version %q: %s at offset %d", e.Input, e.Reason, e.Offset)
}

// Unwrap allows errors.Is(err, ErrMalformed) and friends
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err carries a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
