package wire

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is returned when fewer bytes remain than a header or
	// payload requires, including declared lengths that the remaining
	// input cannot possibly satisfy.
	ErrTruncated = errors.New("truncated input")

	// ErrMalformed is returned when a header encodes a reserved or
	// unsupported combination.
	ErrMalformed = errors.New("malformed input")
)

// Error locates a decoding failure in the input.
type Error struct {
	Offset int
	Err    error
	Msg    string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("cbor: %v at offset %d", e.Err, e.Offset)
	}
	return fmt.Sprintf("cbor: %v at offset %d: %s", e.Err, e.Offset, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Malformed returns an *Error wrapping ErrMalformed at offset off.
func Malformed(off int, format string, args ...any) error {
	return &Error{Offset: off, Err: ErrMalformed, Msg: fmt.Sprintf(format, args...)}
}

// Truncated returns an *Error wrapping ErrTruncated at offset off.
func Truncated(off int, format string, args ...any) error {
	return &Error{Offset: off, Err: ErrTruncated, Msg: fmt.Sprintf(format, args...)}
}
