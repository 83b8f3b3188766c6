package fix

import (
	"errors"
	"fmt"
)

var (
	// ErrDictionaryUnavailable is fatal to a decode: the dictionary could not be loaded
	ErrDictionaryUnavailable = errors.New("fix: dictionary unavailable")
	// ErrMalformedMessage means the checksum boundary could not be located
	ErrMalformedMessage = errors.New("fix: malformed message")
	// ErrChecksumMismatch means the computed checksum differs from the declared one
	ErrChecksumMismatch = errors.New("fix: checksum mismatch")
	// ErrChecksumMissing means the trailer carries no CheckSum field
	ErrChecksumMissing = errors.New("fix: checksum field missing")
	// ErrInvalidChecksum means the declared CheckSum value is not an integer
	ErrInvalidChecksum = errors.New("fix: invalid checksum value")
)

// DecodeError describes why a decode attempt failed
type DecodeError struct {
	Op    string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("fix: %s: %v", e.Op, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
