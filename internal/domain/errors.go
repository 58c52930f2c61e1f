package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrIO marks failures reading the path export or writing an output file.
	ErrIO = errors.New("io error")

	// ErrParse marks a malformed path export. Returned errors are *ParseError.
	ErrParse = errors.New("malformed path export")

	// ErrRemoteService marks any failure of the elevation lookup.
	ErrRemoteService = errors.New("elevation service error")

	// ErrMisaligned marks sequences that should be index-aligned but differ in length.
	ErrMisaligned = errors.New("misaligned sequences")
)

// ParseError describes a malformed token in a path export. Index is the
// 0-based token position, or -1 when the error concerns the sequence as a whole.
type ParseError struct {
	Index  int
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("parse path: %s", e.Reason)
	}
	return fmt.Sprintf("parse path: token %d (%q): %s", e.Index, e.Token, e.Reason)
}

// Unwrap lets callers match any ParseError with errors.Is(err, ErrParse).
func (e *ParseError) Unwrap() error { return ErrParse }
