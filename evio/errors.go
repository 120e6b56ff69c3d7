package evio

import (
	"errors"
	"fmt"
)

var (
	// ErrFileTooSmall indicates the file cannot hold even one word.
	ErrFileTooSmall = errors.New("evio: file too small")
	// ErrOutOfBounds indicates a read outside [0, Size).
	ErrOutOfBounds = errors.New("evio: position out of bounds")
	// ErrClosed indicates use of a File after Close.
	ErrClosed = errors.New("evio: file closed")
	// ErrInvalidWindowSize indicates a window size that is not a positive multiple of 4.
	ErrInvalidWindowSize = errors.New("evio: invalid window size")
)

// AccessError reports a failure of the accessor itself: opening, mapping or
// reading outside the file. Errors of this kind end the session's operation.
type AccessError struct {
	Op  string
	Pos int64
	Err error
}

func (e *AccessError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("evio: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("evio: %s at %d: %v", e.Op, e.Pos, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

func accessErr(op string, pos int64, err error) error {
	return &AccessError{Op: op, Pos: pos, Err: err}
}
