package format

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated indicates a decoder was handed fewer words than the structure needs.
	ErrTruncated = errors.New("format: truncated header")
	// ErrBadMagic indicates the magic word did not match in either byte order.
	ErrBadMagic = errors.New("format: magic number mismatch")
	// ErrUnsupportedVersion indicates a format version this package cannot walk.
	ErrUnsupportedVersion = errors.New("format: unsupported version")
)

// DecodeError reports a header decode that could not run for lack of input.
// It is the only error the header decoders return; malformed but complete
// input is described in the record's Error field instead.
type DecodeError struct {
	Structure string
	Need      int
	Got       int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: need %d words, got %d: %v", e.Structure, e.Need, e.Got, ErrTruncated)
}

func (e *DecodeError) Unwrap() error { return ErrTruncated }

func needWords(structure string, words []uint32, need int) error {
	if len(words) < need {
		return &DecodeError{Structure: structure, Need: need, Got: len(words)}
	}
	return nil
}

// joinProblem appends msg to an existing structural description.
func joinProblem(existing, msg string) string {
	switch {
	case msg == "":
		return existing
	case existing == "":
		return msg
	}
	return existing + "; " + msg
}
