package format

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// stringPad marks the start of the padding that ends a charstar8 array.
const stringPad = 0x04

// DecodeStrings splits a charstar8 payload into its strings. Each string is
// NUL terminated and the array is padded to a word boundary with 0x04 bytes.
// Bytes are Latin-1; anything non-ASCII decodes to the matching code point.
func DecodeStrings(data []byte) ([]string, error) {
	if i := bytes.IndexByte(data, stringPad); i >= 0 {
		data = data[:i]
	}
	if len(data) == 0 {
		return nil, nil
	}
	parts := bytes.Split(data, []byte{0})
	// The final NUL leaves an empty trailing part.
	if len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}
	dec := charmap.ISO8859_1.NewDecoder()
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s, err := dec.Bytes(p)
		if err != nil {
			return out, fmt.Errorf("format: decode string: %w", err)
		}
		out = append(out, string(s))
	}
	return out, nil
}
