// Package mmfile maps bounded, read-only ranges of a file into memory.
package mmfile

import (
	"fmt"
	"io"
	"os"
)

// Unmap releases a range returned by MapRange. Calling it more than once is a no-op.
type Unmap func() error

func noop() error { return nil }

// readRange copies [off, off+n) into a heap buffer. Used where mmap is not
// available or the offset is not page aligned.
func readRange(f *os.File, off int64, n int) ([]byte, Unmap, error) {
	data := make([]byte, n)
	read, err := f.ReadAt(data, off)
	if err != nil && !(err == io.EOF && read == n) {
		return nil, noop, fmt.Errorf("mmfile: read %d bytes at %d: %w", n, off, err)
	}
	return data, noop, nil
}
