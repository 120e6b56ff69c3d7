//go:build !unix

package mmfile

import (
	"fmt"
	"os"
)

// MapRange reads n bytes of f starting at off into memory.
func MapRange(f *os.File, off int64, n int) ([]byte, Unmap, error) {
	if n < 0 || off < 0 {
		return nil, noop, fmt.Errorf("mmfile: invalid range off=%d n=%d", off, n)
	}
	if n == 0 {
		return []byte{}, noop, nil
	}
	return readRange(f, off, n)
}
