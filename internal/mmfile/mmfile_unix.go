//go:build unix

package mmfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MapRange maps n bytes of f starting at off. Page-aligned offsets are
// mmapped read-only; anything else falls back to a copy.
func MapRange(f *os.File, off int64, n int) ([]byte, Unmap, error) {
	if n < 0 || off < 0 {
		return nil, noop, fmt.Errorf("mmfile: invalid range off=%d n=%d", off, n)
	}
	if n == 0 {
		return []byte{}, noop, nil
	}
	if off%int64(os.Getpagesize()) != 0 {
		return readRange(f, off, n)
	}
	data, err := unix.Mmap(int(f.Fd()), off, n, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, noop, fmt.Errorf("mmfile: mmap %d bytes at %d: %w", n, off, err)
	}
	unmap := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		data = nil
		if errors.Is(err, unix.EINVAL) {
			return nil
		}
		return err
	}
	return data, unmap, nil
}
