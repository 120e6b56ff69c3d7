package evio

import (
	"encoding/binary"

	"github.com/rs/zerolog"
)

// DefaultMaxWindowSize is the largest single view over the file: 1 GiB.
const DefaultMaxWindowSize int64 = 1 << 30

// OpenOptions controls how a file is opened.
type OpenOptions struct {
	// ByteOrder fixes the word byte order. If nil it is detected from the
	// magic number in word 7, defaulting to big-endian when that word does
	// not hold the magic in either order.
	ByteOrder binary.ByteOrder

	// MaxWindowSize bounds each window in bytes. It must be a positive
	// multiple of 4 so words never straddle windows. Default: 1 GiB.
	MaxWindowSize int64

	// Logger receives debug output about mapping and detection. If nil, the
	// logger carried by the context (or a no-op logger) is used.
	Logger *zerolog.Logger
}

func (o *OpenOptions) windowSize() (int64, error) {
	if o == nil || o.MaxWindowSize == 0 {
		return DefaultMaxWindowSize, nil
	}
	if o.MaxWindowSize < 0 || o.MaxWindowSize%4 != 0 {
		return 0, ErrInvalidWindowSize
	}
	return o.MaxWindowSize, nil
}
