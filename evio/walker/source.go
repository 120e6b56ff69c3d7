package walker

import "encoding/binary"

// Source is the random access the walker needs. *evio.File implements it.
type Source interface {
	IntAt(pos int64) (uint32, error)
	ReadWords(pos int64, n int) ([]uint32, error)
	Bytes(pos int64, n int) ([]byte, error)
	Size() int64
	ByteOrder() binary.ByteOrder
}
