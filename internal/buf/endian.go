// Package buf contains byte-order aware word helpers shared by the decoders
// and the windowed accessor.
package buf

import "encoding/binary"

// WordSize is the size of an EVIO word in bytes.
const WordSize = 4

// Word reads a 32-bit word from b in the given order. Returns 0 when b is too short.
func Word(order binary.ByteOrder, b []byte) uint32 {
	if len(b) < WordSize {
		return 0
	}
	return order.Uint32(b)
}

// Half reads a 16-bit value from b in the given order. Returns 0 when b is too short.
func Half(order binary.ByteOrder, b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return order.Uint16(b)
}

// PartialWord assembles a value from the 1-3 bytes left at the end of a file.
// The available bytes always occupy the low-order end of the result, so the
// missing high-order bytes read as zero for either order.
func PartialWord(order binary.ByteOrder, b []byte) uint32 {
	if len(b) > WordSize {
		b = b[:WordSize]
	}
	var v uint32
	if order == binary.LittleEndian {
		for i := len(b) - 1; i >= 0; i-- {
			v = v<<8 | uint32(b[i])
		}
		return v
	}
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

// JoinHighLow forms a 64-bit value with hi in the upper half.
func JoinHighLow(hi, lo uint32) uint64 {
	return uint64(hi)<<32 | uint64(lo)
}

// JoinPair forms a 64-bit value from two consecutive words whose order
// follows the byte order: big-endian stores the high word first,
// little-endian the low word first.
func JoinPair(order binary.ByteOrder, first, second uint32) uint64 {
	if order == binary.LittleEndian {
		return JoinHighLow(second, first)
	}
	return JoinHighLow(first, second)
}

// Swap32 reverses the byte order of v.
func Swap32(v uint32) uint32 {
	return v>>24 | (v>>8)&0xff00 | (v<<8)&0xff0000 | v<<24
}
