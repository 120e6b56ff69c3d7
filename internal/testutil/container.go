// Package testutil builds small EVIO containers for tests.
package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/eviokit/internal/format"
)

// Bank returns the words of a bank holding data.
func Bank(tag uint16, dt format.DataType, num uint8, pad uint8, data ...uint32) []uint32 {
	w1 := uint32(tag)<<format.BankTagShift |
		uint32(pad&format.PadMask)<<format.BankPadShift |
		uint32(dt&format.BankTypeMask)<<format.BankTypeShift |
		uint32(num)
	out := make([]uint32, 0, len(data)+2)
	out = append(out, uint32(len(data)+1), w1)
	return append(out, data...)
}

// Segment returns the words of a segment holding data.
func Segment(tag uint8, dt format.DataType, pad uint8, data ...uint32) []uint32 {
	w := uint32(tag)<<format.SegmentTagShift |
		uint32(pad&format.PadMask)<<format.SegmentPadShift |
		uint32(dt&format.SegmentTypeMask)<<format.SegmentTypeShift |
		uint32(len(data))&format.SegmentLenMask
	return append([]uint32{w}, data...)
}

// TagSegment returns the words of a tagsegment holding data.
func TagSegment(tag uint16, dt format.DataType, data ...uint32) []uint32 {
	w := uint32(tag&0xfff)<<format.TagSegmentTagShift |
		uint32(dt&format.TagSegmentTypeMask)<<format.TagSegmentTypeShift |
		uint32(len(data))&format.TagSegmentLenMask
	return append([]uint32{w}, data...)
}

// Concat joins word slices.
func Concat(parts ...[]uint32) []uint32 {
	var out []uint32
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Block describes a v4 block.
type Block struct {
	Number uint32
	Last   bool
	Events [][]uint32

	// EventCount overrides the header's event count when HasCount is set.
	EventCount uint32
	HasCount   bool
}

// Words lays out the block: 8 header words then the events.
func (b Block) Words() []uint32 {
	body := Concat(b.Events...)
	count := uint32(len(b.Events))
	if b.HasCount {
		count = b.EventCount
	}
	info := uint32(4)
	if b.Last {
		info |= format.BlockInfoLastBit
	}
	hdr := []uint32{
		uint32(format.BlockHeaderWords + len(body)),
		b.Number,
		format.BlockHeaderWords,
		count,
		0,
		info,
		0,
		format.MagicNumber,
	}
	return append(hdr, body...)
}

// Record describes a v6 record. The index array lists each event's length
// in bytes.
type Record struct {
	Number      uint32
	Last        bool
	Compression format.CompressionType
	Register1   uint64
	Register2   uint64
	UserHeader  []byte
	Events      [][]uint32
}

// Words lays out the record for the given byte order.
func (r Record) Words(order binary.ByteOrder) []uint32 {
	index := make([]uint32, len(r.Events))
	for i, ev := range r.Events {
		index[i] = uint32(len(ev) * format.WordSize)
	}
	body := Concat(r.Events...)
	user := packBytes(order, r.UserHeader)

	info := uint32(6)
	if r.Last {
		info |= format.RecordInfoLastBit
	}
	info |= uint32(len(user)*format.WordSize-len(r.UserHeader)) << format.InfoPad1Shift

	comp := uint32(r.Compression) << format.CompressionTypeShift
	if r.Compression != format.CompressionNone {
		comp |= uint32(len(body)) & format.CompressedDataWordsMask
	}

	hdr := make([]uint32, format.RecordHeaderWords)
	hdr[format.RecordLengthWord] = uint32(format.RecordHeaderWords + len(index) + len(user) + len(body))
	hdr[format.RecordNumberWord] = r.Number
	hdr[format.RecordHeaderLenWord] = format.RecordHeaderWords
	hdr[format.RecordEventCountWord] = uint32(len(r.Events))
	hdr[format.RecordIndexArrayWord] = uint32(len(index) * format.WordSize)
	hdr[format.RecordInfoWord] = info
	hdr[format.RecordUserHeaderWord] = uint32(len(r.UserHeader))
	hdr[format.RecordMagicWord] = format.MagicNumber
	hdr[format.RecordUncompressedWord] = uint32(len(body) * format.WordSize)
	hdr[format.RecordCompressionWord] = comp
	putPair(order, hdr[format.RecordRegister1FirstWord:], r.Register1)
	putPair(order, hdr[format.RecordRegister2FirstWord:], r.Register2)
	return Concat(hdr, index, user, body)
}

func putPair(order binary.ByteOrder, dst []uint32, v uint64) {
	hi, lo := uint32(v>>32), uint32(v)
	if order == binary.LittleEndian {
		dst[0], dst[1] = lo, hi
		return
	}
	dst[0], dst[1] = hi, lo
}

// FileHeader returns a 14-word v6 file header with no index or user header.
func FileHeader(recordCount uint32) []uint32 {
	w := make([]uint32, format.FileHeaderWords)
	w[format.FileIDWord] = format.EvioFileID
	w[format.FileNumberWord] = 1
	w[format.FileHeaderLenWord] = format.FileHeaderWords
	w[format.FileRecordCountWord] = recordCount
	w[format.FileInfoWord] = 6 | uint32(format.HeaderEvioFile)<<format.InfoHeaderTypeShift
	w[format.FileMagicWord] = format.MagicNumber
	return w
}

// Encode serializes words in order.
func Encode(order binary.ByteOrder, words []uint32) []byte {
	out := make([]byte, len(words)*format.WordSize)
	for i, w := range words {
		order.PutUint32(out[i*format.WordSize:], w)
	}
	return out
}

// Chars packs strings as charstar8 data: each NUL terminated, then padded
// with 0x04 to a whole word.
func Chars(order binary.ByteOrder, strs ...string) []uint32 {
	var raw []byte
	for _, s := range strs {
		raw = append(raw, s...)
		raw = append(raw, 0)
	}
	pad := (format.WordSize - len(raw)%format.WordSize) % format.WordSize
	for range pad {
		raw = append(raw, 4)
	}
	return packBytes(order, raw)
}

// packBytes turns raw bytes into words that encode back to the same bytes,
// zero filling the final word.
func packBytes(order binary.ByteOrder, raw []byte) []uint32 {
	n := (len(raw) + format.WordSize - 1) / format.WordSize
	padded := make([]byte, n*format.WordSize)
	copy(padded, raw)
	out := make([]uint32, n)
	for i := range out {
		out[i] = order.Uint32(padded[i*format.WordSize:])
	}
	return out
}

// WriteFile writes data to a file in a fresh temp directory and returns its path.
func WriteFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.evio")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	return path
}
