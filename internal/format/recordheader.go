package format

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/eviokit/internal/buf"
)

// CompressionType is the payload compression named in record word 9.
type CompressionType uint8

const (
	CompressionNone CompressionType = iota
	CompressionLZ4
	CompressionLZ4Best
	CompressionGzip
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionLZ4Best:
		return "lz4 best"
	case CompressionGzip:
		return "gzip"
	default:
		return "unknown"
	}
}

// Known reports whether c is one of the defined compression codes.
func (c CompressionType) Known() bool { return c <= CompressionGzip }

// RecordHeader is a v6 record header.
type RecordHeader struct {
	BlockHeader

	IndexArrayBytes       uint32
	UserHeaderBytes       uint32
	UncompressedDataBytes uint32
	CompressionType       CompressionType
	CompressedDataWords   uint32
	Register1             uint64
	Register2             uint64
	UserHeaderPadding     uint32
	DataPadding           uint32
	CompressedPadding     uint32
	HeaderType            HeaderType

	// TotalBytes is the offset from the start of the record to its first
	// event: header, index array and padded user header. Never larger than
	// the declared record length.
	TotalBytes int64
}

// Compressed reports whether the record payload is compressed.
func (h RecordHeader) Compressed() bool { return h.CompressionType != CompressionNone }

// DecodeRecordHeaderV6 decodes a 14-word v6 record header. The two user
// registers join their word pairs in byte order: big-endian files store the
// high word first, little-endian files the low word first.
func DecodeRecordHeaderV6(words []uint32, order binary.ByteOrder) (RecordHeader, error) {
	if err := needWords("record header", words, RecordHeaderWords); err != nil {
		return RecordHeader{}, err
	}
	info := DecodeInfoWordV6(words[RecordInfoWord])
	infoRaw := words[RecordInfoWord]
	comp := words[RecordCompressionWord]

	h := RecordHeader{
		BlockHeader: BlockHeader{
			Length:        words[RecordLengthWord],
			Place:         words[RecordNumberWord],
			HeaderLen:     words[RecordHeaderLenWord],
			EventCount:    words[RecordEventCountWord],
			InfoWord:      infoRaw,
			Version:       info.Version,
			HasDictionary: info.HasDictionary,
			IsLast:        info.IsLast,
			HasFirstEvent: info.HasFirstEvent,
			EventType:     info.EventType,
			Magic:         words[RecordMagicWord],
		},
		IndexArrayBytes:       words[RecordIndexArrayWord],
		UserHeaderBytes:       words[RecordUserHeaderWord],
		UncompressedDataBytes: words[RecordUncompressedWord],
		CompressionType:       CompressionType(comp >> CompressionTypeShift),
		CompressedDataWords:   comp & CompressedDataWordsMask,
		Register1:             buf.JoinPair(order, words[RecordRegister1FirstWord], words[RecordRegister1SecondWord]),
		Register2:             buf.JoinPair(order, words[RecordRegister2FirstWord], words[RecordRegister2SecondWord]),
		UserHeaderPadding:     (infoRaw >> InfoPad1Shift) & InfoPadMask,
		DataPadding:           (infoRaw >> InfoPad2Shift) & InfoPadMask,
		CompressedPadding:     (infoRaw >> InfoPad3Shift) & InfoPadMask,
		HeaderType:            HeaderType((infoRaw >> InfoHeaderTypeShift) & InfoHeaderTypeMask),
	}

	if h.Magic != MagicNumber {
		h.Error = joinProblem(h.Error, fmt.Sprintf("bad magic 0x%08x", h.Magic))
	}
	if !h.CompressionType.Known() {
		h.Error = joinProblem(h.Error, fmt.Sprintf("unknown compression type %d", h.CompressionType))
	}
	h.Error = joinProblem(h.Error, h.checkLengths(RecordHeaderWords))

	total := uint64(h.HeaderLen)*WordSize + uint64(h.IndexArrayBytes) + uint64(buf.WordsFor(h.UserHeaderBytes))*WordSize
	limit := uint64(h.Length) * WordSize
	if total > limit {
		h.Error = joinProblem(h.Error, fmt.Sprintf("header+index+user header (%d bytes) exceed record length (%d bytes)", total, limit))
		total = limit
	}
	h.TotalBytes = int64(total)
	return h, nil
}
