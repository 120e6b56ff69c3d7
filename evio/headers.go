package evio

import (
	"github.com/joshuapare/eviokit/internal/format"
)

// Header records produced by the decoders, re-exported for callers outside
// this module.
type (
	FileHeader      = format.FileHeader
	BlockHeader     = format.BlockHeader
	RecordHeader    = format.RecordHeader
	EvioHeader      = format.EvioHeader
	DataType        = format.DataType
	StructureKind   = format.StructureKind
	CompressionType = format.CompressionType
	EventType       = format.EventType
	FileType        = format.FileType
)

// Version reads the format version from the info word of the header at the
// start of the file. v4 files start with a block header and v6 files with a
// file header; both keep the info word at word 5.
func (f *File) Version() (uint32, error) {
	w, err := f.IntAt(format.BlockInfoWord * format.WordSize)
	if err != nil {
		return 0, err
	}
	return format.VersionOf(w), nil
}

// ReadFileHeader decodes the v6 file header at offset 0.
func (f *File) ReadFileHeader() (FileHeader, error) {
	words, err := f.ReadWords(0, format.FileHeaderWords)
	if err != nil {
		return FileHeader{}, err
	}
	return format.DecodeFileHeader(words)
}

// ReadBlockHeader decodes the v4 block header at byte offset pos.
func (f *File) ReadBlockHeader(pos int64) (BlockHeader, error) {
	words, err := f.ReadWords(pos, format.BlockHeaderWords)
	if err != nil {
		return BlockHeader{}, err
	}
	h, err := format.DecodeBlockHeaderV4(words)
	if err != nil {
		return BlockHeader{}, err
	}
	h.FilePos = pos
	return h, nil
}

// ReadRecordHeader decodes the v6 record header at byte offset pos.
func (f *File) ReadRecordHeader(pos int64) (RecordHeader, error) {
	words, err := f.ReadWords(pos, format.RecordHeaderWords)
	if err != nil {
		return RecordHeader{}, err
	}
	h, err := format.DecodeRecordHeaderV6(words, f.ByteOrder())
	if err != nil {
		return RecordHeader{}, err
	}
	h.FilePos = pos
	return h, nil
}
