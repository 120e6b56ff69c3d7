package format

import (
	"fmt"

	"github.com/joshuapare/eviokit/internal/buf"
)

// FileType names the container family identified by the file id word.
type FileType uint8

const (
	FileTypeUnknown FileType = iota
	FileTypeEvio
	FileTypeHipo
)

func (t FileType) String() string {
	switch t {
	case FileTypeEvio:
		return "EVIO"
	case FileTypeHipo:
		return "HIPO"
	default:
		return "unknown"
	}
}

// FileHeader is the 14-word header at the start of a v6 file.
type FileHeader struct {
	ID                  uint32
	FileType            FileType
	FileNumber          uint32
	HeaderLen           uint32
	RecordCount         uint32
	IndexArrayBytes     uint32
	InfoWord            uint32
	Version             uint32
	HasDictionary       bool
	HasFirstEvent       bool
	HasTrailerWithIndex bool
	UserHeaderPadding   uint32
	HeaderType          HeaderType
	UserHeaderBytes     uint32
	Magic               uint32
	Register            uint64
	TrailerPos          uint64
	UserInt1            uint32
	UserInt2            uint32

	// Error describes structural problems found while decoding.
	Error string
}

// DecodeFileHeader decodes a v6 file header from its first 14 words.
// The 64-bit register and trailer position always join as high word first;
// byte order only affects how each word was read.
func DecodeFileHeader(words []uint32) (FileHeader, error) {
	if err := needWords("file header", words, FileHeaderWords); err != nil {
		return FileHeader{}, err
	}
	info := DecodeFileInfoWord(words[FileInfoWord])
	h := FileHeader{
		ID:                  words[FileIDWord],
		FileNumber:          words[FileNumberWord],
		HeaderLen:           words[FileHeaderLenWord],
		RecordCount:         words[FileRecordCountWord],
		IndexArrayBytes:     words[FileIndexArrayWord],
		InfoWord:            words[FileInfoWord],
		Version:             info.Version,
		HasDictionary:       info.HasDictionary,
		HasFirstEvent:       info.HasFirstEvent,
		HasTrailerWithIndex: info.HasTrailerWithIndex,
		UserHeaderPadding:   info.UserHeaderPadding,
		HeaderType:          info.HeaderType,
		UserHeaderBytes:     words[FileUserHeaderWord],
		Magic:               words[FileMagicWord],
		Register:            buf.JoinHighLow(words[FileRegisterHighWord], words[FileRegisterLowWord]),
		TrailerPos:          buf.JoinHighLow(words[FileTrailerPosHighWord], words[FileTrailerPosLowWord]),
		UserInt1:            words[FileUserInt1Word],
		UserInt2:            words[FileUserInt2Word],
	}

	switch h.ID {
	case EvioFileID:
		h.FileType = FileTypeEvio
	case HipoFileID:
		h.FileType = FileTypeHipo
	default:
		h.Error = joinProblem(h.Error, fmt.Sprintf("unknown file id 0x%08x", h.ID))
	}
	if h.Magic != MagicNumber {
		h.Error = joinProblem(h.Error, fmt.Sprintf("bad magic 0x%08x", h.Magic))
	}
	if h.Version < FileHeaderMinVersion {
		h.Error = joinProblem(h.Error, fmt.Sprintf("version %d has no file header", h.Version))
	}
	if h.HeaderLen < FileHeaderWords {
		h.Error = joinProblem(h.Error, fmt.Sprintf("header length %d < %d words", h.HeaderLen, FileHeaderWords))
	}
	return h, nil
}

// RecordsStart is the byte offset of the first record: the header, then the
// index array, then the user header padded to a whole word.
func (h FileHeader) RecordsStart() int64 {
	return int64(h.HeaderLen)*WordSize + int64(h.IndexArrayBytes) + int64(buf.WordsFor(h.UserHeaderBytes))*WordSize
}

// AddError records a structural problem on h.
func (h *FileHeader) AddError(msg string) { h.Error = joinProblem(h.Error, msg) }
