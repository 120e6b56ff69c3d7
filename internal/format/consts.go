// Package format houses the low-level decoders for the EVIO container format.
// Decoders take already-read 32-bit words (the accessor owns byte order) and
// return plain value records. They never hold state between calls.
package format

// MagicNumber sits in word 7 of every v4 block header and every v6 file and
// record header. Reading it byte-swapped means the file uses the other order.
const MagicNumber uint32 = 0xc0da0100

// File identifiers stored in word 0 of a v6 file header.
const (
	EvioFileID uint32 = 0x4556494f // "EVIO"
	HipoFileID uint32 = 0x4849504f // "HIPO"
)

// WordSize is the size of a word in bytes.
const WordSize = 4

// ============================================================================
// V6 File Header
// ============================================================================
//
//	Word  Field
//	----  ----------------------------------------------
//	 0    file id ("EVIO" or "HIPO")
//	 1    file number (split files)
//	 2    header length in words (14)
//	 3    record count
//	 4    index array length in bytes
//	 5    bit info + version
//	 6    user header length in bytes
//	 7    magic number
//	 8-9  user register (64 bit, high word first)
//	10-11 trailer position (64 bit, high word first)
//	12    user integer 1
//	13    user integer 2
const (
	FileIDWord              = 0
	FileNumberWord          = 1
	FileHeaderLenWord       = 2
	FileRecordCountWord     = 3
	FileIndexArrayWord      = 4
	FileInfoWord            = 5
	FileUserHeaderWord      = 6
	FileMagicWord           = 7
	FileRegisterHighWord    = 8
	FileRegisterLowWord     = 9
	FileTrailerPosHighWord  = 10
	FileTrailerPosLowWord   = 11
	FileUserInt1Word        = 12
	FileUserInt2Word        = 13
	FileHeaderWords         = 14
	FileHeaderBytes         = FileHeaderWords * WordSize
	FileHeaderMinVersion    = 6
	FileInfoDictionaryBit   = 0x100
	FileInfoFirstEventBit   = 0x200
	FileInfoTrailerIndexBit = 0x400
)

// ============================================================================
// V4 Block Header
// ============================================================================
//
//	Word  Field
//	----  ----------------------------------------------
//	 0    block length in words, header included
//	 1    block number
//	 2    header length in words (8)
//	 3    event count
//	 4    reserved 1
//	 5    bit info + version
//	 6    reserved 2
//	 7    magic number
const (
	BlockLengthWord     = 0
	BlockNumberWord     = 1
	BlockHeaderLenWord  = 2
	BlockEventCountWord = 3
	BlockReserved1Word  = 4
	BlockInfoWord       = 5
	BlockReserved2Word  = 6
	BlockMagicWord      = 7

	// BlockHeaderWords is the on-disk size of a v4 block header.
	BlockHeaderWords = 8
	// BlockHeaderMinWords is the fewest words DecodeBlockHeaderV4 accepts.
	BlockHeaderMinWords = 6

	BlockInfoDictionaryBit = 0x100
	BlockInfoLastBit       = 0x200
	BlockInfoFirstEventBit = 0x4000
)

// ============================================================================
// V6 Record Header
// ============================================================================
//
//	Word  Field
//	----  ----------------------------------------------
//	 0    record length in words, header included
//	 1    record number
//	 2    header length in words (14)
//	 3    event count
//	 4    index array length in bytes
//	 5    bit info + version
//	 6    user header length in bytes
//	 7    magic number
//	 8    uncompressed data length in bytes
//	 9    compression type (top 4 bits) | compressed length in words
//	10-11 user register 1 (word order follows byte order)
//	12-13 user register 2 (word order follows byte order)
const (
	RecordLengthWord          = 0
	RecordNumberWord          = 1
	RecordHeaderLenWord       = 2
	RecordEventCountWord      = 3
	RecordIndexArrayWord      = 4
	RecordInfoWord            = 5
	RecordUserHeaderWord      = 6
	RecordMagicWord           = 7
	RecordUncompressedWord    = 8
	RecordCompressionWord     = 9
	RecordRegister1FirstWord  = 10
	RecordRegister1SecondWord = 11
	RecordRegister2FirstWord  = 12
	RecordRegister2SecondWord = 13
	RecordHeaderWords         = 14
	RecordHeaderBytes         = RecordHeaderWords * WordSize

	RecordInfoDictionaryBit = 0x100
	RecordInfoLastBit       = 0x200
	RecordInfoFirstEventBit = 0x4000

	CompressionTypeShift    = 28
	CompressedDataWordsMask = 0x00ffffff
)

// Shared info word layout.
const (
	InfoVersionMask     = 0xff
	InfoEventTypeShift  = 10
	InfoEventTypeMask   = 0xf
	InfoPad1Shift       = 20
	InfoPad2Shift       = 22
	InfoPad3Shift       = 24
	InfoPadMask         = 0x3
	InfoHeaderTypeShift = 28
	InfoHeaderTypeMask  = 0xf
)

// ============================================================================
// Structure headers
// ============================================================================
//
// Bank (2 words):
//
//	word 0: length in words, excluding itself
//	word 1: tag(31-16) | pad(15-14) | type(13-8) | num(7-0)
//
// Segment (1 word):
//
//	tag(31-24) | pad(23-22) | type(21-16) | length(15-0)
//
// Tagsegment (1 word):
//
//	tag(31-20) | type(19-16) | length(15-0)
const (
	BankHeaderWords       = 2
	SegmentHeaderWords    = 1
	TagSegmentHeaderWords = 1

	BankTagShift  = 16
	BankPadShift  = 14
	BankTypeShift = 8
	BankTypeMask  = 0x3f
	BankNumMask   = 0xff

	SegmentTagShift  = 24
	SegmentPadShift  = 22
	SegmentTypeShift = 16
	SegmentTypeMask  = 0x3f
	SegmentLenMask   = 0xffff

	TagSegmentTagShift  = 20
	TagSegmentTypeShift = 16
	TagSegmentTypeMask  = 0xf
	TagSegmentLenMask   = 0xffff

	PadMask = 0x3
)
