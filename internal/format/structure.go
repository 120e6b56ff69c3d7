package format

import "fmt"

// StructureKind distinguishes the three header layouts.
type StructureKind uint8

const (
	KindBank StructureKind = iota
	KindSegment
	KindTagSegment
)

func (k StructureKind) String() string {
	switch k {
	case KindBank:
		return "bank"
	case KindSegment:
		return "segment"
	case KindTagSegment:
		return "tagsegment"
	default:
		return "unknown"
	}
}

// HeaderWords is the number of header words for the kind.
func (k StructureKind) HeaderWords() uint32 {
	if k == KindBank {
		return BankHeaderWords
	}
	return SegmentHeaderWords
}

// EvioHeader describes one bank, segment or tagsegment. It carries enough to
// skip to the next sibling or to descend into the data region without
// reading the contents.
type EvioHeader struct {
	Len         uint32 // length word: words following the first header word
	Pos         int64  // byte offset of the first header word
	Kind        StructureKind
	Tag         uint16
	Num         uint8
	Pad         uint8
	DataType    DataType
	DataLen     uint32 // words
	DataPos     int64  // byte offset of the first data word
	HeaderWords uint32
	IsEvent     bool

	// BankType and Description come from the CODA reserved tag table.
	BankType    string
	Description string

	// Error describes structural problems. ErrorChild, when set, is the
	// nested header that caused them.
	Error      string
	ErrorChild *EvioHeader
}

// TotalWords is the full size of the structure including its header.
func (h EvioHeader) TotalWords() int64 { return int64(h.Len) + 1 }

// End is the byte offset just past the structure.
func (h EvioHeader) End() int64 { return h.Pos + h.TotalWords()*WordSize }

// DataEnd is the byte offset just past the data region.
func (h EvioHeader) DataEnd() int64 { return h.DataPos + int64(h.DataLen)*WordSize }

// IsContainer reports whether the data region holds nested structures.
func (h EvioHeader) IsContainer() bool { return h.DataType.IsContainer() }

// DataBytes is the payload size in bytes once padding is removed.
func (h EvioHeader) DataBytes() int64 {
	n := int64(h.DataLen)*WordSize - int64(h.Pad)
	if n < 0 {
		return 0
	}
	return n
}

// AddError records a structural problem on h.
func (h *EvioHeader) AddError(msg string) { h.Error = joinProblem(h.Error, msg) }

// DecodeBank decodes a two-word bank header located at pos.
func DecodeBank(w0, w1 uint32, pos int64) EvioHeader {
	h := EvioHeader{
		Len:         w0,
		Pos:         pos,
		Kind:        KindBank,
		Tag:         uint16(w1 >> BankTagShift),
		Pad:         uint8((w1 >> BankPadShift) & PadMask),
		DataType:    DataType((w1 >> BankTypeShift) & BankTypeMask),
		Num:         uint8(w1 & BankNumMask),
		HeaderWords: BankHeaderWords,
		DataPos:     pos + BankHeaderWords*WordSize,
	}
	if w0 == 0 {
		h.AddError("bank length 0 is shorter than its header")
	} else {
		h.DataLen = w0 - 1
	}
	if tag, ok := LookupCodaTag(h.Tag); ok {
		h.BankType = tag.Name
		h.Description = tag.Description
	}
	h.checkContent()
	return h
}

// DecodeSegment decodes a one-word segment header located at pos.
func DecodeSegment(w uint32, pos int64) EvioHeader {
	h := EvioHeader{
		Len:         w & SegmentLenMask,
		Pos:         pos,
		Kind:        KindSegment,
		Tag:         uint16(w >> SegmentTagShift),
		Pad:         uint8((w >> SegmentPadShift) & PadMask),
		DataType:    DataType((w >> SegmentTypeShift) & SegmentTypeMask),
		HeaderWords: SegmentHeaderWords,
		DataPos:     pos + SegmentHeaderWords*WordSize,
	}
	h.DataLen = h.Len
	h.checkContent()
	return h
}

// DecodeTagSegment decodes a one-word tagsegment header located at pos.
// Tagsegments have no padding field.
func DecodeTagSegment(w uint32, pos int64) EvioHeader {
	h := EvioHeader{
		Len:         w & TagSegmentLenMask,
		Pos:         pos,
		Kind:        KindTagSegment,
		Tag:         uint16(w >> TagSegmentTagShift),
		DataType:    DataType((w >> TagSegmentTypeShift) & TagSegmentTypeMask),
		HeaderWords: TagSegmentHeaderWords,
		DataPos:     pos + TagSegmentHeaderWords*WordSize,
	}
	h.DataLen = h.Len
	h.checkContent()
	return h
}

// DecodeStructure dispatches on kind. Segments and tagsegments ignore w1.
func DecodeStructure(kind StructureKind, w0, w1 uint32, pos int64) EvioHeader {
	switch kind {
	case KindSegment:
		return DecodeSegment(w0, pos)
	case KindTagSegment:
		return DecodeTagSegment(w0, pos)
	default:
		return DecodeBank(w0, w1, pos)
	}
}

func (h *EvioHeader) checkContent() {
	if !h.DataType.Known() {
		h.AddError(fmt.Sprintf("unknown data type 0x%x", uint8(h.DataType)))
		return
	}
	if !h.DataType.AllowsPadding(h.Pad) {
		h.AddError(fmt.Sprintf("padding %d illegal for %s", h.Pad, h.DataType))
	}
}
