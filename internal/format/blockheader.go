package format

import "fmt"

// BlockHeader is a v4 block header. It is also the common part of a v6
// record header, which embeds it.
type BlockHeader struct {
	Length        uint32 // words, header included
	Place         uint32 // block number from word 1
	HeaderLen     uint32
	EventCount    uint32
	Reserved1     uint32
	InfoWord      uint32
	Version       uint32
	HasDictionary bool
	IsLast        bool
	HasFirstEvent bool
	EventType     EventType
	Reserved2     uint32
	Magic         uint32
	FilePos       int64 // byte offset of word 0, filled in by the reader

	// Error describes structural problems found while decoding or walking.
	Error string
	// Events is only filled when an error made per-event diagnosis necessary.
	Events []EvioHeader
}

// LengthBytes is the declared block length in bytes.
func (h BlockHeader) LengthBytes() int64 { return int64(h.Length) * WordSize }

// DecodeBlockHeaderV4 decodes a v4 block header. Six words are enough for
// every field the walker needs; the magic word is checked when present.
func DecodeBlockHeaderV4(words []uint32) (BlockHeader, error) {
	if err := needWords("block header", words, BlockHeaderMinWords); err != nil {
		return BlockHeader{}, err
	}
	info := DecodeInfoWordV4(words[BlockInfoWord])
	h := BlockHeader{
		Length:        words[BlockLengthWord],
		Place:         words[BlockNumberWord],
		HeaderLen:     words[BlockHeaderLenWord],
		EventCount:    words[BlockEventCountWord],
		Reserved1:     words[BlockReserved1Word],
		InfoWord:      words[BlockInfoWord],
		Version:       info.Version,
		HasDictionary: info.HasDictionary,
		IsLast:        info.IsLast,
		HasFirstEvent: info.HasFirstEvent,
		EventType:     info.EventType,
	}
	if len(words) >= BlockHeaderWords {
		h.Reserved2 = words[BlockReserved2Word]
		h.Magic = words[BlockMagicWord]
		if h.Magic != MagicNumber {
			h.Error = joinProblem(h.Error, fmt.Sprintf("bad magic 0x%08x", h.Magic))
		}
	}
	h.Error = joinProblem(h.Error, h.checkLengths(BlockHeaderWords))
	return h, nil
}

func (h BlockHeader) checkLengths(minHeader uint32) string {
	var msg string
	if h.HeaderLen < minHeader {
		msg = joinProblem(msg, fmt.Sprintf("header length %d < %d words", h.HeaderLen, minHeader))
	}
	if h.Length < h.HeaderLen {
		msg = joinProblem(msg, fmt.Sprintf("length %d words shorter than header %d", h.Length, h.HeaderLen))
	}
	return msg
}

// AddError records a structural problem on h.
func (h *BlockHeader) AddError(msg string) { h.Error = joinProblem(h.Error, msg) }
