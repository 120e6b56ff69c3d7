package walker

import (
	"github.com/joshuapare/eviokit/internal/format"
)

const (
	// bankHeaderBytes is the size of a bank header, the smallest top-level event.
	bankHeaderBytes = format.BankHeaderWords * format.WordSize
)

// IsProbableBank reports whether h looks like a real bank header rather than
// arbitrary data. It rejects non-banks, banks too short for their own
// header, the unknown32 type, undefined type codes and padding that the
// data type cannot carry.
func IsProbableBank(h format.EvioHeader) bool {
	if h.Kind != format.KindBank || h.Len < 1 {
		return false
	}
	if h.DataType == format.TypeUnknown32 || !h.DataType.Known() {
		return false
	}
	return h.DataType.AllowsPadding(h.Pad)
}

// ProbableBankAt decodes a bank header at pos and reports whether it passes
// IsProbableBank and fits inside the file.
func ProbableBankAt(src Source, pos int64) (format.EvioHeader, bool) {
	return probableBankWithin(src, pos, src.Size())
}

func probableBankWithin(src Source, pos, end int64) (format.EvioHeader, bool) {
	if pos < 0 || pos+bankHeaderBytes > end {
		return format.EvioHeader{}, false
	}
	h, ok := readBank(src, pos)
	if !ok {
		return format.EvioHeader{}, false
	}
	return h, IsProbableBank(h) && h.End() <= end
}

func readBank(src Source, pos int64) (format.EvioHeader, bool) {
	words, err := src.ReadWords(pos, format.BankHeaderWords)
	if err != nil || len(words) < format.BankHeaderWords {
		return format.EvioHeader{}, false
	}
	return format.DecodeBank(words[0], words[1], pos), true
}

// findBank scans word by word from pos for the next probable bank that ends
// at or before end. It returns end when there is none.
func findBank(src Source, pos, end int64) int64 {
	if rem := pos % format.WordSize; rem != 0 {
		pos += format.WordSize - rem
	}
	for ; pos+bankHeaderBytes <= end; pos += format.WordSize {
		if _, ok := probableBankWithin(src, pos, end); ok {
			return pos
		}
	}
	return end
}
