package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int64.
func AddOverflowSafe(a, b int64) (int64, bool) {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return 0, false
	case b < 0 && a < math.MinInt64-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative values, returning ok = false on
// overflow or when either operand is negative.
func MulOverflowSafe(a, b int64) (int64, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt64/b {
		return 0, false
	}
	return a * b, true
}

// WordSpanEnd validates that words 32-bit words starting at byte offset off
// fit inside a region of limit bytes and returns the end offset.
//
//	end, err := buf.WordSpanEnd(blockEnd, pos, int64(length)+1)
//	if err != nil {
//	    // structure runs past its container
//	}
func WordSpanEnd(limit, off, words int64) (int64, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset: %d", off)
	}
	if words < 0 {
		return 0, fmt.Errorf("negative word count: %d", words)
	}
	n, ok := MulOverflowSafe(words, WordSize)
	if !ok {
		return 0, fmt.Errorf("overflow: words=%d * %d", words, WordSize)
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d", off, n)
	}
	if end > limit {
		return 0, fmt.Errorf("bounds: end=%d > limit=%d", end, limit)
	}
	return end, nil
}

// WordsFor returns the number of whole words needed to hold n bytes.
func WordsFor(n uint32) uint32 {
	return uint32((uint64(n) + WordSize - 1) / WordSize)
}
