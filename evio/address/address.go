// Package address maps word indexes to the (window, row, column) cells a
// tabular view uses, and packs those cells into single lookup keys.
//
// Rows are RowWidth words wide and restart at zero in every window.
package address

import (
	"errors"

	"github.com/joshuapare/eviokit/internal/buf"
)

// RowWidth is the number of words shown per row.
const RowWidth = 5

// ErrInvalidWindowSize indicates a window size that is not a positive multiple of 4.
var ErrInvalidWindowSize = errors.New("address: invalid window size")

// Coords locates one word.
type Coords struct {
	Window int
	Row    int64
	Col    int
}

// Translator converts between word indexes and Coords for one file.
type Translator struct {
	windowWords int64
	totalWords  int64
}

// New returns a translator for a file of fileSize bytes viewed through
// windows of maxWindowSize bytes. A trailing partial word counts as a word.
func New(maxWindowSize, fileSize int64) (*Translator, error) {
	if maxWindowSize <= 0 || maxWindowSize%buf.WordSize != 0 {
		return nil, ErrInvalidWindowSize
	}
	if fileSize < 0 {
		fileSize = 0
	}
	return &Translator{
		windowWords: maxWindowSize / buf.WordSize,
		totalWords:  (fileSize + buf.WordSize - 1) / buf.WordSize,
	}, nil
}

// TotalWords is the number of addressable words.
func (t *Translator) TotalWords() int64 { return t.totalWords }

// Windows is the number of windows.
func (t *Translator) Windows() int {
	return int((t.totalWords + t.windowWords - 1) / t.windowWords)
}

// Rows is the number of rows in window i, 0 if there is no such window.
func (t *Translator) Rows(i int) int64 {
	if i < 0 || i >= t.Windows() {
		return 0
	}
	words := min(t.windowWords, t.totalWords-int64(i)*t.windowWords)
	return (words + RowWidth - 1) / RowWidth
}

// WordToCoords locates wordIndex. It reports false outside [0, TotalWords).
func (t *Translator) WordToCoords(wordIndex int64) (Coords, bool) {
	if wordIndex < 0 || wordIndex >= t.totalWords {
		return Coords{}, false
	}
	local := wordIndex % t.windowWords
	return Coords{
		Window: int(wordIndex / t.windowWords),
		Row:    local / RowWidth,
		Col:    int(local % RowWidth),
	}, true
}

// CoordsToWord is the inverse of WordToCoords. It reports false for cells
// that do not hold a word: negative values, a column past RowWidth, a row
// past the window or a position past the end of the file.
func (t *Translator) CoordsToWord(c Coords) (int64, bool) {
	if c.Window < 0 || c.Row < 0 || c.Col < 0 || c.Col >= RowWidth {
		return 0, false
	}
	local := c.Row*RowWidth + int64(c.Col)
	if local >= t.windowWords {
		return 0, false
	}
	idx := int64(c.Window)*t.windowWords + local
	if idx >= t.totalWords {
		return 0, false
	}
	return idx, true
}

// Key bit layout: window in bits 48-63, row in bits 4-47, column in bits 0-3.
const (
	keyWindowShift = 48
	keyRowShift    = 4
	keyColMask     = 0xf
	keyRowMask     = 1<<(keyWindowShift-keyRowShift) - 1
)

// CompositeKey packs a cell into one key. Distinct cells never collide while
// window <= 65535, row < 2^44 and col <= 15.
func CompositeKey(window int, row int64, col int) uint64 {
	return uint64(window)<<keyWindowShift |
		(uint64(row)&keyRowMask)<<keyRowShift |
		uint64(col)&keyColMask
}

// SplitKey unpacks a key made by CompositeKey.
func SplitKey(key uint64) (window int, row int64, col int) {
	return int(key >> keyWindowShift), int64((key >> keyRowShift) & keyRowMask), int(key & keyColMask)
}

// Key returns the composite key of c.
func (c Coords) Key() uint64 { return CompositeKey(c.Window, c.Row, c.Col) }
