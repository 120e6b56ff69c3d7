package address

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesWindowSize(t *testing.T) {
	for _, size := range []int64{0, -4, 6} {
		_, err := New(size, 100)
		assert.True(t, errors.Is(err, ErrInvalidWindowSize), "size %d", size)
	}
}

func TestWordToCoords(t *testing.T) {
	// 12 words per window, 30 words (plus a partial one) in the file.
	tr, err := New(48, 122)
	require.NoError(t, err)
	assert.Equal(t, int64(31), tr.TotalWords())
	assert.Equal(t, 3, tr.Windows())
	assert.Equal(t, int64(3), tr.Rows(0))
	assert.Equal(t, int64(2), tr.Rows(2))
	assert.Zero(t, tr.Rows(3))

	tests := []struct {
		word int64
		want Coords
	}{
		{0, Coords{0, 0, 0}},
		{4, Coords{0, 0, 4}},
		{5, Coords{0, 1, 0}},
		{11, Coords{0, 2, 1}},
		{12, Coords{1, 0, 0}},
		{30, Coords{2, 1, 1}},
	}
	for _, tt := range tests {
		got, ok := tr.WordToCoords(tt.word)
		require.True(t, ok, "word %d", tt.word)
		assert.Equal(t, tt.want, got, "word %d", tt.word)

		back, ok := tr.CoordsToWord(got)
		require.True(t, ok)
		assert.Equal(t, tt.word, back)
	}

	_, ok := tr.WordToCoords(-1)
	assert.False(t, ok)
	_, ok = tr.WordToCoords(31)
	assert.False(t, ok)
}

func TestCoordsToWordRejects(t *testing.T) {
	tr, err := New(48, 120)
	require.NoError(t, err)

	for _, c := range []Coords{
		{-1, 0, 0},
		{0, -1, 0},
		{0, 0, RowWidth},
		{0, 3, 0},
		{2, 1, 1},
	} {
		_, ok := tr.CoordsToWord(c)
		assert.False(t, ok, "%+v", c)
	}
}

func TestRoundTripAllWords(t *testing.T) {
	tr, err := New(1<<10, 10_000)
	require.NoError(t, err)
	for w := range tr.TotalWords() {
		c, ok := tr.WordToCoords(w)
		require.True(t, ok)
		back, ok := tr.CoordsToWord(c)
		require.True(t, ok)
		require.Equal(t, w, back)
	}
}

// Keys grow strictly in (window, row, col) order over the grid, so no two
// cells share one.
func TestCompositeKeyCollisionFree(t *testing.T) {
	var prev uint64
	first := true
	for window := range 1000 {
		for row := range int64(10000) {
			for col := range 6 {
				k := CompositeKey(window, row, col)
				if !first && k <= prev {
					t.Fatalf("key for (%d,%d,%d) not above previous", window, row, col)
				}
				prev, first = k, false
			}
		}
	}
}

func TestCompositeKeyDistinctSample(t *testing.T) {
	seen := make(map[uint64]Coords)
	for _, window := range []int{0, 1, 999, 65535} {
		for _, row := range []int64{0, 1, 9999, 1<<44 - 1} {
			for col := range 16 {
				c := Coords{window, row, col}
				prev, dup := seen[c.Key()]
				require.False(t, dup, "%+v collides with %+v", c, prev)
				seen[c.Key()] = c
			}
		}
	}
}

func TestSplitKey(t *testing.T) {
	tests := []Coords{
		{0, 0, 0},
		{65535, 1<<44 - 1, 15},
		{12, 345, 4},
	}
	for _, c := range tests {
		w, r, col := SplitKey(c.Key())
		assert.Equal(t, c, Coords{w, r, col})
	}
}
