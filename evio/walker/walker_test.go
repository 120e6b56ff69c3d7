package walker

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/eviokit/evio"
	"github.com/joshuapare/eviokit/internal/format"
	"github.com/joshuapare/eviokit/internal/testutil"
)

func open(t *testing.T, order binary.ByteOrder, words []uint32) *evio.File {
	t.Helper()
	f, err := evio.FromBytes(testutil.Encode(order, words), nil)
	require.NoError(t, err)
	return f
}

func threeEvents() [][]uint32 {
	return [][]uint32{
		testutil.Bank(1, format.TypeUint32, 0, 0, 10, 11),
		testutil.Bank(2, format.TypeFloat32, 0, 0, 20),
		testutil.Bank(3, format.TypeInt32, 0, 0, 30, 31, 32),
	}
}

func TestThreeEventContainer(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian} {
		t.Run(order.String(), func(t *testing.T) {
			f := open(t, order, testutil.Block{Number: 1, Last: true, Events: threeEvents()}.Words())
			w := New(f)
			assert.Equal(t, AtFileHeader, w.State())

			var tags []uint16
			for ev := range w.Events() {
				assert.True(t, ev.IsEvent)
				assert.Empty(t, ev.Error)
				tags = append(tags, ev.Tag)
			}
			assert.Equal(t, []uint16{1, 2, 3}, tags)
			assert.Equal(t, Done, w.State())
			assert.NoError(t, w.Err())
			assert.Zero(t, w.TrailingBytes())
			assert.Equal(t, uint32(4), w.Version())

			bh, ok := w.CurrentBlock()
			require.True(t, ok)
			assert.True(t, bh.IsLast)
			assert.Empty(t, bh.Events)
			assert.Equal(t, uint32(3), w.EventsRead())

			_, ok = w.FileHeader()
			assert.False(t, ok)
			_, ok = w.NextTopLevelEvent()
			assert.False(t, ok)
		})
	}
}

func TestEventPositions(t *testing.T) {
	f := open(t, binary.BigEndian, testutil.Block{Last: true, Events: threeEvents()}.Words())
	w := New(f)

	ev, ok := w.NextTopLevelEvent()
	require.True(t, ok)
	assert.Equal(t, AtChildStructure, w.State())
	assert.Equal(t, int64(32), ev.Pos)
	assert.Equal(t, int64(40), ev.DataPos)
	assert.Equal(t, uint32(2), ev.DataLen)

	ev, ok = w.NextTopLevelEvent()
	require.True(t, ok)
	assert.Equal(t, int64(48), ev.Pos)
	assert.Equal(t, format.TypeFloat32, ev.DataType)
}

func TestMultipleBlocksAndTrailingBytes(t *testing.T) {
	events := threeEvents()
	words := testutil.Concat(
		testutil.Block{Number: 1, Events: events[:2]}.Words(),
		testutil.Block{Number: 2, Last: true, Events: events[2:]}.Words(),
		[]uint32{0xdeadbeef, 0xcafef00d},
	)
	w := New(open(t, binary.BigEndian, words))

	var places []uint32
	var n int
	for range w.Events() {
		bh, _ := w.CurrentBlock()
		places = append(places, bh.Place)
		n++
	}
	assert.Equal(t, 3, n)
	assert.Equal(t, []uint32{1, 1, 2}, places)
	assert.Equal(t, Done, w.State())
	assert.Equal(t, int64(8), w.TrailingBytes())
}

func TestEndOfFileWithoutLastBlock(t *testing.T) {
	w := New(open(t, binary.BigEndian, testutil.Block{Events: threeEvents()}.Words()))
	n := 0
	for range w.Events() {
		n++
	}
	assert.Equal(t, 3, n)
	assert.Equal(t, Done, w.State())
	assert.Zero(t, w.TrailingBytes())
}

func TestNextBlockSkipsEvents(t *testing.T) {
	events := threeEvents()
	words := testutil.Concat(
		testutil.Block{Number: 1, Events: events[:2]}.Words(),
		testutil.Block{Number: 2, Last: true, Events: events[2:]}.Words(),
	)
	w := New(open(t, binary.BigEndian, words))

	require.True(t, w.NextBlock())
	require.True(t, w.NextBlock())
	bh, _ := w.CurrentBlock()
	assert.Equal(t, uint32(2), bh.Place)

	ev, ok := w.NextTopLevelEvent()
	require.True(t, ok)
	assert.Equal(t, uint16(3), ev.Tag)
	assert.False(t, w.NextBlock())
	assert.Equal(t, Done, w.State())
}

func TestEventCountMismatch(t *testing.T) {
	block := testutil.Block{Last: true, Events: threeEvents(), HasCount: true, EventCount: 5}
	w := New(open(t, binary.BigEndian, block.Words()))

	require.True(t, w.NextBlock())
	bh, ok := w.CurrentBlock()
	require.True(t, ok)
	assert.Contains(t, bh.Error, "declares 5 events, found 3")
	require.Len(t, bh.Events, 3)
	assert.Equal(t, uint16(2), bh.Events[1].Tag)

	n := 0
	for range w.Events() {
		n++
	}
	assert.Equal(t, 3, n)
}

func TestResyncAfterOverrun(t *testing.T) {
	good := threeEvents()
	corrupt := []uint32{0x1000, 0x00010100}
	block := testutil.Block{Last: true, Events: [][]uint32{good[0], corrupt, good[2]}}

	var logBuf bytes.Buffer
	logger := zerolog.New(&logBuf).Level(zerolog.DebugLevel)
	w := New(open(t, binary.BigEndian, block.Words()), WithLogger(logger))

	var got []format.EvioHeader
	for ev := range w.Events() {
		got = append(got, ev)
	}
	require.Len(t, got, 3)
	assert.Empty(t, got[0].Error)
	assert.Contains(t, got[1].Error, "overruns block")
	assert.Equal(t, uint16(3), got[2].Tag)
	assert.Empty(t, got[2].Error)
	assert.Equal(t, Done, w.State())
	assert.Contains(t, logBuf.String(), "resync")
}

func TestResyncToBlockEnd(t *testing.T) {
	block := testutil.Block{Last: true, Events: [][]uint32{{0x1000, 0, 0, 0}}, HasCount: true, EventCount: 1}
	w := New(open(t, binary.BigEndian, block.Words()))

	ev, ok := w.NextTopLevelEvent()
	require.True(t, ok)
	assert.NotEmpty(t, ev.Error)

	_, ok = w.NextTopLevelEvent()
	assert.False(t, ok)
	assert.Equal(t, Done, w.State())
}

func TestZeroLengthEvent(t *testing.T) {
	good := threeEvents()
	block := testutil.Block{Last: true, Events: [][]uint32{{0}, good[1]}}
	w := New(open(t, binary.BigEndian, block.Words()))

	ev, ok := w.NextTopLevelEvent()
	require.True(t, ok)
	assert.Contains(t, ev.Error, "length 0")

	ev, ok = w.NextTopLevelEvent()
	require.True(t, ok)
	assert.Equal(t, uint16(2), ev.Tag)
}

func TestV6File(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian} {
		t.Run(order.String(), func(t *testing.T) {
			events := threeEvents()
			words := testutil.Concat(
				testutil.FileHeader(2),
				testutil.Record{Number: 1, Register1: 0x0000000100000002, UserHeader: []byte("run"), Events: events[:2]}.Words(order),
				testutil.Record{Number: 2, Last: true, Compression: format.CompressionGzip, Events: events[2:]}.Words(order),
			)
			w := New(open(t, order, words))

			var tags []uint16
			var records []uint32
			for ev := range w.Events() {
				tags = append(tags, ev.Tag)
				rh, ok := w.CurrentRecord()
				require.True(t, ok)
				records = append(records, rh.Place)
				assert.Equal(t, uint64(0x0000000100000002), rh.Register1)
				assert.Equal(t, uint32(1), rh.UserHeaderPadding)
			}
			assert.Equal(t, []uint16{1, 2}, tags)
			assert.Equal(t, []uint32{1, 1}, records)
			assert.Equal(t, Done, w.State())
			assert.Equal(t, uint32(6), w.Version())

			fh, ok := w.FileHeader()
			require.True(t, ok)
			assert.Equal(t, format.FileTypeEvio, fh.FileType)
			assert.Equal(t, uint32(2), fh.RecordCount)

			rh, ok := w.CurrentRecord()
			require.True(t, ok)
			assert.True(t, rh.IsLast)
			assert.True(t, rh.Compressed())
			assert.Equal(t, "gzip", rh.CompressionType.String())
		})
	}
}

func TestUnsupportedVersion(t *testing.T) {
	for _, v := range []uint32{0, 1, 3, 5, 7} {
		words := testutil.Block{Last: true, Events: threeEvents()}.Words()
		words[format.BlockInfoWord] = v
		w := New(open(t, binary.BigEndian, words))

		_, ok := w.NextTopLevelEvent()
		assert.False(t, ok)
		assert.Equal(t, Error, w.State())
		assert.True(t, errors.Is(w.Err(), format.ErrUnsupportedVersion), "version %d", v)
	}
}

func TestBadBlockMagic(t *testing.T) {
	words := testutil.Block{Last: true, Events: threeEvents()}.Words()
	words[format.BlockMagicWord] = 0x12345678
	w := New(open(t, binary.BigEndian, words))

	assert.False(t, w.NextBlock())
	assert.Equal(t, Error, w.State())
	assert.True(t, errors.Is(w.Err(), ErrNoBlock))
	assert.True(t, errors.Is(w.Err(), format.ErrBadMagic))
}

func TestBlockPastEndOfFile(t *testing.T) {
	words := testutil.Block{Last: true, Events: threeEvents()}.Words()
	words[format.BlockLengthWord] += 4
	w := New(open(t, binary.BigEndian, words))

	n := 0
	for range w.Events() {
		n++
	}
	assert.Equal(t, 3, n)
	bh, _ := w.CurrentBlock()
	assert.Contains(t, bh.Error, "past end of file")
	assert.Zero(t, w.TrailingBytes())
}

func TestEventsEarlyBreak(t *testing.T) {
	w := New(open(t, binary.BigEndian, testutil.Block{Last: true, Events: threeEvents()}.Words()))
	for range w.Events() {
		break
	}
	ev, ok := w.NextTopLevelEvent()
	require.True(t, ok)
	assert.Equal(t, uint16(2), ev.Tag)
}

func TestNextEventStaysInBlock(t *testing.T) {
	events := threeEvents()
	words := testutil.Concat(
		testutil.Block{Number: 1, Events: events[:2]}.Words(),
		testutil.Block{Number: 2, Last: true, Events: events[2:]}.Words(),
	)
	w := New(open(t, binary.BigEndian, words))

	_, ok := w.NextEvent()
	assert.False(t, ok, "no block loaded yet")

	var perBlock []int
	for w.NextBlock() {
		n := 0
		for {
			if _, ok := w.NextEvent(); !ok {
				break
			}
			n++
		}
		assert.Equal(t, AtBlockOrRecordHeader, w.State())
		perBlock = append(perBlock, n)
	}
	assert.Equal(t, []int{2, 1}, perBlock)
	assert.Equal(t, Done, w.State())
}

func TestDictionaryNotCounted(t *testing.T) {
	dict := testutil.Bank(0, format.TypeCharStar8, 0, 0, testutil.Chars(binary.BigEndian, "<xmlDict/>")...)
	events := append([][]uint32{dict}, threeEvents()...)
	words := testutil.Block{Last: true, Events: events, HasCount: true, EventCount: 3}.Words()
	words[format.BlockInfoWord] |= format.BlockInfoDictionaryBit
	w := New(open(t, binary.BigEndian, words))

	require.True(t, w.NextBlock())
	bh, _ := w.CurrentBlock()
	assert.True(t, bh.HasDictionary)
	assert.Empty(t, bh.Error)
	assert.Empty(t, bh.Events)
}

func TestStrayBytesAfterLastEvent(t *testing.T) {
	events := [][]uint32{testutil.Bank(1, format.TypeUint32, 0, 0, 10), {0xffffffff}}
	words := testutil.Block{Last: true, Events: events, HasCount: true, EventCount: 1}.Words()
	w := New(open(t, binary.BigEndian, words))

	n := 0
	for range w.Events() {
		n++
	}
	assert.Equal(t, 1, n)
	assert.Equal(t, Done, w.State())
	bh, _ := w.CurrentBlock()
	assert.Contains(t, bh.Error, "4 stray bytes after last event")
	assert.Empty(t, bh.Events)
}

func TestRecordsStartPastEndOfFile(t *testing.T) {
	words := testutil.Concat(
		testutil.FileHeader(1),
		testutil.Record{Number: 1, Last: true, Events: threeEvents()}.Words(binary.BigEndian),
	)
	words[format.FileHeaderLenWord] = 0x00ffffff
	w := New(open(t, binary.BigEndian, words))

	var tags []uint16
	for ev := range w.Events() {
		tags = append(tags, ev.Tag)
	}
	assert.Equal(t, []uint16{1, 2, 3}, tags)
	assert.Equal(t, Done, w.State())
	assert.NoError(t, w.Err())

	fh, ok := w.FileHeader()
	require.True(t, ok)
	assert.Contains(t, fh.Error, "past end of file")
	rh, _ := w.CurrentRecord()
	assert.Equal(t, int64(format.FileHeaderBytes), rh.FilePos)
}

func TestRecordsStartPastEndNoRecord(t *testing.T) {
	words := testutil.FileHeader(1)
	words[format.FileIndexArrayWord] = 4096
	w := New(open(t, binary.BigEndian, words))

	_, ok := w.NextTopLevelEvent()
	assert.False(t, ok)
	assert.Equal(t, Error, w.State())
	assert.True(t, errors.Is(w.Err(), ErrNoBlock))
	fh, _ := w.FileHeader()
	assert.Contains(t, fh.Error, "past end of file")
}
