package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeInfoWordV4(t *testing.T) {
	w := uint32(4) | BlockInfoDictionaryBit | BlockInfoLastBit | uint32(EventPhysics)<<InfoEventTypeShift
	info := DecodeInfoWordV4(w)
	assert.Equal(t, uint32(4), info.Version)
	assert.True(t, info.HasDictionary)
	assert.True(t, info.IsLast)
	assert.False(t, info.HasFirstEvent)
	assert.Equal(t, EventPhysics, info.EventType)
}

func TestDecodeInfoWordV6(t *testing.T) {
	info := DecodeInfoWordV6(6 | RecordInfoLastBit | RecordInfoFirstEventBit)
	assert.Equal(t, uint32(6), info.Version)
	assert.True(t, info.IsLast)
	assert.True(t, info.HasFirstEvent)
	assert.False(t, info.HasDictionary)
}

// Bit 9 is "last record" in a record header but "has first event" in the
// file header. Using the wrong routine flips the meaning.
func TestFileInfoWordDoesNotShareRecordBits(t *testing.T) {
	w := uint32(6) | 0x200
	file := DecodeFileInfoWord(w)
	rec := DecodeInfoWordV6(w)
	assert.True(t, file.HasFirstEvent)
	assert.True(t, rec.IsLast)
	assert.False(t, rec.HasFirstEvent)

	file = DecodeFileInfoWord(6 | FileInfoTrailerIndexBit | 2<<InfoPad1Shift | uint32(HeaderEvioFile)<<InfoHeaderTypeShift)
	assert.True(t, file.HasTrailerWithIndex)
	assert.Equal(t, uint32(2), file.UserHeaderPadding)
	assert.Equal(t, HeaderEvioFile, file.HeaderType)
}

func TestDecodeInfoWordDispatch(t *testing.T) {
	w := uint32(0x4000 | 0x200)
	assert.Equal(t, DecodeInfoWordV4(w|4), DecodeInfoWord(w|4, 4))
	assert.Equal(t, DecodeInfoWordV6(w|6), DecodeInfoWord(w|6, 6))
	assert.Equal(t, uint32(6), VersionOf(0xdeadbe06))
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "control", EventControl.String())
	assert.Equal(t, "other", EventOther.String())
	assert.Equal(t, "unknown", EventType(7).String())
}
