package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, data []byte) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "range.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestMapRangeUnaligned(t *testing.T) {
	want := []byte{0xde, 0xad, 0xbe, 0xef, 0x42, 0x43}
	f := writeTemp(t, want)

	data, unmap, err := MapRange(f, 2, 3)
	require.NoError(t, err)
	require.Equal(t, want[2:5], data)
	require.NoError(t, unmap())
	require.NoError(t, unmap())
}

func TestMapRangeZeroLength(t *testing.T) {
	f := writeTemp(t, []byte{1, 2, 3, 4})
	data, unmap, err := MapRange(f, 0, 0)
	require.NoError(t, err)
	require.Empty(t, data)
	require.NoError(t, unmap())
}

func TestMapRangeInvalid(t *testing.T) {
	f := writeTemp(t, []byte{1, 2, 3, 4})
	_, _, err := MapRange(f, -1, 4)
	require.Error(t, err)
	_, _, err = MapRange(f, 2, 8)
	require.Error(t, err)
}
