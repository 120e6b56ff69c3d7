package evio

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/joshuapare/eviokit/internal/buf"
	"github.com/joshuapare/eviokit/internal/format"
	"github.com/joshuapare/eviokit/internal/logctx"
	"github.com/joshuapare/eviokit/internal/mmfile"
)

// window is one bounded read-only view of the file.
type window struct {
	off   int64
	data  []byte
	unmap mmfile.Unmap
}

// File is an opened EVIO container split into windows of at most
// MaxWindowSize bytes, with word access by absolute byte offset.
//
// Reads may run concurrently. SetByteOrder takes the write lock and so
// waits for in-flight reads.
type File struct {
	mu        sync.RWMutex
	order     binary.ByteOrder
	f         *os.File
	windows   []window
	size      int64
	maxWindow int64
	extra     int
	closed    bool
	logger    zerolog.Logger
}

// Open maps the file at path. See OpenContext.
func Open(path string, opts *OpenOptions) (*File, error) {
	return OpenContext(context.Background(), path, opts)
}

// OpenContext maps the file at path into read-only windows. Mapping is the
// only step that touches the disk; all later reads are memory accesses.
func OpenContext(ctx context.Context, path string, opts *OpenOptions) (*File, error) {
	logger := resolveLogger(ctx, opts)
	maxWindow, err := opts.windowSize()
	if err != nil {
		return nil, accessErr("open", -1, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, accessErr("open", -1, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, accessErr("stat", -1, err)
	}
	size := st.Size()
	if size < buf.WordSize {
		_ = f.Close()
		return nil, accessErr("open", -1, fmt.Errorf("%w: %d bytes", ErrFileTooSmall, size))
	}

	ef := &File{f: f, size: size, maxWindow: maxWindow, extra: int(size % buf.WordSize), logger: logger}
	for off := int64(0); off < size; off += maxWindow {
		n := min(maxWindow, size-off)
		data, unmap, mapErr := mmfile.MapRange(f, off, int(n))
		if mapErr != nil {
			_ = ef.release()
			return nil, accessErr("map window", off, mapErr)
		}
		ef.windows = append(ef.windows, window{off: off, data: data, unmap: unmap})
	}
	ef.order = ef.pickOrder(opts)

	logger.Debug().
		Str("path", path).
		Int64("size", size).
		Int("windows", len(ef.windows)).
		Int64("max_window", maxWindow).
		Str("order", ef.order.String()).
		Msg("opened evio file")
	return ef, nil
}

// FromBytes wraps an in-memory container. Windows are sub-slices of data;
// nothing is copied.
func FromBytes(data []byte, opts *OpenOptions) (*File, error) {
	maxWindow, err := opts.windowSize()
	if err != nil {
		return nil, accessErr("open", -1, err)
	}
	size := int64(len(data))
	if size < buf.WordSize {
		return nil, accessErr("open", -1, fmt.Errorf("%w: %d bytes", ErrFileTooSmall, size))
	}
	ef := &File{size: size, maxWindow: maxWindow, extra: int(size % buf.WordSize), logger: resolveLogger(context.Background(), opts)}
	for off := int64(0); off < size; off += maxWindow {
		end := min(off+maxWindow, size)
		ef.windows = append(ef.windows, window{off: off, data: data[off:end]})
	}
	ef.order = ef.pickOrder(opts)
	return ef, nil
}

func resolveLogger(ctx context.Context, opts *OpenOptions) zerolog.Logger {
	if opts != nil && opts.Logger != nil {
		return *opts.Logger
	}
	return logctx.FromContext(ctx)
}

// pickOrder uses the configured order or detects it from the magic word.
func (f *File) pickOrder(opts *OpenOptions) binary.ByteOrder {
	if opts != nil && opts.ByteOrder != nil {
		return opts.ByteOrder
	}
	order, ok := f.detectOrder()
	if !ok {
		f.logger.Debug().Msg("no magic number in word 7, assuming big-endian")
	}
	return order
}

func (f *File) detectOrder() (binary.ByteOrder, bool) {
	const magicPos = format.BlockMagicWord * buf.WordSize
	if f.size < magicPos+buf.WordSize {
		return binary.BigEndian, false
	}
	w := buf.Word(binary.BigEndian, f.span(magicPos, buf.WordSize))
	switch format.MagicNumber {
	case w:
		return binary.BigEndian, true
	case buf.Swap32(w):
		return binary.LittleEndian, true
	default:
		return binary.BigEndian, false
	}
}

// span returns n bytes at pos, copying only when they straddle windows.
// Callers hold the lock and have bounds-checked pos and n.
func (f *File) span(pos int64, n int) []byte {
	w := f.windows[pos/f.maxWindow]
	local := pos - w.off
	if local+int64(n) <= int64(len(w.data)) {
		return w.data[local : local+int64(n)]
	}
	out := make([]byte, n)
	for i := range out {
		p := pos + int64(i)
		wi := f.windows[p/f.maxWindow]
		out[i] = wi.data[p-wi.off]
	}
	return out
}

func (f *File) check(op string, pos int64) error {
	if f.closed {
		return accessErr(op, pos, ErrClosed)
	}
	if pos < 0 || pos >= f.size {
		return accessErr(op, pos, fmt.Errorf("%w: size %d", ErrOutOfBounds, f.size))
	}
	return nil
}

// IntAt reads the word at byte position pos. Within the last three bytes of
// the file the value is built from the bytes that exist, with the missing
// high-order bytes zero.
func (f *File) IntAt(pos int64) (uint32, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if err := f.check("read int", pos); err != nil {
		return 0, err
	}
	if rem := f.size - pos; rem < buf.WordSize {
		return buf.PartialWord(f.order, f.span(pos, int(rem))), nil
	}
	return buf.Word(f.order, f.span(pos, buf.WordSize)), nil
}

// ShortAt reads the 16-bit value at pos. A single trailing byte reads as its value.
func (f *File) ShortAt(pos int64) (uint16, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if err := f.check("read short", pos); err != nil {
		return 0, err
	}
	if f.size-pos < 2 {
		return uint16(buf.PartialWord(f.order, f.span(pos, 1))), nil
	}
	return buf.Half(f.order, f.span(pos, 2)), nil
}

// ByteAt reads the byte at pos.
func (f *File) ByteAt(pos int64) (byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if err := f.check("read byte", pos); err != nil {
		return 0, err
	}
	return f.span(pos, 1)[0], nil
}

// ReadWords reads up to n whole words starting at pos. Fewer words come back
// when the file ends first; that is not an error here, header decoders report
// it.
func (f *File) ReadWords(pos int64, n int) ([]uint32, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if err := f.check("read words", pos); err != nil {
		return nil, err
	}
	avail := (f.size - pos) / buf.WordSize
	if int64(n) > avail {
		n = int(avail)
	}
	words := make([]uint32, n)
	for i := range words {
		words[i] = buf.Word(f.order, f.span(pos+int64(i)*buf.WordSize, buf.WordSize))
	}
	return words, nil
}

// Bytes copies n bytes starting at pos, truncated at end of file.
func (f *File) Bytes(pos int64, n int) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if err := f.check("read bytes", pos); err != nil {
		return nil, err
	}
	if rem := f.size - pos; int64(n) > rem {
		n = int(rem)
	}
	out := make([]byte, n)
	copy(out, f.span(pos, n))
	return out, nil
}

// SetByteOrder changes how every window is interpreted. No data moves.
func (f *File) SetByteOrder(order binary.ByteOrder) {
	if order == nil {
		return
	}
	f.mu.Lock()
	f.order = order
	f.mu.Unlock()
}

// ByteOrder returns the current word byte order.
func (f *File) ByteOrder() binary.ByteOrder {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.order
}

// Size is the file size in bytes.
func (f *File) Size() int64 { return f.size }

// ExtraByteCount is the number of trailing bytes (0-3) that do not form a whole word.
func (f *File) ExtraByteCount() int { return f.extra }

// MaxWindowSize is the configured window bound in bytes.
func (f *File) MaxWindowSize() int64 { return f.maxWindow }

// WindowCount is the number of windows.
func (f *File) WindowCount() int { return len(f.windows) }

// WindowIndexOf returns the window holding the word at wordIndex, or -1 if
// the word lies outside the file.
func (f *File) WindowIndexOf(wordIndex int64) int {
	pos := wordIndex * buf.WordSize
	if wordIndex < 0 || pos >= f.size {
		return -1
	}
	return int(pos / f.maxWindow)
}

// WindowSize returns the size in bytes of window i, or 0 if there is none.
func (f *File) WindowSize(i int) int64 {
	if i < 0 || i >= len(f.windows) {
		return 0
	}
	return int64(len(f.windows[i].data))
}

// Logger returns the logger the file was opened with.
func (f *File) Logger() zerolog.Logger { return f.logger }

// Close releases every window and the descriptor. Safe to call twice.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	return f.release()
}

func (f *File) release() error {
	var first error
	for _, w := range f.windows {
		if w.unmap == nil {
			continue
		}
		if err := w.unmap(); err != nil && first == nil {
			first = accessErr("unmap window", w.off, err)
		}
	}
	f.windows = nil
	if f.f != nil {
		if err := f.f.Close(); err != nil && first == nil {
			first = accessErr("close", -1, err)
		}
		f.f = nil
	}
	return first
}
