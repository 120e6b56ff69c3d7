package walker

import (
	"errors"
	"fmt"
	"iter"

	"github.com/rs/zerolog"

	"github.com/joshuapare/eviokit/internal/buf"
	"github.com/joshuapare/eviokit/internal/format"
)

// State is the position of a Walker in the container.
type State uint8

const (
	AtFileHeader State = iota
	AtBlockOrRecordHeader
	AtEventHeader
	AtChildStructure
	Done
	Error
)

func (s State) String() string {
	switch s {
	case AtFileHeader:
		return "file header"
	case AtBlockOrRecordHeader:
		return "block header"
	case AtEventHeader:
		return "event header"
	case AtChildStructure:
		return "child structure"
	case Done:
		return "done"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// ErrNoBlock indicates the walker found no block or record header where one
// must start.
var ErrNoBlock = errors.New("walker: no block header")

// Versions the walker understands: 4 (block headers) and 6 (file and record
// headers). Earlier versions keep a first-event offset where v4 keeps the
// event count, and 5 was never written.
const (
	minSupportedVersion = 4
	maxSupportedVersion = 6
)

// Option configures a Walker.
type Option func(*Walker)

// WithLogger sets the logger for structural warnings and resync messages.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Walker) { w.logger = l }
}

// Walker steps through the top-level events of a container, one block or
// record at a time. It never reads event payloads; nested structures are
// reached through Descend.
//
// A Walker is not safe for concurrent use. Several walkers may share one
// Source.
type Walker struct {
	src    Source
	logger zerolog.Logger
	state  State
	err    error

	version uint32
	file    *format.FileHeader
	block   *format.BlockHeader
	record  *format.RecordHeader

	blockEnd   int64 // end of the current block, clamped to the file
	nextBlock  int64 // declared start of the following block
	cursor     int64 // next event header in the current block
	eventsRead uint32
	trailing   int64
}

// New returns a walker positioned before the file header.
func New(src Source, opts ...Option) *Walker {
	w := &Walker{src: src, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State reports where the walker is.
func (w *Walker) State() State { return w.state }

// Err returns the error that put the walker in the Error state.
func (w *Walker) Err() error { return w.err }

// Version is the format version read from the first header, 0 before the
// walker has started.
func (w *Walker) Version() uint32 { return w.version }

// FileHeader returns the v6 file header once read.
func (w *Walker) FileHeader() (format.FileHeader, bool) {
	if w.file == nil {
		return format.FileHeader{}, false
	}
	return *w.file, true
}

// CurrentBlock returns the current block header, or the common part of the
// current record header for v6 files.
func (w *Walker) CurrentBlock() (format.BlockHeader, bool) {
	if w.block == nil {
		return format.BlockHeader{}, false
	}
	return *w.block, true
}

// CurrentRecord returns the current v6 record header.
func (w *Walker) CurrentRecord() (format.RecordHeader, bool) {
	if w.record == nil {
		return format.RecordHeader{}, false
	}
	return *w.record, true
}

// EventsRead is the number of events returned from the current block.
func (w *Walker) EventsRead() uint32 { return w.eventsRead }

// TrailingBytes is the number of bytes left after the last block once the
// walker is Done.
func (w *Walker) TrailingBytes() int64 { return w.trailing }

// Events iterates the remaining top-level events.
func (w *Walker) Events() iter.Seq[format.EvioHeader] {
	return func(yield func(format.EvioHeader) bool) {
		for {
			h, ok := w.NextTopLevelEvent()
			if !ok || !yield(h) {
				return
			}
		}
	}
}

// NextTopLevelEvent returns the next event, crossing block boundaries as
// needed. It returns false once the walker is Done or in Error. Structural
// problems do not stop the walk; they are described on the returned header
// and on the block.
func (w *Walker) NextTopLevelEvent() (format.EvioHeader, bool) {
	for {
		if h, ok := w.NextEvent(); ok {
			return h, true
		}
		if !w.NextBlock() {
			return format.EvioHeader{}, false
		}
	}
}

// NextEvent returns the next event of the current block. At the end of the
// block it returns false and leaves the walker at AtBlockOrRecordHeader;
// NextBlock moves on.
func (w *Walker) NextEvent() (format.EvioHeader, bool) {
	if w.state != AtEventHeader && w.state != AtChildStructure {
		return format.EvioHeader{}, false
	}
	if w.cursor+bankHeaderBytes > w.blockEnd {
		w.state = AtBlockOrRecordHeader
		return format.EvioHeader{}, false
	}

	h, next, resynced := w.readEvent(w.cursor, w.blockEnd)
	switch {
	case resynced:
		w.logResync(h.Pos, next, h.Error)
	case h.Error != "":
		w.logger.Warn().Int64("pos", h.Pos).Str("problem", h.Error).Msg("event header")
	}
	w.cursor = next
	w.eventsRead++
	w.state = AtChildStructure
	return h, true
}

// NextBlock moves to the next block or record header, skipping any events
// left in the current one. It returns false once the walker is Done or in
// Error.
func (w *Walker) NextBlock() bool {
	switch w.state {
	case Done, Error:
		return false
	case AtFileHeader:
		if !w.start() {
			return false
		}
	}

	if w.block != nil && w.block.IsLast {
		w.finish(w.block.FilePos + w.block.LengthBytes())
		return false
	}

	pos := w.nextBlock
	size := w.src.Size()
	if pos >= size {
		w.finish(size)
		return false
	}
	if size-pos < int64(w.headerWords())*format.WordSize {
		w.finish(pos)
		return false
	}
	return w.loadBlock(pos)
}

func (w *Walker) headerWords() int {
	if w.version >= format.FileHeaderMinVersion {
		return format.RecordHeaderWords
	}
	return format.BlockHeaderWords
}

// start reads the version from word 5 and, for v6, the file header.
func (w *Walker) start() bool {
	info, err := w.src.IntAt(format.BlockInfoWord * format.WordSize)
	if err != nil {
		return w.fail(fmt.Errorf("walker: reading version: %w", err))
	}
	w.version = format.VersionOf(info)
	if w.version < minSupportedVersion || w.version == 5 || w.version > maxSupportedVersion {
		return w.fail(fmt.Errorf("%w: %d", format.ErrUnsupportedVersion, w.version))
	}

	if w.version >= format.FileHeaderMinVersion {
		words, err := w.src.ReadWords(0, format.FileHeaderWords)
		if err != nil {
			return w.fail(fmt.Errorf("walker: reading file header: %w", err))
		}
		fh, err := format.DecodeFileHeader(words)
		if err != nil {
			return w.fail(err)
		}
		w.file = &fh
		w.nextBlock = fh.RecordsStart()
		if size := w.src.Size(); w.nextBlock > size {
			w.file.AddError(fmt.Sprintf("records start at %d, past end of file (%d bytes)", w.nextBlock, size))
			pos, ok := w.findRecord()
			if !ok {
				return w.fail(fmt.Errorf("%w: %s", ErrNoBlock, w.file.Error))
			}
			w.logResync(w.nextBlock, pos, "file header lengths exceed file")
			w.nextBlock = pos
		}
		if w.file.Error != "" {
			w.logger.Warn().Str("problem", w.file.Error).Msg("file header")
		}
	}

	w.logger.Debug().Uint32("version", w.version).Int64("first_block", w.nextBlock).Msg("walk started")
	w.state = AtBlockOrRecordHeader
	return true
}

func (w *Walker) loadBlock(pos int64) bool {
	words, err := w.src.ReadWords(pos, w.headerWords())
	if err != nil {
		return w.fail(fmt.Errorf("walker: reading block header at %d: %w", pos, err))
	}

	var (
		bh         *format.BlockHeader
		eventStart int64
		compressed bool
	)
	if w.version >= format.FileHeaderMinVersion {
		rh, err := format.DecodeRecordHeaderV6(words, w.src.ByteOrder())
		if err != nil {
			return w.fail(err)
		}
		w.record = &rh
		bh = &rh.BlockHeader
		eventStart = pos + rh.TotalBytes
		compressed = rh.Compressed()
	} else {
		h, err := format.DecodeBlockHeaderV4(words)
		if err != nil {
			return w.fail(err)
		}
		w.record = nil
		bh = &h
		eventStart = pos + int64(h.HeaderLen)*format.WordSize
	}
	bh.FilePos = pos

	if bh.Magic != format.MagicNumber {
		return w.fail(fmt.Errorf("%w at %d: %w", ErrNoBlock, pos, format.ErrBadMagic))
	}
	if bh.Length < bh.HeaderLen || bh.HeaderLen == 0 {
		return w.fail(fmt.Errorf("%w at %d: %s", ErrNoBlock, pos, bh.Error))
	}

	size := w.src.Size()
	end, err := buf.WordSpanEnd(size, pos, int64(bh.Length))
	if err != nil {
		bh.AddError(fmt.Sprintf("block extends %d bytes past end of file", pos+bh.LengthBytes()-size))
		end = size
	}
	eventStart = min(eventStart, end)

	w.block = bh
	w.blockEnd = end
	w.nextBlock = pos + bh.LengthBytes()
	w.cursor = eventStart
	w.eventsRead = 0
	w.state = AtEventHeader

	if compressed {
		w.logger.Debug().
			Int64("pos", pos).
			Str("compression", w.record.CompressionType.String()).
			Msg("skipping events of compressed record")
		w.cursor = end
	} else {
		w.diagnose(eventStart)
	}

	if bh.Error != "" {
		w.logger.Warn().Int64("pos", pos).Uint32("number", bh.Place).Str("problem", bh.Error).Msg("block header")
	}
	return true
}

// diagnose counts the events in the current block and, when the count does
// not match the header, keeps every event header on the block.
func (w *Walker) diagnose(start int64) {
	var events []format.EvioHeader
	pos := start
	for pos+bankHeaderBytes <= w.blockEnd {
		h, next, _ := w.readEvent(pos, w.blockEnd)
		events = append(events, h)
		pos = next
	}
	if pos < w.blockEnd {
		w.block.AddError(fmt.Sprintf("%d stray bytes after last event", w.blockEnd-pos))
	}
	found := uint32(len(events))
	// Writers differ on whether the dictionary event is counted.
	if found == w.block.EventCount || w.block.HasDictionary && found == w.block.EventCount+1 {
		return
	}
	w.block.AddError(fmt.Sprintf("header declares %d events, found %d", w.block.EventCount, len(events)))
	w.block.Events = events
}

// readEvent decodes the event at pos and returns where the next one starts.
// An event that does not fit is kept with an error, and the walk resumes at
// the next probable bank; resynced reports that case.
func (w *Walker) readEvent(pos, end int64) (h format.EvioHeader, next int64, resynced bool) {
	h, ok := readBank(w.src, pos)
	if !ok {
		return format.EvioHeader{Pos: pos, Kind: format.KindBank, IsEvent: true, Error: "unreadable event header"}, end, true
	}
	h.IsEvent = true

	if h.Len < 1 {
		return h, findBank(w.src, pos+format.WordSize, end), true
	}
	next, err := buf.WordSpanEnd(end, pos, h.TotalWords())
	if err != nil {
		h.AddError(fmt.Sprintf("event overruns block by %d bytes", h.End()-end))
		return h, findBank(w.src, pos+format.WordSize, end), true
	}
	return h, next, false
}

// findRecord scans word by word after the fixed part of the file header for
// the first word 7 holding the magic number.
func (w *Walker) findRecord() (int64, bool) {
	size := w.src.Size()
	for pos := int64(format.FileHeaderBytes); pos+format.RecordHeaderBytes <= size; pos += format.WordSize {
		magic, err := w.src.IntAt(pos + format.RecordMagicWord*format.WordSize)
		if err != nil {
			return 0, false
		}
		if magic == format.MagicNumber {
			return pos, true
		}
	}
	return 0, false
}

func (w *Walker) logResync(from, to int64, reason string) {
	w.logger.Debug().Int64("from", from).Int64("to", to).Str("reason", reason).Msg("resync")
}

func (w *Walker) finish(blockEnd int64) {
	size := w.src.Size()
	if blockEnd < size {
		w.trailing = size - blockEnd
	}
	w.state = Done
	w.logger.Debug().Int64("trailing_bytes", w.trailing).Msg("walk done")
}

func (w *Walker) fail(err error) bool {
	w.err = err
	w.state = Error
	w.logger.Warn().Err(err).Msg("walk stopped")
	return false
}
