package walker

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/joshuapare/eviokit/internal/buf"
	"github.com/joshuapare/eviokit/internal/format"
)

// ErrNotStrings indicates Strings was called on a node that does not hold charstar8 data.
var ErrNotStrings = errors.New("walker: node does not hold strings")

// Scanner steps through the direct children of one container node. The
// caller decides how deep to go by calling Descend again on a child.
type Scanner struct {
	src    Source
	logger zerolog.Logger
	parent format.EvioHeader
	kind   format.StructureKind
	cursor int64
	end    int64
	done   bool
}

// Descend returns a scanner over node's children. For a node inside the
// current block the scan stops at the block end, even when the node claims
// more.
func (w *Walker) Descend(node format.EvioHeader) *Scanner {
	limit := w.src.Size()
	if w.block != nil && node.Pos >= w.block.FilePos && node.Pos < w.blockEnd {
		limit = w.blockEnd
	}
	s := newScanner(w.src, node, limit)
	s.logger = w.logger
	return s
}

// NewScanner returns a scanner over node's children. A node that is not a
// container yields nothing.
func NewScanner(src Source, node format.EvioHeader) *Scanner {
	return newScanner(src, node, src.Size())
}

func newScanner(src Source, node format.EvioHeader, limit int64) *Scanner {
	s := &Scanner{
		src:    src,
		logger: zerolog.Nop(),
		parent: node,
		cursor: node.DataPos,
		end:    min(node.DataEnd(), limit),
	}
	kind, ok := node.DataType.ChildKind()
	s.kind = kind
	s.done = !ok
	return s
}

// Parent returns the node being scanned, including any problems found in
// its children so far.
func (s *Scanner) Parent() format.EvioHeader { return s.parent }

// Next returns the next child. A child that claims more room than its
// parent has left is returned with an error and ends the scan; the parent
// then carries the error and points at the child.
func (s *Scanner) Next() (format.EvioHeader, bool) {
	if s.done {
		return format.EvioHeader{}, false
	}
	hdrBytes := int64(s.kind.HeaderWords()) * format.WordSize
	if s.cursor+hdrBytes > s.end {
		if s.cursor < s.end {
			s.parent.AddError(fmt.Sprintf("%d stray bytes after last child", s.end-s.cursor))
		}
		s.done = true
		return format.EvioHeader{}, false
	}

	words, err := s.src.ReadWords(s.cursor, int(s.kind.HeaderWords()))
	if err != nil || len(words) < int(s.kind.HeaderWords()) {
		s.done = true
		return format.EvioHeader{}, false
	}
	var w1 uint32
	if len(words) > 1 {
		w1 = words[1]
	}
	child := format.DecodeStructure(s.kind, words[0], w1, s.cursor)

	next, spanErr := buf.WordSpanEnd(s.end, child.Pos, child.TotalWords())
	if spanErr != nil {
		child.AddError(fmt.Sprintf("%s overruns parent by %d bytes", child.Kind, child.End()-s.end))
	}
	if spanErr != nil || child.TotalWords() < int64(child.HeaderWords) {
		s.parent.AddError(fmt.Sprintf("child %s at %d: %s", child.Kind, child.Pos, child.Error))
		bad := child
		s.parent.ErrorChild = &bad
		s.logger.Warn().Int64("pos", child.Pos).Str("problem", child.Error).Msg("child structure")
		s.done = true
		return child, true
	}
	if child.Error != "" {
		s.logger.Warn().Int64("pos", child.Pos).Str("problem", child.Error).Msg("child structure")
	}
	s.cursor = next
	return child, true
}

// Strings decodes the payload of a charstar8 node.
func Strings(src Source, node format.EvioHeader) ([]string, error) {
	if node.DataType != format.TypeCharStar8 {
		return nil, fmt.Errorf("%w: %s", ErrNotStrings, node.DataType)
	}
	if node.DataLen == 0 {
		return nil, nil
	}
	data, err := src.Bytes(node.DataPos, int(node.DataLen)*format.WordSize)
	if err != nil {
		return nil, err
	}
	return format.DecodeStrings(data)
}
