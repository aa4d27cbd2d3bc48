// Package lineindex translates between editor positions (UTF-16 line and
// character, per the LSP spec) and analyzer byte offsets (UTF-8) for a
// single document text.
package lineindex

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrOutOfBounds is returned when a position or offset falls outside the
// text the index was built from.
var ErrOutOfBounds = errors.New("lineindex: position out of bounds")

// Position is an editor-facing (line, character) pair. Character counts
// UTF-16 code units, matching the LSP wire format.
type Position struct {
	Line      uint32
	Character uint32
}

// rune16 records, for a single rune within a line, how many UTF-16 code
// units it occupies on the editor side and how many UTF-8 bytes it occupies
// on the analyzer side. Both tables are needed: the two widths diverge for
// any rune outside ASCII (e.g. "é" is 1 UTF-16 unit but 2 UTF-8 bytes; a
// rune outside the BMP is a UTF-16 surrogate pair, 2 units, but 4 bytes).
type rune16 struct {
	utf16Width uint8
	utf8Len    uint8
}

// Index maps between editor positions and analyzer byte offsets for one
// document text. It is built once per text in a single pass and is
// immutable thereafter (spec.md I4: asset texts never change, and the same
// holds for any text this index was constructed from).
type Index struct {
	lineStarts []uint32 // byte offset of the first byte of each line
	runes      [][]rune16
	textLen    uint32
}

// New builds a line index for text in one pass.
func New(text string) *Index {
	idx := &Index{
		lineStarts: []uint32{0},
		textLen:    uint32(len(text)),
	}

	var line []rune16
	var byteOffset uint32
	for _, r := range text {
		size := utf8.RuneLen(r)
		if size < 0 {
			size = 1
		}
		if r == '\n' {
			idx.runes = append(idx.runes, line)
			line = nil
			byteOffset += uint32(size)
			idx.lineStarts = append(idx.lineStarts, byteOffset)
			continue
		}
		w := utf16.RuneLen(r)
		if w < 1 {
			w = 1
		}
		line = append(line, rune16{utf16Width: uint8(w), utf8Len: uint8(size)})
		byteOffset += uint32(size)
	}
	idx.runes = append(idx.runes, line)

	return idx
}

// LineCount returns the number of lines in the indexed text.
func (idx *Index) LineCount() int {
	return len(idx.lineStarts)
}

// OffsetOfUTF16 converts an editor position (UTF-16 character count) to a
// UTF-8 byte offset. Per spec.md §4.1 and the "clamp-vs-error at EOL" design
// note, a character past the end of the line is clamped to end-of-line
// rather than rejected; clamped is true when clamping occurred so callers
// can warn without failing the request.
func (idx *Index) OffsetOfUTF16(pos Position) (offset uint32, clamped bool, err error) {
	line := int(pos.Line)
	if line < 0 || line >= len(idx.lineStarts) {
		return 0, false, ErrOutOfBounds
	}
	runes := idx.runes[line]
	offset = idx.lineStarts[line]

	remaining := pos.Character
	for _, r := range runes {
		if remaining == 0 {
			return offset, false, nil
		}
		if uint32(r.utf16Width) > remaining {
			// Position lands inside a surrogate pair; snap to its start.
			break
		}
		remaining -= uint32(r.utf16Width)
		offset += uint32(r.utf8Len)
	}
	if remaining > 0 {
		clamped = true
	}
	return offset, clamped, nil
}

// PositionOf converts a UTF-8 byte offset into an editor position. Total on
// any offset in [0, len(text)]; offsets past the end clamp to the last
// position of the text.
func (idx *Index) PositionOf(offset uint32) Position {
	if offset > idx.textLen {
		offset = idx.textLen
	}
	line := idx.lineOfOffset(offset)
	lineStart := idx.lineStarts[line]
	runes := idx.runes[line]

	var char uint32
	byteOffset := lineStart
	for _, r := range runes {
		byteLen := uint32(r.utf8Len)
		if byteOffset+byteLen > offset {
			break
		}
		byteOffset += byteLen
		char += uint32(r.utf16Width)
	}
	return Position{Line: uint32(line), Character: char}
}

// lineOfOffset finds the line containing offset via binary search over
// lineStarts.
func (idx *Index) lineOfOffset(offset uint32) int {
	lo, hi := 0, len(idx.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if idx.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
