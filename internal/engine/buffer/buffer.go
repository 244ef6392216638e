// Package buffer provides the document model: a string-backed text store
// with a line index, addressed by byte offsets.
package buffer

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// Buffer is a text store with line-span lookup by byte offset.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       string
	lineStarts []ByteOffset // offset of the first byte of each line
}

// New creates a buffer holding the given text.
func New(text string) *Buffer {
	b := &Buffer{}
	b.setTextLocked(text)
	return b
}

// Len returns the length of the document in bytes.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.text))
}

// String returns the entire document text.
func (b *Buffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Text returns the literal text within the given range.
func (b *Buffer) Text(r Range) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !r.IsValid() {
		return "", ErrRangeInvalid
	}
	if r.Start < 0 || r.End > ByteOffset(len(b.text)) {
		return "", ErrOffsetOutOfRange
	}
	return b.text[r.Start:r.End], nil
}

// LineCount returns the number of lines in the document.
// An empty document has one (empty) line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lineStarts)
}

// LineSpan returns the range of the given 0-indexed line, including its
// trailing newline if present.
func (b *Buffer) LineSpan(line int) (Range, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if line < 0 || line >= len(b.lineStarts) {
		return Range{}, ErrOffsetOutOfRange
	}
	return b.lineSpanLocked(line), nil
}

// LineAt returns the 0-indexed line containing the given offset.
// An offset at the document end belongs to the last line.
func (b *Buffer) LineAt(offset ByteOffset) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 || offset > ByteOffset(len(b.text)) {
		return 0, ErrOffsetOutOfRange
	}
	return b.lineAtLocked(offset), nil
}

// LineSpanAt returns the span of the physical line containing offset,
// including the trailing newline if present. Offsets outside the document
// are clamped to its bounds.
func (b *Buffer) LineSpanAt(offset ByteOffset) Range {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset > ByteOffset(len(b.text)) {
		offset = ByteOffset(len(b.text))
	}
	return b.lineSpanLocked(b.lineAtLocked(offset))
}

// LineText returns the content of the physical line containing offset,
// without its trailing newline.
func (b *Buffer) LineText(offset ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset > ByteOffset(len(b.text)) {
		offset = ByteOffset(len(b.text))
	}
	span := b.lineSpanLocked(b.lineAtLocked(offset))
	return strings.TrimSuffix(b.text[span.Start:span.End], "\n")
}

// Replace substitutes the text within r. The buffer itself performs the
// edit; display annotations are never adjusted here.
func (b *Buffer) Replace(r Range, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !r.IsValid() {
		return ErrRangeInvalid
	}
	if r.Start < 0 || r.End > ByteOffset(len(b.text)) {
		return ErrOffsetOutOfRange
	}
	b.setTextLocked(b.text[:r.Start] + text + b.text[r.End:])
	return nil
}

// SetText replaces the entire document content.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setTextLocked(text)
}

// setTextLocked replaces the content and rebuilds the line index.
// Must be called with the write lock held (or before the buffer escapes).
func (b *Buffer) setTextLocked(text string) {
	b.text = text
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			b.lineStarts = append(b.lineStarts, ByteOffset(i+1))
		}
	}
}

// lineAtLocked finds the line containing offset via binary search.
// Must be called with at least a read lock held.
func (b *Buffer) lineAtLocked(offset ByteOffset) int {
	// First line whose start is beyond offset, minus one.
	i := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	})
	return i - 1
}

// lineSpanLocked returns the span for a valid line index.
// Must be called with at least a read lock held.
func (b *Buffer) lineSpanLocked(line int) Range {
	start := b.lineStarts[line]
	end := ByteOffset(len(b.text))
	if line+1 < len(b.lineStarts) {
		end = b.lineStarts[line+1]
	}
	return Range{Start: start, End: end}
}
