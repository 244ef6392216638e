package buffer

import "fmt"

// ByteOffset is an absolute byte position in the document.
type ByteOffset int

// Range represents a byte range in the document.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start ByteOffset // Inclusive start position
	End   ByteOffset // Exclusive end position
}

// NewRange creates a new Range from start and end offsets.
func NewRange(start, end ByteOffset) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in bytes.
func (r Range) Len() ByteOffset {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if the range is valid (Start <= End).
func (r Range) IsValid() bool {
	return r.Start <= r.End
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(offset ByteOffset) bool {
	return offset >= r.Start && offset < r.End
}

// Overlaps returns true if this range overlaps with another range.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Clamp constrains the range to lie within bounds.
// An inverted result collapses to an empty range at the clamped start.
func (r Range) Clamp(bounds Range) Range {
	start := r.Start
	if start < bounds.Start {
		start = bounds.Start
	}
	if start > bounds.End {
		start = bounds.End
	}
	end := r.End
	if end > bounds.End {
		end = bounds.End
	}
	if end < start {
		end = start
	}
	return Range{Start: start, End: end}
}
