// Package annotation stores display-only width annotations attached to
// document ranges. Annotations instruct the renderer to reserve pixel width
// before wrapped continuation rows; they never alter stored text.
package annotation

import (
	"sort"
	"sync"

	"github.com/dshills/softwrap/internal/engine/buffer"
)

// Width associates the prefix range of a line with a pixel width.
// The range covers the literal prefix bytes starting at the line start.
type Width struct {
	Range  buffer.Range
	Pixels int
}

// Store holds the width annotations for a single document.
// Annotations are keyed by range start, so re-annotating a line overwrites
// the previous annotation in place.
type Store struct {
	mu    sync.RWMutex
	spans map[buffer.ByteOffset]Width
}

// NewStore creates an empty annotation store.
func NewStore() *Store {
	return &Store{
		spans: make(map[buffer.ByteOffset]Width),
	}
}

// Set adds or replaces the annotation starting at w.Range.Start.
// Invalid ranges are ignored; negative widths clamp to zero.
func (s *Store) Set(w Width) {
	if !w.Range.IsValid() || w.Range.Start < 0 {
		return
	}
	if w.Pixels < 0 {
		w.Pixels = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.spans[w.Range.Start] = w
}

// At returns the annotation starting at the given offset.
func (s *Store) At(start buffer.ByteOffset) (Width, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.spans[start]
	return w, ok
}

// InRange returns the annotations whose start falls within r, sorted by
// start offset.
func (s *Store) InRange(r buffer.Range) []Width {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Width
	for start, w := range s.spans {
		if r.Contains(start) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Range.Start < out[j].Range.Start
	})
	return out
}

// All returns every annotation, sorted by start offset.
func (s *Store) All() []Width {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Width, 0, len(s.spans))
	for _, w := range s.spans {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Range.Start < out[j].Range.Start
	})
	return out
}

// Remove deletes the annotation starting at the given offset.
// Returns true if an annotation was removed.
func (s *Store) Remove(start buffer.ByteOffset) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.spans[start]; !ok {
		return false
	}
	delete(s.spans, start)
	return true
}

// Clear removes every annotation unconditionally, including stale ones left
// behind by edits that moved line starts.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spans = make(map[buffer.ByteOffset]Width)
}

// Len returns the number of stored annotations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.spans)
}
