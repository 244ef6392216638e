// Package measure renders text off-document and reports its exact on-screen
// width in device pixels.
package measure

import (
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Surface is a reusable off-document measurement surface. One Surface is
// created per document and reused for every measurement; allocating a fresh
// surface per call under redisplay pressure is the dominant cost risk, so
// reuse is required, not optional.
//
// A Surface measures raw literal text only. It never consults width
// annotations or other layout-affecting properties, so measuring can never
// feed back into layout.
type Surface struct {
	face      font.Face // non-nil in variable-pitch mode
	cellWidth int       // pixel width of one character cell (fixed pitch)
	tabWidth  int       // tab stop interval in cells
	scratch   []rune    // reusable decode buffer
}

// Option configures a Surface.
type Option func(*Surface)

// WithCellWidth sets the pixel width of one character cell in fixed-pitch
// mode. Values below 1 are raised to 1.
func WithCellWidth(px int) Option {
	return func(s *Surface) {
		if px < 1 {
			px = 1
		}
		s.cellWidth = px
	}
}

// WithTabWidth sets the tab stop interval in cells. Values below 1 are
// raised to 1.
func WithTabWidth(cells int) Option {
	return func(s *Surface) {
		if cells < 1 {
			cells = 1
		}
		s.tabWidth = cells
	}
}

// WithFace puts the surface in variable-pitch mode, measuring with the
// glyph advances of the given face.
func WithFace(face font.Face) Option {
	return func(s *Surface) {
		s.face = face
	}
}

// NewSurface creates a measurement surface. The default is fixed-pitch mode
// with a 1-pixel cell and 8-cell tab stops.
func NewSurface(opts ...Option) *Surface {
	s := &Surface{
		cellWidth: 1,
		tabWidth:  8,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// VariablePitch reports whether the surface measures with a font face.
func (s *Surface) VariablePitch() bool {
	return s.face != nil
}

// SetFace switches the surface to variable-pitch mode.
func (s *Surface) SetFace(face font.Face) {
	s.face = face
}

// SetFixedPitch switches the surface to fixed-pitch mode with the given
// cell pixel width.
func (s *Surface) SetFixedPitch(cellWidth int) {
	if cellWidth < 1 {
		cellWidth = 1
	}
	s.face = nil
	s.cellWidth = cellWidth
}

// MeasurePixels returns the on-screen width of the literal text in device
// pixels. The empty string is 0 without a measurement pass. Transient state
// is reset on every call; nothing leaks between measurements.
func (s *Surface) MeasurePixels(text string) int {
	if text == "" {
		return 0
	}

	s.scratch = s.scratch[:0]
	for _, r := range text {
		s.scratch = append(s.scratch, r)
	}

	if s.face != nil {
		return s.measureFace(s.scratch)
	}
	return s.measureCells(s.scratch)
}

// measureCells computes width on the fixed-pitch cell grid, expanding tabs
// to the next tab stop.
func (s *Surface) measureCells(runes []rune) int {
	col := 0
	for _, r := range runes {
		if r == '\t' {
			col += s.tabWidth - col%s.tabWidth
			continue
		}
		col += runewidth.RuneWidth(r)
	}
	return col * s.cellWidth
}

// measureFace sums glyph advances from the font face, rounding the total up
// to whole pixels so the renderer never under-reserves. Tabs advance to the
// next tab stop in space-advance units; missing glyphs fall back to the
// space advance.
func (s *Surface) measureFace(runes []rune) int {
	space, ok := s.face.GlyphAdvance(' ')
	if !ok || space <= 0 {
		space = fixed.I(1)
	}
	tab := space * fixed.Int26_6(s.tabWidth)

	var w fixed.Int26_6
	for _, r := range runes {
		if r == '\t' {
			w = (w/tab + 1) * tab
			continue
		}
		adv, ok := s.face.GlyphAdvance(r)
		if !ok {
			adv = space
		}
		w += adv
	}
	return w.Ceil()
}
