package wrapprefix

import (
	"unicode/utf8"

	"github.com/dshills/softwrap/internal/annotation"
	"github.com/dshills/softwrap/internal/config"
	"github.com/dshills/softwrap/internal/detect"
	"github.com/dshills/softwrap/internal/engine/buffer"
	"github.com/dshills/softwrap/internal/measure"
)

// Context bundles the per-document state the engine operates on: the
// document, its annotation store, the prefix detector, the measurement
// surface, and the settings. One Context is created per document and
// destroyed with it; there is no package-level state.
type Context struct {
	Doc      *buffer.Buffer
	Store    *annotation.Store
	Detector detect.Detector
	Surface  *measure.Surface
	Settings config.Settings
}

// NewContext creates a per-document context. The detector defaults to the
// adaptive regexp detector; the surface is configured from the settings
// (fixed-pitch cell grid — call Surface.SetFace for variable pitch).
func NewContext(doc *buffer.Buffer, settings config.Settings) *Context {
	settings = settings.Normalize()
	return &Context{
		Doc:      doc,
		Store:    annotation.NewStore(),
		Detector: detect.NewAdaptive(),
		Surface: measure.NewSurface(
			measure.WithCellWidth(settings.CellWidth),
			measure.WithTabWidth(settings.TabWidth),
		),
		Settings: settings,
	}
}

// SetExtraIndent updates the extra-indent delta, clamped to the valid band.
// Annotations computed earlier keep their old widths until the host
// re-requests layout for their spans.
func (c *Context) SetExtraIndent(n int) {
	c.Settings.ExtraIndent = n
	c.Settings = c.Settings.Normalize()
}

// Scheduler walks requested document spans and attaches a width annotation
// to each line's leading region. It implements LayoutHandler.
type Scheduler struct {
	ctx *Context
}

// NewScheduler creates a scheduler over the given context.
func NewScheduler(ctx *Context) *Scheduler {
	return &Scheduler{ctx: ctx}
}

// Context returns the scheduler's per-document context.
func (s *Scheduler) Context() *Context {
	return s.ctx
}

// Annotate computes and attaches a width annotation for every physical line
// intersecting [start, end). The span is clamped to the document; an empty
// or inverted span performs zero iterations. Re-invoking over an overlapping
// span overwrites prior annotations in place, so the operation is
// idempotent and safe to interrupt between lines.
func (s *Scheduler) Annotate(start, end buffer.ByteOffset) {
	bounds := buffer.NewRange(0, s.ctx.Doc.Len())
	span := buffer.NewRange(start, end)
	if !span.IsValid() {
		return
	}
	span = span.Clamp(bounds)

	pos := span.Start
	for pos < span.End {
		line := s.ctx.Doc.LineSpanAt(pos)
		s.annotateLine(line)
		if line.End <= pos {
			break
		}
		pos = line.End
	}
}

// annotateLine derives the prefix for one line, measures its literal text,
// and writes the annotation at the line start.
func (s *Scheduler) annotateLine(line buffer.Range) {
	text := s.ctx.Doc.LineText(line.Start)

	base := s.ctx.Detector.DetectPrefix(text)
	prefix := Derive(base, s.ctx.Settings.ExtraIndent)

	// The measured string must be the literal document text under the
	// prefix, clamped to the line's true length: short or blank lines
	// yield an empty string and zero width, never an out-of-range read.
	literal := leadingRunes(text, utf8.RuneCountInString(prefix))
	width := s.ctx.Surface.MeasurePixels(literal)

	s.ctx.Store.Set(annotation.Width{
		Range:  buffer.NewRange(line.Start, line.Start+buffer.ByteOffset(len(literal))),
		Pixels: width,
	})
}

// ClearAll removes every width annotation in the document unconditionally.
// Used on mode teardown.
func (s *Scheduler) ClearAll() {
	s.ctx.Store.Clear()
}
