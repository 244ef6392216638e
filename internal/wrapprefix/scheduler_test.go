package wrapprefix

import (
	"reflect"
	"testing"

	"github.com/dshills/softwrap/internal/config"
	"github.com/dshills/softwrap/internal/engine/buffer"
)

func newTestContext(text string, extra int) *Context {
	settings := config.Default()
	settings.ExtraIndent = extra
	return NewContext(buffer.New(text), settings)
}

func TestAnnotateSingleLine(t *testing.T) {
	ctx := newTestContext("> quoted text that wraps\n", 0)
	sched := NewScheduler(ctx)

	sched.Annotate(0, ctx.Doc.Len())

	w, ok := ctx.Store.At(0)
	if !ok {
		t.Fatal("expected annotation at line start")
	}
	// Prefix "> " is 2 cells at the default 8px cell width.
	if w.Pixels != 16 {
		t.Errorf("expected 16 pixels, got %d", w.Pixels)
	}
	if w.Range != buffer.NewRange(0, 2) {
		t.Errorf("expected range [0:2), got %s", w.Range)
	}
}

func TestAnnotateExtraIndent(t *testing.T) {
	// Base prefix "  " with extra indent 2 derives "    ": four cells,
	// 32 pixels at 8px cells. The line is long enough, so the literal
	// covers four characters.
	ctx := newTestContext("  indented paragraph text\n", 2)
	sched := NewScheduler(ctx)

	sched.Annotate(0, ctx.Doc.Len())

	w, ok := ctx.Store.At(0)
	if !ok {
		t.Fatal("expected annotation")
	}
	if w.Pixels != 32 {
		t.Errorf("expected 32 pixels, got %d", w.Pixels)
	}
	if w.Range.Len() != 4 {
		t.Errorf("expected 4-byte literal range, got %s", w.Range)
	}
}

func TestAnnotateShortLineClamps(t *testing.T) {
	// A blank line cannot supply literal text for a 4-character derived
	// prefix: the substring clamps to empty and the width is zero.
	ctx := newTestContext("\n", 4)
	sched := NewScheduler(ctx)

	sched.Annotate(0, ctx.Doc.Len())

	w, ok := ctx.Store.At(0)
	if !ok {
		t.Fatal("expected annotation on blank line")
	}
	if w.Pixels != 0 {
		t.Errorf("expected 0 pixels, got %d", w.Pixels)
	}
	if !w.Range.IsEmpty() {
		t.Errorf("expected empty range, got %s", w.Range)
	}
}

func TestAnnotateMultipleLines(t *testing.T) {
	ctx := newTestContext("- first item\n  continuation\nplain\n", 0)
	sched := NewScheduler(ctx)

	sched.Annotate(0, ctx.Doc.Len())

	all := ctx.Store.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 annotations, got %d", len(all))
	}
	// "- " on line 0, "  " on line 1, "" on line 2.
	if all[0].Pixels != 16 || all[1].Pixels != 16 || all[2].Pixels != 0 {
		t.Errorf("unexpected widths: %d, %d, %d", all[0].Pixels, all[1].Pixels, all[2].Pixels)
	}
	if all[1].Range.Start != 13 {
		t.Errorf("expected second annotation at 13, got %d", all[1].Range.Start)
	}
}

func TestAnnotatePartialSpan(t *testing.T) {
	ctx := newTestContext("- one\n- two\n- three\n", 0)
	sched := NewScheduler(ctx)

	// Span covering only the second line (starts at 6).
	sched.Annotate(6, 12)

	if ctx.Store.Len() != 1 {
		t.Fatalf("expected 1 annotation, got %d", ctx.Store.Len())
	}
	if _, ok := ctx.Store.At(6); !ok {
		t.Error("expected annotation at second line start")
	}
}

func TestAnnotateMidLineStart(t *testing.T) {
	// A span starting mid-line still annotates from that line's start.
	ctx := newTestContext("> first\n> second\n", 0)
	sched := NewScheduler(ctx)

	sched.Annotate(3, 8)

	if _, ok := ctx.Store.At(0); !ok {
		t.Error("expected annotation at containing line start")
	}
}

func TestAnnotateEmptySpan(t *testing.T) {
	ctx := newTestContext("- item\n", 0)
	sched := NewScheduler(ctx)

	sched.Annotate(3, 3)
	sched.Annotate(5, 2)
	sched.Annotate(100, 200)

	if ctx.Store.Len() != 0 {
		t.Errorf("expected no annotations, got %d", ctx.Store.Len())
	}
}

func TestAnnotateIdempotent(t *testing.T) {
	ctx := newTestContext("- item one\n  > nested quote\n\nplain\n", 1)
	sched := NewScheduler(ctx)

	sched.Annotate(0, ctx.Doc.Len())
	first := ctx.Store.All()

	sched.Annotate(0, ctx.Doc.Len())
	second := ctx.Store.All()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-annotation changed results:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAnnotateOverwritesAfterEdit(t *testing.T) {
	ctx := newTestContext("  text\n", 0)
	sched := NewScheduler(ctx)

	sched.Annotate(0, ctx.Doc.Len())
	w, _ := ctx.Store.At(0)
	if w.Pixels != 16 {
		t.Fatalf("expected 16 pixels before edit, got %d", w.Pixels)
	}

	// Host edit deepens the indentation, then re-requests layout.
	if err := ctx.Doc.Replace(buffer.NewRange(0, 0), "  "); err != nil {
		t.Fatal(err)
	}
	sched.Annotate(0, ctx.Doc.Len())

	w, _ = ctx.Store.At(0)
	if w.Pixels != 32 {
		t.Errorf("expected 32 pixels after edit, got %d", w.Pixels)
	}
	if ctx.Store.Len() != 1 {
		t.Errorf("expected single annotation after re-layout, got %d", ctx.Store.Len())
	}
}

func TestClearAll(t *testing.T) {
	ctx := newTestContext("- a\n- b\n- c\n", 0)
	sched := NewScheduler(ctx)

	sched.Annotate(0, ctx.Doc.Len())
	if ctx.Store.Len() == 0 {
		t.Fatal("expected annotations before clear")
	}

	sched.ClearAll()
	if ctx.Store.Len() != 0 {
		t.Errorf("expected no annotations after ClearAll, got %d", ctx.Store.Len())
	}
}

func TestSetExtraIndentClamps(t *testing.T) {
	ctx := newTestContext("x\n", 0)
	ctx.SetExtraIndent(10000)
	if ctx.Settings.ExtraIndent != config.MaxExtraIndent {
		t.Errorf("expected clamp to %d, got %d", config.MaxExtraIndent, ctx.Settings.ExtraIndent)
	}
}

func TestAnnotateNoDetectorPrefix(t *testing.T) {
	// Plain text yields an empty base prefix; with zero extra indent the
	// annotation is an empty range with zero width.
	ctx := newTestContext("plain text\n", 0)
	sched := NewScheduler(ctx)

	sched.Annotate(0, ctx.Doc.Len())

	w, ok := ctx.Store.At(0)
	if !ok {
		t.Fatal("expected annotation")
	}
	if w.Pixels != 0 || !w.Range.IsEmpty() {
		t.Errorf("expected empty zero-width annotation, got %+v", w)
	}
}
