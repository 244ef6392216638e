// Package main is a demo viewer for the softwrap engine. It soft-wraps a
// file at terminal width and pads wrapped continuation rows using the width
// annotations, with terminal cells as the pixel unit.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/softwrap/internal/config"
	"github.com/dshills/softwrap/internal/engine/buffer"
	"github.com/dshills/softwrap/internal/wrapprefix"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to JSON settings file")
	extra := flag.Int("extra", 0, "extra indent in cells")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("softwrap %s\n", version)
		return 0
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: softwrap [flags] <file>")
		flag.PrintDefaults()
		return 2
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	settings := config.Default()
	if *configPath != "" {
		settings, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	if *extra != 0 {
		settings.ExtraIndent = *extra
	}
	// The terminal is a fixed-pitch cell grid; one cell is the pixel unit.
	settings.VariablePitch = false
	settings.CellWidth = 1

	doc := buffer.New(string(data))
	ctx := wrapprefix.NewContext(doc, settings)
	sched := wrapprefix.NewScheduler(ctx)
	hook := &layoutHook{}
	mode := wrapprefix.NewMode(hook, sched)
	mode.Enable()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	v := &viewer{
		screen: screen,
		doc:    doc,
		ctx:    ctx,
		hook:   hook,
		mode:   mode,
	}
	v.loop()
	return 0
}

// layoutHook is the viewer's lazy layout capability: it holds the
// registered handler and forwards visible spans to it before each draw.
type layoutHook struct {
	handler wrapprefix.LayoutHandler
}

func (h *layoutHook) Register(lh wrapprefix.LayoutHandler) {
	h.handler = lh
}

func (h *layoutHook) Unregister(lh wrapprefix.LayoutHandler) {
	if h.handler == lh {
		h.handler = nil
	}
}

func (h *layoutHook) request(start, end buffer.ByteOffset) {
	if h.handler != nil {
		h.handler.Annotate(start, end)
	}
}

// viewer renders the document with soft wrapping and handles input.
type viewer struct {
	screen  tcell.Screen
	doc     *buffer.Buffer
	ctx     *wrapprefix.Context
	hook    *layoutHook
	mode    *wrapprefix.Mode
	topLine int
}

func (v *viewer) loop() {
	for {
		v.draw()

		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return
			}
		}
	}
}

// handleKey returns false when the viewer should exit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
		return false
	case ev.Rune() == 'a':
		v.mode.Toggle()
	case ev.Rune() == '+':
		v.ctx.SetExtraIndent(v.ctx.Settings.ExtraIndent + 1)
	case ev.Rune() == '-':
		v.ctx.SetExtraIndent(v.ctx.Settings.ExtraIndent - 1)
	case ev.Key() == tcell.KeyUp || ev.Rune() == 'k':
		if v.topLine > 0 {
			v.topLine--
		}
	case ev.Key() == tcell.KeyDown || ev.Rune() == 'j':
		if v.topLine < v.doc.LineCount()-1 {
			v.topLine++
		}
	}
	return true
}

func (v *viewer) draw() {
	v.screen.Clear()
	width, height := v.screen.Size()
	if width < 1 || height < 2 {
		v.screen.Show()
		return
	}

	// Request layout for the span that may become visible. This is the
	// lazy hook: annotations exist only for requested regions.
	lastLine := v.topLine + height
	if lastLine >= v.doc.LineCount() {
		lastLine = v.doc.LineCount() - 1
	}
	startSpan := v.doc.LineSpanAt(lineStart(v.doc, v.topLine))
	endSpan := v.doc.LineSpanAt(lineStart(v.doc, lastLine))
	v.hook.request(startSpan.Start, endSpan.End)

	row := 0
	for line := v.topLine; line < v.doc.LineCount() && row < height-1; line++ {
		span, err := v.doc.LineSpan(line)
		if err != nil {
			break
		}
		pad := 0
		if ann, ok := v.ctx.Store.At(span.Start); ok {
			pad = ann.Pixels // cell width 1: pixels are columns
		}
		row = v.drawWrapped(v.doc.LineText(span.Start), row, width, height-1, pad)
	}

	v.drawStatus(width, height)
	v.screen.Show()
}

// drawWrapped renders one logical line with soft wrapping, starting
// continuation rows at column pad. Returns the next free row.
func (v *viewer) drawWrapped(text string, row, width, maxRow, pad int) int {
	if pad > width-1 {
		pad = width - 1
	}
	tabWidth := v.ctx.Settings.TabWidth

	col := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if r == '\t' {
			col += tabWidth - col%tabWidth
			continue
		}
		if rw == 0 {
			continue
		}
		if col+rw > width {
			row++
			if row >= maxRow {
				return row
			}
			col = pad
		}
		v.screen.SetContent(col, row, r, nil, tcell.StyleDefault)
		col += rw
	}
	return row + 1
}

func (v *viewer) drawStatus(width, height int) {
	state := "off"
	if v.mode.Enabled() {
		state = "on"
	}
	status := fmt.Sprintf(" adaptive wrap: %s | extra indent: %d | a toggle  +/- indent  j/k scroll  q quit",
		state, v.ctx.Settings.ExtraIndent)

	style := tcell.StyleDefault.Reverse(true)
	col := 0
	for _, r := range status {
		if col >= width {
			break
		}
		v.screen.SetContent(col, height-1, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
	for ; col < width; col++ {
		v.screen.SetContent(col, height-1, ' ', nil, style)
	}
}

// lineStart returns the start offset of a 0-indexed line, clamped to the
// document.
func lineStart(doc *buffer.Buffer, line int) buffer.ByteOffset {
	span, err := doc.LineSpan(line)
	if err != nil {
		return doc.Len()
	}
	return span.Start
}
