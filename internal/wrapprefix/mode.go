package wrapprefix

import "github.com/dshills/softwrap/internal/engine/buffer"

// LayoutHandler receives spans that need wrap layout. The host layout
// engine invokes it synchronously, in line with redisplay, as regions
// become displayable or are edited.
type LayoutHandler interface {
	Annotate(start, end buffer.ByteOffset)
}

// LayoutHook is the capability the host layout engine exposes for lazy
// layout callbacks. The host holds the registered handler and calls it with
// explicit spans; registration is per document.
type LayoutHook interface {
	Register(h LayoutHandler)
	Unregister(h LayoutHandler)
}

// Mode toggles adaptive wrap indentation for one document.
//
// Enabling registers the scheduler with the host's layout hook; disabling
// unregisters it and strips every annotation, including ones for spans
// never re-requested since the last edit. Both transitions are idempotent.
type Mode struct {
	hook    LayoutHook
	sched   *Scheduler
	enabled bool
}

// NewMode creates a mode controller in the Disabled state.
func NewMode(hook LayoutHook, sched *Scheduler) *Mode {
	return &Mode{hook: hook, sched: sched}
}

// Enabled reports whether the mode is active.
func (m *Mode) Enabled() bool {
	return m.enabled
}

// Enable registers the scheduler with the layout hook.
// Enabling an enabled mode is a no-op.
func (m *Mode) Enable() {
	if m.enabled {
		return
	}
	m.hook.Register(m.sched)
	m.enabled = true
}

// Disable unregisters the scheduler and removes all annotations.
// Disabling a disabled mode is a no-op.
func (m *Mode) Disable() {
	if !m.enabled {
		return
	}
	m.hook.Unregister(m.sched)
	m.sched.ClearAll()
	m.enabled = false
}

// Toggle flips the mode state and reports the new state.
func (m *Mode) Toggle() bool {
	if m.enabled {
		m.Disable()
	} else {
		m.Enable()
	}
	return m.enabled
}
