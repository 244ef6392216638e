// Package wrapprefix computes adaptive indentation for soft-wrapped lines.
//
// For each physical line in a requested span it derives a fill prefix (the
// line's indentation, bullet, comment leader, or quote marker, adjusted by a
// configurable extra indent), measures the literal prefix text in device
// pixels, and attaches a width annotation the renderer uses to pad the start
// of wrapped continuation rows. Stored text is never modified.
//
// The pipeline runs lazily: the host layout engine invokes the Scheduler
// with explicit spans as regions become displayable, and the Mode type
// registers and unregisters that handler per document.
package wrapprefix
