// Package detect extracts fill prefixes from lines of text. A fill prefix is
// the indentation, bullet, comment leader, or quote marker that should
// visually precede each wrapped continuation of a paragraph.
package detect

import (
	"fmt"
	"regexp"
)

// Detector returns the fill prefix for a single line of text.
// The result may be empty; it is recomputed per line and never cached.
type Detector interface {
	DetectPrefix(line string) string
}

// Func adapts a plain function to the Detector interface.
type Func func(string) string

// DetectPrefix calls f.
func (f Func) DetectPrefix(line string) string {
	return f(line)
}

// DefaultPattern matches leading whitespace followed by runs of common
// continuation markers (bullets, quote marks, comment leaders), each with
// its trailing whitespace. It always matches, possibly the empty string.
const DefaultPattern = `^[ \t]*(?:[-!|#%;>*·•‣⁃◦/]+[ \t]*)*`

// Adaptive detects fill prefixes with a configurable anchored pattern.
type Adaptive struct {
	re *regexp.Regexp
}

// NewAdaptive creates a detector using DefaultPattern.
func NewAdaptive() *Adaptive {
	return &Adaptive{re: regexp.MustCompile(DefaultPattern)}
}

// NewAdaptivePattern creates a detector with a custom pattern.
// The pattern should be anchored at the line start and must always match
// (the zero-width match yields an empty prefix).
func NewAdaptivePattern(pattern string) (*Adaptive, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("detect: compile pattern: %w", err)
	}
	return &Adaptive{re: re}, nil
}

// DetectPrefix returns the longest match of the pattern at the line start.
func (a *Adaptive) DetectPrefix(line string) string {
	loc := a.re.FindStringIndex(line)
	if loc == nil || loc[0] != 0 {
		return ""
	}
	return line[:loc[1]]
}
