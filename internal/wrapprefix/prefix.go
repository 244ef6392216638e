package wrapprefix

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Derive applies the extra-indent delta to a detected fill prefix.
//
// A positive extra appends that many copies of the fill character (the last
// rune of base, or a space when base is empty). A negative extra shortens
// the prefix to base's display width plus extra, in character cells, cutting
// only at grapheme cluster boundaries; results at or below zero cells are
// the empty string. Pure function of its inputs.
func Derive(base string, extra int) string {
	switch {
	case extra == 0:
		return base
	case extra > 0:
		fill := " "
		if base != "" {
			r, _ := utf8.DecodeLastRuneInString(base)
			fill = string(r)
		}
		return base + strings.Repeat(fill, extra)
	default:
		target := runewidth.StringWidth(base) + extra
		if target <= 0 {
			return ""
		}
		return truncateCells(base, target)
	}
}

// truncateCells returns the longest prefix of s whose display width does
// not exceed cells. A wide character straddling the limit is dropped rather
// than split mid-cell.
func truncateCells(s string, cells int) string {
	var end, width int
	state := -1
	rest := s
	for len(rest) > 0 {
		cluster, tail, _, next := uniseg.FirstGraphemeClusterInString(rest, state)
		w := runewidth.StringWidth(cluster)
		if width+w > cells {
			break
		}
		width += w
		end += len(cluster)
		rest = tail
		state = next
	}
	return s[:end]
}

// leadingRunes returns the first n runes of s, clamped to the length of s.
func leadingRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
