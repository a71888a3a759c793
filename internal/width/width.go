// Package width measures text the way a terminal or a CJK-aware document
// renderer lays it out.
package width

import (
	"strings"

	"golang.org/x/text/width"
)

// Rune returns the display width of r: 2 for East Asian Wide and Fullwidth
// code points (CJK ideographs, Hangul syllables, fullwidth forms), 1 otherwise.
func Rune(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// String returns the display width of s, counted per code point.
func String(s string) int {
	w := 0
	for _, r := range s {
		w += Rune(r)
	}
	return w
}

// Pad appends spaces to s until its display width reaches target.
// s is returned unchanged when it is already at least that wide.
func Pad(s string, target int) string {
	gap := target - String(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
