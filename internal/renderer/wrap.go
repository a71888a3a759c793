package renderer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ryanlewis/mdgrid/internal/width"
)

// unit is the smallest piece of text the wrapper places on a line: a single
// rune, or an escaped pipe which must not be split across lines. text is
// always a slice of the input, so invalid UTF-8 bytes pass through as-is.
type unit struct {
	text  string
	width int
	space bool
}

// splitUnits breaks text into wrapping units.
func splitUnits(text string) []unit {
	units := make([]unit, 0, len(text))
	for i := 0; i < len(text); {
		if strings.HasPrefix(text[i:], `\|`) {
			units = append(units, unit{text: `\|`, width: 2})
			i += 2
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		units = append(units, unit{text: text[i : i+size], width: width.Rune(r), space: unicode.IsSpace(r)})
		i += size
	}
	return units
}

// Wrap breaks text into the fewest lines whose display width does not exceed
// maxWidth, filling each line greedily. Whitespace at the start of a line is
// dropped and trailing whitespace is trimmed when a line is closed. A single
// unit wider than maxWidth still gets a line of its own.
//
// Wrap never returns an empty slice. When maxWidth is not positive, text is
// returned as the only line.
func Wrap(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}

	var (
		lines []string
		cur   strings.Builder
		curW  int
	)
	for _, u := range splitUnits(text) {
		if curW > 0 && curW+u.width > maxWidth {
			lines = append(lines, strings.TrimRightFunc(cur.String(), unicode.IsSpace))
			cur.Reset()
			curW = 0
		}
		if curW == 0 && u.space {
			continue
		}
		cur.WriteString(u.text)
		curW += u.width
	}

	if curW > 0 || len(lines) == 0 {
		lines = append(lines, strings.TrimRightFunc(cur.String(), unicode.IsSpace))
	}
	return lines
}
