// Package renderer draws grid tables.
package renderer

import (
	"strings"

	"github.com/ryanlewis/mdgrid/internal/layout"
	"github.com/ryanlewis/mdgrid/internal/parser"
	"github.com/ryanlewis/mdgrid/internal/width"
)

// Render draws t as a grid table using the given inner column widths and
// returns the output lines without line terminators.
//
// Output structure:
//
//	+------+------------+   top border
//	| ID   | Name       |   header (may span several physical lines)
//	+======+============+   header separator
//	| A1   | 山田太郎   |   body row
//	+------+------------+   border after every body row
//
// Cells are wrapped to their column width and pipes inside cell text are
// escaped as \| so the output parses back to the same cell contents.
func Render(t *Table, inner []int) []string {
	if t == nil || len(inner) != t.Columns() {
		return nil
	}

	// Normalize widths once so borders and cell padding always agree
	spans := make([]int, len(inner))
	for i, w := range inner {
		spans[i] = layout.RenderedWidth(w)
	}

	out := make([]string, 0, 3+2*len(t.Body))
	out = append(out, border(t.Indent, spans, fillRule))
	out = appendRow(out, t.Indent, t.Header, spans)
	out = append(out, border(t.Indent, spans, fillHeader))
	for _, row := range t.Body {
		out = appendRow(out, t.Indent, row, spans)
		out = append(out, border(t.Indent, spans, fillRule))
	}
	return out
}

// border builds a horizontal rule such as "+----+======+".
func border(indent string, spans []int, fill rune) string {
	b := acquireBuilder()
	defer releaseBuilder(b)

	b.WriteString(indent)
	b.WriteRune(corner)
	for _, span := range spans {
		b.WriteString(strings.Repeat(string(fill), span))
		b.WriteRune(corner)
	}
	return b.String()
}

// appendRow wraps every cell of row and appends as many physical lines as
// the tallest cell needs. Shorter cells are padded with blank lines.
func appendRow(out []string, indent string, row []string, spans []int) []string {
	wrapped := make([][]string, len(spans))
	height := 1
	for i, span := range spans {
		var cell string
		if i < len(row) {
			cell = parser.EscapeCell(row[i])
		}
		wrapped[i] = Wrap(cell, span-2)
		height = max(height, len(wrapped[i]))
	}

	b := acquireBuilder()
	defer releaseBuilder(b)

	for line := 0; line < height; line++ {
		b.Reset()
		b.WriteString(indent)
		b.WriteRune(delimiter)
		for i, span := range spans {
			var text string
			if line < len(wrapped[i]) {
				text = wrapped[i][line]
			}
			b.WriteByte(' ')
			b.WriteString(width.Pad(text, span-2))
			b.WriteByte(' ')
			b.WriteRune(delimiter)
		}
		out = append(out, b.String())
	}
	return out
}
