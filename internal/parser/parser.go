// Package parser recognizes Markdown pipe-table rows and alignment rows.
package parser

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// minCells is the minimum number of cells a line must split into to count
	// as a table row
	minCells = 2
	// minWeight is the smallest sizing weight an alignment cell can carry
	minWeight = 1
)

var (
	// rowPattern captures the indent and the content between the outer pipes
	// of a line whose trailing whitespace has already been trimmed.
	rowPattern = regexp.MustCompile(`^(\s*)\|(.*)\|$`)

	// alignPattern matches a single alignment marker such as "---", ":--" or ":-:".
	alignPattern = regexp.MustCompile(`^:?-+:?$`)
)

// Row is a single pipe-table line split into its indent and cells.
type Row struct {
	// Indent is the literal whitespace before the leading pipe
	Indent string

	// Cells holds the trimmed, unescaped cell texts (always at least two)
	Cells []string
}

// ParseRow splits line into a Row.
// It returns false when the line is not shaped like "|...|" or yields fewer
// than two cells. An escaped pipe (\|) is cell content and is unescaped.
// The outer pipes always delimit, so "| a | b\|" has the cells "a" and "b\".
func ParseRow(line string) (Row, bool) {
	m := rowPattern.FindStringSubmatch(strings.TrimRightFunc(line, unicode.IsSpace))
	if m == nil {
		return Row{}, false
	}
	indent, content := m[1], m[2]

	cells := splitCells(content)
	if len(cells) < minCells {
		return Row{}, false
	}
	return Row{Indent: indent, Cells: cells}, true
}

// splitCells splits the inner content of a row on unescaped pipes.
// Both delimiters are ASCII, so the content is walked byte by byte and any
// other bytes, valid UTF-8 or not, are copied unchanged.
func splitCells(content string) []string {
	var (
		cells []string
		cur   strings.Builder
	)
	for i := 0; i < len(content); i++ {
		c := content[i]
		if c == '\\' && i+1 < len(content) && content[i+1] == '|' {
			cur.WriteByte('|')
			i++
			continue
		}
		if c == '|' {
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	return append(cells, strings.TrimSpace(cur.String()))
}

// ParseAlignment parses line as the alignment row of a table whose header has
// columns cells and the given indent. It returns one sizing weight per column,
// equal to the number of dashes in that column's marker.
func ParseAlignment(line string, columns int, indent string) ([]int, bool) {
	row, ok := ParseRow(line)
	if !ok || row.Indent != indent || len(row.Cells) != columns {
		return nil, false
	}

	weights := make([]int, len(row.Cells))
	for i, cell := range row.Cells {
		if !alignPattern.MatchString(cell) {
			return nil, false
		}
		weights[i] = max(strings.Count(cell, "-"), minWeight)
	}
	return weights, true
}

// Matches reports whether row belongs to a table with the given shape.
func (r Row) Matches(columns int, indent string) bool {
	return r.Indent == indent && len(r.Cells) == columns
}

// EscapeCell escapes literal pipes so the text survives inside a table cell.
func EscapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
