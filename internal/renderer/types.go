package renderer

import (
	"github.com/ryanlewis/mdgrid/internal/parser"
	"github.com/ryanlewis/mdgrid/internal/width"
)

// Table is a pipe table detected in a document, ready to be sized and drawn.
// Every row has len(Header) cells and shares Indent.
type Table struct {
	// Indent is written verbatim before every output line
	Indent string

	// Header holds the unescaped header cell texts
	Header []string

	// Body holds the unescaped cell texts of each body row
	Body [][]string

	// Weights holds one sizing weight per column, taken from the alignment row
	Weights []int
}

// Columns returns the number of columns in the table.
func (t *Table) Columns() int {
	return len(t.Header)
}

// ContentWidths measures every column as it will be written, with pipes
// escaped. contentMins holds the widest cell of each column across header and
// body; headerMins holds the header cell widths.
func (t *Table) ContentWidths() (contentMins, headerMins []int) {
	n := t.Columns()
	contentMins = make([]int, n)
	headerMins = make([]int, n)
	for i, cell := range t.Header {
		w := width.String(parser.EscapeCell(cell))
		headerMins[i] = w
		contentMins[i] = w
	}
	for _, row := range t.Body {
		for i := 0; i < n && i < len(row); i++ {
			contentMins[i] = max(contentMins[i], width.String(parser.EscapeCell(row[i])))
		}
	}
	return contentMins, headerMins
}

// Border fill characters
const (
	fillRule   = '-'
	fillHeader = '='
	corner     = '+'
	delimiter  = '|'
)
