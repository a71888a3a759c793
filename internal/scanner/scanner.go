// Package scanner walks a Markdown document line by line, converting pipe
// tables to grid tables while leaving everything else alone.
//
// The scanner is a state machine driven by a line cursor:
//
//	Normal ──(fence open)──▶ InFence ──(matching close)──▶ Normal
//	Normal ──(grid border)──▶ InGrid ──(other line)──▶ Normal
//
// In Normal state a line that starts a pipe-table block (header row,
// alignment row, one or more body rows of the same shape) is replaced by the
// rendered grid table and the cursor jumps past the block. Lines inside a
// fence are never inspected for tables. An unterminated fence simply runs to
// the end of the document.
//
// Grid tables already in the document are copied through untouched: a
// wrapped cell can put a row of dashes on a physical line of its own, which
// would otherwise read as a pipe table's alignment row.
package scanner

import (
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/ryanlewis/mdgrid/internal/common"
	"github.com/ryanlewis/mdgrid/internal/debug"
	"github.com/ryanlewis/mdgrid/internal/layout"
	"github.com/ryanlewis/mdgrid/internal/parser"
	"github.com/ryanlewis/mdgrid/internal/renderer"
)

// state is the scanner state.
type state int

const (
	stateNormal state = iota
	stateInFence
	stateInGrid
)

// gridBorder matches a grid table border or header separator such as
// "+----+----+" or "  +====+====+", after trailing whitespace is trimmed.
var gridBorder = regexp.MustCompile(`^\s*\+(?:[-=]+\+)+$`)

// fence records the opening marker of the code fence being skipped.
type fence struct {
	marker rune
	length int
}

// Options configures a scan.
type Options struct {
	// Params holds the column sizing settings
	Params layout.Params

	// Debug receives trace events; nil disables tracing
	Debug *debug.Session
}

// Result is the outcome of scanning a document.
type Result struct {
	// Lines is the converted document
	Lines []string

	// Changed is set when at least one table rendered differently from its source
	Changed bool

	// Tables is the number of pipe-table blocks found
	Tables int
}

// Scan converts every pipe table in lines outside code fences.
func Scan(lines []string, opts Options) Result {
	var startTime time.Time
	if opts.Debug != nil {
		startTime = time.Now()
	}

	res := Result{Lines: make([]string, 0, len(lines))}
	st := stateNormal
	var (
		open      fence
		gridStart int
	)

	for i := 0; i < len(lines); {
		line := lines[i]

		switch st {
		case stateInFence:
			if closesFence(line, open) {
				opts.Debug.Emit("fence", "Close", debug.FenceData{
					Line: i, Marker: string(open.marker), Length: open.length,
				})
				st = stateNormal
			}
			res.Lines = append(res.Lines, line)
			i++
			continue

		case stateInGrid:
			if isGridLine(line) {
				res.Lines = append(res.Lines, line)
				i++
				continue
			}
			opts.Debug.Emit("grid", "Skipped", debug.GridData{Line: gridStart, Lines: i - gridStart})
			// The line after a grid table is scanned normally
			st = stateNormal

		case stateNormal:
			if isGridBorder(line) {
				gridStart = i
				st = stateInGrid
				res.Lines = append(res.Lines, line)
				i++
				continue
			}

			if f, ok := opensFence(line); ok {
				opts.Debug.Emit("fence", "Open", debug.FenceData{
					Line: i, Marker: string(f.marker), Length: f.length,
				})
				open = f
				st = stateInFence
				res.Lines = append(res.Lines, line)
				i++
				continue
			}

			if table, consumed, ok := detectTable(lines, i); ok {
				res.Tables++
				opts.Debug.Emit("table", "Detected", debug.TableDetectedData{
					Line:     i,
					Columns:  table.Columns(),
					BodyRows: len(table.Body),
					Indent:   table.Indent,
					Weights:  table.Weights,
				})

				rendered := convertTable(table, i, opts)
				changed := !slices.Equal(rendered, lines[i:i+consumed])
				opts.Debug.Emit("table", "Rendered", debug.TableRenderedData{
					Line:        i,
					SourceLines: consumed,
					OutputLines: len(rendered),
					Changed:     changed,
				})

				res.Changed = res.Changed || changed
				res.Lines = append(res.Lines, rendered...)
				i += consumed
				continue
			}

			res.Lines = append(res.Lines, line)
			i++
		}
	}

	if st == stateInGrid {
		opts.Debug.Emit("grid", "Skipped", debug.GridData{Line: gridStart, Lines: len(lines) - gridStart})
	}

	if opts.Debug != nil {
		opts.Debug.Emit("scan", "End", debug.ScanEndData{
			Tables:    res.Tables,
			Changed:   res.Changed,
			ElapsedUs: time.Since(startTime).Microseconds(),
		})
	}
	return res
}

func isGridBorder(line string) bool {
	return gridBorder.MatchString(strings.TrimRightFunc(line, unicode.IsSpace))
}

// isGridLine reports whether line continues a grid table: another border or
// a row starting with a pipe.
func isGridLine(line string) bool {
	if isGridBorder(line) {
		return true
	}
	return strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), "|")
}

// opensFence reports whether line opens a code fence: optional leading
// whitespace followed by at least three backticks or three tildes.
func opensFence(line string) (fence, bool) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if trimmed == "" {
		return fence{}, false
	}
	marker := rune(trimmed[0])
	if marker != '`' && marker != '~' {
		return fence{}, false
	}
	n := len(trimmed) - len(strings.TrimLeft(trimmed, string(marker)))
	if n < common.MinFenceLength {
		return fence{}, false
	}
	return fence{marker: marker, length: n}, true
}

// closesFence reports whether line closes the open fence: nothing but the
// same marker character, repeated at least as often as in the opening line.
func closesFence(line string, open fence) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < open.length {
		return false
	}
	return strings.Trim(trimmed, string(open.marker)) == ""
}

// detectTable tries to read a pipe-table block starting at lines[start].
// It returns the table and the number of source lines it spans.
func detectTable(lines []string, start int) (*renderer.Table, int, bool) {
	if start+2 >= len(lines) {
		return nil, 0, false
	}

	header, ok := parser.ParseRow(lines[start])
	if !ok {
		return nil, 0, false
	}
	columns := len(header.Cells)

	weights, ok := parser.ParseAlignment(lines[start+1], columns, header.Indent)
	if !ok {
		return nil, 0, false
	}

	var body [][]string
	end := start + 2
	for ; end < len(lines); end++ {
		row, ok := parser.ParseRow(lines[end])
		if !ok || !row.Matches(columns, header.Indent) {
			break
		}
		body = append(body, row.Cells)
	}
	if len(body) == 0 {
		return nil, 0, false
	}

	return &renderer.Table{
		Indent:  header.Indent,
		Header:  header.Cells,
		Body:    body,
		Weights: weights,
	}, end - start, true
}

// convertTable sizes and renders one table.
func convertTable(table *renderer.Table, line int, opts Options) []string {
	contentMins, headerMins := table.ContentWidths()
	plan := layout.Compute(table.Weights, contentMins, headerMins, opts.Params)

	if opts.Debug != nil {
		classes := make([]string, len(plan.Columns))
		for i, c := range plan.Columns {
			classes[i] = c.Class().String()
		}
		opts.Debug.Emit("alloc", "Widths", debug.AllocData{
			Line:            line,
			Weights:         table.Weights,
			Classes:         classes,
			ContentMins:     contentMins,
			HeaderMins:      headerMins,
			Inner:           plan.Inner(),
			TargetWidth:     opts.Params.TargetWidth,
			FixedMargin:     opts.Params.FixedMargin,
			EffectiveTarget: plan.EffectiveTarget,
			FlexTarget:      plan.FlexTarget,
		})
	}

	return renderer.Render(table, plan.Inner())
}
