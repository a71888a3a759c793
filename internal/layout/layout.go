// Package layout decides how wide each grid-table column is.
//
// Columns come in two classes, derived from the dash count of the table's
// alignment row:
//   - Fixed (one dash): sized to the widest single-line content plus a safety
//     margin, so ordinary content never wraps
//   - Flexible (two or more dashes): never narrower than the header, and share
//     the remaining width in proportion to their dash counts
//
// A table whose columns are all fixed still grows to the target width, with
// every column treated as an equal-weight share on top of its fixed width.
// Fixed columns are never shrunk, so a table with wide fixed content can end
// up wider than the target.
package layout

import (
	"sort"

	"github.com/ryanlewis/mdgrid/internal/common"
)

// Class is the sizing class of a column.
type Class int

const (
	// Fixed columns are sized to their content plus the margin
	Fixed Class = iota
	// Flexible columns split the surplus width by weight
	Flexible
)

// ClassOf returns the class implied by a column weight.
func ClassOf(weight int) Class {
	if weight == 1 {
		return Fixed
	}
	return Flexible
}

// String returns "fixed" or "flexible".
func (c Class) String() string {
	if c == Fixed {
		return "fixed"
	}
	return "flexible"
}

// Params holds the process-wide sizing settings.
type Params struct {
	// TargetWidth is the desired sum of all column inner widths
	TargetWidth int
	// FixedMargin is added to the content width of every fixed column
	FixedMargin int
}

// Column describes one column of a table being sized.
type Column struct {
	Index  int
	Weight int

	// ContentMin is the widest single-line cell (header included) in display columns
	ContentMin int
	// HeaderMin is the display width of the header cell
	HeaderMin int

	// Inner is the final content width, excluding padding
	Inner int
}

// Class returns the column's sizing class.
func (c Column) Class() Class {
	return ClassOf(c.Weight)
}

// Plan is the outcome of sizing one table.
type Plan struct {
	Columns []Column

	// EffectiveTarget is the target actually used, after raising it to the
	// floor formed by fixed widths and flexible minimums
	EffectiveTarget int

	// FlexTarget is the total inner width handed to the flexible columns
	// (or to all columns when none is flexible)
	FlexTarget int
}

// Inner returns the inner width of every column in order.
func (p Plan) Inner() []int {
	out := make([]int, len(p.Columns))
	for i, c := range p.Columns {
		out[i] = c.Inner
	}
	return out
}

// Compute sizes the columns of a table.
// weights, contentMins and headerMins must all have one entry per column.
func Compute(weights, contentMins, headerMins []int, p Params) Plan {
	cols := make([]Column, len(weights))
	for i, w := range weights {
		cols[i] = Column{
			Index:      i,
			Weight:     w,
			ContentMin: contentMins[i],
			HeaderMin:  headerMins[i],
		}
	}

	var (
		fixedSum int
		flexIdx  []int
	)
	for i := range cols {
		if cols[i].Class() == Fixed {
			cols[i].Inner = max(cols[i].ContentMin+p.FixedMargin, 1)
			fixedSum += cols[i].Inner
		} else {
			flexIdx = append(flexIdx, i)
		}
	}

	if len(flexIdx) == 0 {
		// Everything is fixed: grow all columns evenly to the target
		ones := make([]int, len(cols))
		floors := make([]int, len(cols))
		for i := range cols {
			ones[i] = 1
			floors[i] = cols[i].Inner
		}
		effective := max(p.TargetWidth, fixedSum)
		for i, w := range Allocate(ones, floors, effective) {
			cols[i].Inner = w
		}
		return Plan{Columns: cols, EffectiveTarget: effective, FlexTarget: effective}
	}

	flexWeights := make([]int, len(flexIdx))
	flexMins := make([]int, len(flexIdx))
	floor := fixedSum
	for k, i := range flexIdx {
		flexWeights[k] = cols[i].Weight
		// The header of a flexible column must never wrap
		flexMins[k] = max(cols[i].HeaderMin, 1)
		floor += flexMins[k]
	}

	effective := max(p.TargetWidth, floor)
	flexTarget := effective - fixedSum
	for k, w := range Allocate(flexWeights, flexMins, flexTarget) {
		cols[flexIdx[k]].Inner = w
	}

	return Plan{Columns: cols, EffectiveTarget: effective, FlexTarget: flexTarget}
}

// Allocate distributes total across columns in proportion to weights, with
// each column starting from its minimum. It uses the largest-remainder
// method: every column first receives the floor of its exact share of the
// surplus, and the units left over go one at a time to the columns with the
// largest fractional remainder, then the largest weight, then the lowest index.
//
// Weights and minimums below 1 are treated as 1. When total is smaller than
// the sum of minimums, the minimums are returned.
func Allocate(weights, minimums []int, total int) []int {
	n := len(weights)
	out := make([]int, n)
	if n == 0 {
		return out
	}

	ws := make([]int, n)
	sumW, sumMin := 0, 0
	for i := range weights {
		ws[i] = max(weights[i], 1)
		out[i] = max(minimums[i], 1)
		sumW += ws[i]
		sumMin += out[i]
	}

	additional := max(total, sumMin) - sumMin
	if additional == 0 {
		return out
	}

	// Remainders share the denominator sumW, so the numerators compare exactly
	rems := make([]int, n)
	given := 0
	for i := range ws {
		share := additional * ws[i] / sumW
		rems[i] = additional * ws[i] % sumW
		out[i] += share
		given += share
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if rems[i] != rems[j] {
			return rems[i] > rems[j]
		}
		if ws[i] != ws[j] {
			return ws[i] > ws[j]
		}
		return i < j
	})

	for k := 0; given < additional; k++ {
		out[order[k%n]]++
		given++
	}
	return out
}

// RenderedWidth returns the width of a column including its padding.
func RenderedWidth(inner int) int {
	return max(inner+common.CellPadding, common.MinColumnWidth)
}
