package debug

import (
	"strconv"

	"github.com/ryanlewis/mdgrid/internal/layout"
)

// ClassifyColumns returns a label per column weight: "fixed" for a single
// dash, "flex:N" for N dashes.
func ClassifyColumns(weights []int) []string {
	labels := make([]string, len(weights))
	for i, w := range weights {
		if layout.ClassOf(w) == layout.Fixed {
			labels[i] = "fixed"
		} else {
			labels[i] = "flex:" + strconv.Itoa(w)
		}
	}
	return labels
}
