package layout

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAllocate(t *testing.T) {
	tests := []struct {
		name     string
		weights  []int
		minimums []int
		total    int
		want     []int
	}{
		{"even_split", []int{1, 1}, []int{1, 1}, 10, []int{5, 5}},
		{"weighted", []int{2, 3}, []int{4, 4}, 20, []int{9, 11}},
		{"largest_remainder_first", []int{1, 2}, []int{1, 1}, 3, []int{1, 2}},
		{"remainder_tie_goes_to_heavier", []int{1, 3, 2}, []int{1, 1, 1}, 6, []int{1, 3, 2}},
		{"full_tie_goes_to_lower_index", []int{1, 1, 1}, []int{1, 1, 1}, 5, []int{2, 2, 1}},
		{"clamps_weights_and_minimums", []int{0, -1}, []int{0, 0}, 4, []int{2, 2}},
		{"total_below_minimums", []int{1}, []int{5}, 3, []int{5}},
		{"no_surplus", []int{2, 5}, []int{3, 4}, 7, []int{3, 4}},
		{"empty", nil, nil, 10, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allocate(tt.weights, tt.minimums, tt.total)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Allocate mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAllocateConservation(t *testing.T) {
	weightSets := [][]int{
		{2, 3},
		{2, 2, 2},
		{7, 3, 5, 2},
		{10, 2},
		{3, 3, 4, 9, 2, 6},
	}
	for _, weights := range weightSets {
		mins := make([]int, len(weights))
		for i := range mins {
			mins[i] = i + 1
		}
		for total := 0; total <= 120; total += 7 {
			t.Run(fmt.Sprintf("%v/%d", weights, total), func(t *testing.T) {
				got := Allocate(weights, mins, total)
				sum, sumMin := 0, 0
				for i := range got {
					if got[i] < mins[i] {
						t.Errorf("column %d = %d, below minimum %d", i, got[i], mins[i])
					}
					sum += got[i]
					sumMin += mins[i]
				}
				if want := max(total, sumMin); sum != want {
					t.Errorf("sum = %d, want %d", sum, want)
				}
			})
		}
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name        string
		weights     []int
		contentMins []int
		headerMins  []int
		params      Params
		wantInner   []int
		wantEff     int
		wantFlex    int
	}{
		{
			name:        "fixed_and_flexible",
			weights:     []int{1, 2},
			contentMins: []int{2, 8},
			headerMins:  []int{2, 4},
			params:      Params{TargetWidth: 20, FixedMargin: 2},
			wantInner:   []int{4, 16},
			wantEff:     20,
			wantFlex:    16,
		},
		{
			name:        "all_fixed_grows_to_target",
			weights:     []int{1, 1},
			contentMins: []int{3, 5},
			headerMins:  []int{3, 2},
			params:      Params{TargetWidth: 20, FixedMargin: 2},
			wantInner:   []int{9, 11},
			wantEff:     20,
			wantFlex:    20,
		},
		{
			name:        "all_fixed_wider_than_target",
			weights:     []int{1, 1},
			contentMins: []int{30, 10},
			headerMins:  []int{2, 2},
			params:      Params{TargetWidth: 20, FixedMargin: 0},
			wantInner:   []int{30, 10},
			wantEff:     40,
			wantFlex:    40,
		},
		{
			name:        "fixed_content_overflows_target",
			weights:     []int{1, 3},
			contentMins: []int{30, 50},
			headerMins:  []int{5, 4},
			params:      Params{TargetWidth: 20, FixedMargin: 2},
			wantInner:   []int{32, 4},
			wantEff:     36,
			wantFlex:    4,
		},
		{
			name:        "flexible_split_by_weight",
			weights:     []int{2, 4, 1},
			contentMins: []int{3, 3, 1},
			headerMins:  []int{3, 3, 1},
			params:      Params{TargetWidth: 30, FixedMargin: 2},
			wantInner:   []int{10, 17, 3},
			wantEff:     30,
			wantFlex:    27,
		},
		{
			name:        "empty_flexible_header",
			weights:     []int{3, 3},
			contentMins: []int{0, 0},
			headerMins:  []int{0, 0},
			params:      Params{TargetWidth: 1, FixedMargin: 2},
			wantInner:   []int{1, 1},
			wantEff:     2,
			wantFlex:    2,
		},
		{
			name:        "zero_margin_empty_fixed_column",
			weights:     []int{1, 2},
			contentMins: []int{0, 1},
			headerMins:  []int{0, 1},
			params:      Params{TargetWidth: 2, FixedMargin: 0},
			wantInner:   []int{1, 1},
			wantEff:     2,
			wantFlex:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Compute(tt.weights, tt.contentMins, tt.headerMins, tt.params)
			if diff := cmp.Diff(tt.wantInner, plan.Inner()); diff != "" {
				t.Errorf("inner widths mismatch (-want +got):\n%s", diff)
			}
			if plan.EffectiveTarget != tt.wantEff {
				t.Errorf("EffectiveTarget = %d, want %d", plan.EffectiveTarget, tt.wantEff)
			}
			if plan.FlexTarget != tt.wantFlex {
				t.Errorf("FlexTarget = %d, want %d", plan.FlexTarget, tt.wantFlex)
			}
			checkInvariants(t, plan)
		})
	}
}

// checkInvariants verifies width monotonicity and conservation of the flexible share.
func checkInvariants(t *testing.T, plan Plan) {
	t.Helper()
	flexSum, hasFlex := 0, false
	for _, c := range plan.Columns {
		if c.Inner < 1 {
			t.Errorf("column %d inner width %d < 1", c.Index, c.Inner)
		}
		switch c.Class() {
		case Fixed:
			if c.Inner < c.ContentMin {
				t.Errorf("fixed column %d inner %d < content %d", c.Index, c.Inner, c.ContentMin)
			}
		case Flexible:
			hasFlex = true
			flexSum += c.Inner
			if c.Inner < c.HeaderMin {
				t.Errorf("flexible column %d inner %d < header %d", c.Index, c.Inner, c.HeaderMin)
			}
		}
	}
	if hasFlex && flexSum != plan.FlexTarget {
		t.Errorf("flexible widths sum to %d, want %d", flexSum, plan.FlexTarget)
	}
}

func TestClassOf(t *testing.T) {
	if ClassOf(1) != Fixed {
		t.Error("weight 1 should be fixed")
	}
	for _, w := range []int{2, 3, 10} {
		if ClassOf(w) != Flexible {
			t.Errorf("weight %d should be flexible", w)
		}
	}
	if Fixed.String() != "fixed" || Flexible.String() != "flexible" {
		t.Error("unexpected class names")
	}
}

func TestRenderedWidth(t *testing.T) {
	tests := []struct{ inner, want int }{
		{0, 3},
		{1, 3},
		{4, 6},
		{16, 18},
	}
	for _, tt := range tests {
		if got := RenderedWidth(tt.inner); got != tt.want {
			t.Errorf("RenderedWidth(%d) = %d, want %d", tt.inner, got, tt.want)
		}
	}
}
