package assign

import (
	"reflect"
	"testing"
)

func TestDayBudgets(t *testing.T) {
	tests := []struct {
		name   string
		need   int
		sizes  []int
		minRun int
		want   []int
	}{
		{"proportional", 10, []int{8, 8}, 3, []int{5, 5}},
		{"rounds up to a full run", 9, []int{3, 3, 3, 3, 3, 3, 3}, 3, []int{3, 3, 3, 3, 3, 3, 3}},
		{"skips days too short for a run", 4, []int{1, 3}, 3, []int{0, 3}},
		{"capped by day size", 10, []int{2, 4, 4}, 3, []int{0, 4, 4}},
		{"shortfall goes to days with room", 9, []int{5, 5, 1}, 3, []int{5, 4, 0}},
		{"shortfall starts idle days", 3, []int{3, 3, 3, 3, 3, 3, 3}, 1, []int{1, 1, 1, 0, 0, 0, 0}},
		{"nothing needed", 0, []int{3, 3}, 3, []int{0, 0}},
		{"no slots", 5, nil, 3, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dayBudgets(tt.need, tt.sizes, tt.minRun)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("dayBudgets(%d, %v, %d) = %v, want %v", tt.need, tt.sizes, tt.minRun, got, tt.want)
			}
		})
	}
}
