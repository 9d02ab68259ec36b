package assign

import "math"

// dayBudgets splits need sessions across days in proportion to each
// day's slot count. A day either gets at least minRun blocks or none,
// and never more than it has slots. Any shortfall is spread evenly over
// days that still have room.
func dayBudgets(need int, sizes []int, minRun int) []int {
	targets := make([]int, len(sizes))
	avail := 0
	for _, n := range sizes {
		avail += n
	}
	if need <= 0 || avail == 0 {
		return targets
	}

	assigned := 0
	for i, n := range sizes {
		if n < minRun {
			continue
		}
		t := int(math.Round(float64(need) * float64(n) / float64(avail)))
		if t > 0 && t < minRun {
			t = minRun
		}
		if t < minRun {
			continue
		}
		targets[i] = min(t, n)
		assigned += targets[i]
	}

	short := need - assigned
	for short > 0 {
		var open []int
		for i, n := range sizes {
			if n >= minRun && targets[i] < n {
				open = append(open, i)
			}
		}
		if len(open) == 0 {
			break
		}

		share := max(1, short/len(open))
		for _, i := range open {
			if short <= 0 {
				break
			}
			add := min(share, sizes[i]-targets[i])
			if targets[i] == 0 {
				// A day that starts taking work takes a full run.
				add = min(max(add, minRun), sizes[i])
			}
			targets[i] += add
			short -= add
		}
	}
	return targets
}
