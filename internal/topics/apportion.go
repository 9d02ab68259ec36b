package topics

import "sort"

// Apportion splits total units across groups in proportion to their
// integer weights using the largest-remainder method. Ties between equal
// remainders go to the earlier group. A group whose share exceeds its
// capacity is clamped and the excess moves to the following groups
// (wrapping around) that still have room.
//
// The result always sums to min(total, sum(capacity)).
func Apportion(total int, weights []int, capacity []int) []int {
	n := len(weights)
	targets := make([]int, n)
	if n == 0 || total <= 0 {
		return targets
	}

	capSum := 0
	for _, c := range capacity {
		capSum += c
	}
	if total > capSum {
		total = capSum
	}

	weightSum := 0
	for _, w := range weights {
		weightSum += w
	}
	if weightSum <= 0 {
		return targets
	}

	remainders := make([]int, n)
	assigned := 0
	for i, w := range weights {
		raw := w * total
		targets[i] = raw / weightSum
		remainders[i] = raw % weightSum
		assigned += targets[i]
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for k := 0; assigned < total; k = (k + 1) % n {
		targets[order[k]]++
		assigned++
	}

	for i := range targets {
		if targets[i] <= capacity[i] {
			continue
		}
		excess := targets[i] - capacity[i]
		targets[i] = capacity[i]
		for step := 1; step < n && excess > 0; step++ {
			j := (i + step) % n
			spare := capacity[j] - targets[j]
			if spare <= 0 {
				continue
			}
			give := min(spare, excess)
			targets[j] += give
			excess -= give
		}
	}
	return targets
}

// roundRobin takes one item from each queue in turn until every queue
// has yielded its target. Items beyond a queue's target are appended at
// the end in queue order.
func roundRobin[T any](queues [][]T, targets []int) []T {
	var out []T
	taken := make([]int, len(queues))
	for {
		progressed := false
		for i := range queues {
			if taken[i] < targets[i] && taken[i] < len(queues[i]) {
				out = append(out, queues[i][taken[i]])
				taken[i]++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	for i := range queues {
		out = append(out, queues[i][taken[i]:]...)
	}
	return out
}
