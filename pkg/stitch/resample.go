package stitch

import (
	"sort"
	"time"
)

// resamplePolicy maps observed sample times onto canonical ticks. Each
// output column has exactly one named policy attached; nothing is inferred
// from fallback branching. A result of -1 means "no sample for this tick".
type resamplePolicy interface {
	pick(ticks, times []time.Duration) []int
}

// nearestPolicy selects the nearest sample within an inclusive tolerance
// window. When two samples are equidistant the earlier one wins, keeping
// the result deterministic.
type nearestPolicy struct {
	tolerance time.Duration
}

func (p nearestPolicy) pick(ticks, times []time.Duration) []int {
	out := make([]int, len(ticks))
	for i, tick := range ticks {
		out[i] = -1
		if len(times) == 0 {
			continue
		}
		j := sort.Search(len(times), func(k int) bool { return times[k] >= tick })
		best := -1
		var bestDist time.Duration
		if j < len(times) {
			best = j
			bestDist = times[j] - tick
		}
		if j > 0 {
			// earlier sample wins the tie
			if d := tick - times[j-1]; best == -1 || d <= bestDist {
				best = j - 1
				bestDist = d
			}
		}
		if best >= 0 && bestDist <= p.tolerance {
			out[i] = best
		}
	}
	return out
}

// forwardFillPolicy carries the most recent sample at or before each tick
// forward, never looking ahead. Ticks before the first sample map to -1.
type forwardFillPolicy struct{}

func (forwardFillPolicy) pick(ticks, times []time.Duration) []int {
	out := make([]int, len(ticks))
	j := 0
	for i, tick := range ticks {
		for j < len(times) && times[j] <= tick {
			j++
		}
		out[i] = j - 1
	}
	return out
}
