// Package timeline defines the single fixed-step time grid the whole race
// is resampled onto.
package timeline

import "time"

// DefaultStep matches the coarsest sampling rate expected from telemetry
// sources while bounding the frame table size. It is a tunable constant,
// deliberately not derived from observed sampling rates.
const DefaultStep = 100 * time.Millisecond

// Timeline is an ordered, strictly increasing, fixed-step sequence of
// ticks. The zero value is the empty timeline.
type Timeline struct {
	start time.Duration
	step  time.Duration
	ticks []time.Duration
}

// Build creates the canonical timeline covering [start, end] with the given
// step, inclusive of end if it lands exactly on a step boundary. When
// determined is false the timeline is empty; downstream stages treat that
// as "nothing to stitch", not as a failure.
func Build(start, end time.Duration, step time.Duration, determined bool) Timeline {
	if step <= 0 {
		step = DefaultStep
	}
	if !determined || end < start {
		return Timeline{step: step}
	}
	n := int((end-start)/step) + 1
	ticks := make([]time.Duration, n)
	for i := range ticks {
		ticks[i] = start + time.Duration(i)*step
	}
	return Timeline{start: start, step: step, ticks: ticks}
}

func (t Timeline) Ticks() []time.Duration { return t.ticks }
func (t Timeline) Len() int               { return len(t.ticks) }
func (t Timeline) Empty() bool            { return len(t.ticks) == 0 }
func (t Timeline) Step() time.Duration    { return t.step }

// At returns the tick for a zero-based frame number. Indexes outside
// [0, Len()) are a caller contract violation.
func (t Timeline) At(i int) time.Duration { return t.ticks[i] }
