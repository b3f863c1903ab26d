// Package normalize turns raw per-entity and global sample series into
// clean, time-sorted, internally gap-filled series. It never projects onto
// the canonical timeline; that is the stitcher's job.
package normalize

import (
	"cmp"
	"slices"
	"time"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/interp"

	"github.com/mpapenbr/race-replay-go/pkg/model"
)

// Telemetry cleans one entity's telemetry series: stable sort by time,
// time-weighted linear interpolation of the numeric columns, removal of
// exact duplicates and rows that are still all-null afterwards.
func Telemetry(in []model.TelemetrySample) []model.TelemetrySample {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b model.TelemetrySample) int {
		return cmp.Compare(a.SessionTime, b.SessionTime)
	})
	times := lo.Map(out, func(s model.TelemetrySample, _ int) float64 {
		return s.SessionTime.Seconds()
	})
	for _, acc := range telemetryNumerics {
		acc := acc
		fillLinear(times,
			func(i int) *float64 { return *acc(&out[i]) },
			func(i int, v float64) { *acc(&out[i]) = &v })
	}
	return compact(out,
		func(s *model.TelemetrySample) time.Duration { return s.SessionTime },
		telemetrySampleEqual, telemetrySampleAllNull)
}

// Pits cleans one entity's pit series. The InPit flag is categorical and is
// never interpolated.
func Pits(in []model.PitSample) []model.PitSample {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b model.PitSample) int {
		return cmp.Compare(a.SessionTime, b.SessionTime)
	})
	times := lo.Map(out, func(s model.PitSample, _ int) float64 {
		return s.SessionTime.Seconds()
	})
	for _, acc := range pitNumerics {
		acc := acc
		fillLinear(times,
			func(i int) *float64 { return *acc(&out[i]) },
			func(i int, v float64) { *acc(&out[i]) = &v })
	}
	return compact(out,
		func(s *model.PitSample) time.Duration { return s.SessionTime },
		pitSampleEqual, pitSampleAllNull)
}

// Events cleans the global race control stream. Message and Type are text
// columns and stay untouched; only the lap counter is numeric.
func Events(in []model.RaceEvent) []model.RaceEvent {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b model.RaceEvent) int {
		return cmp.Compare(a.SessionTime, b.SessionTime)
	})
	times := lo.Map(out, func(s model.RaceEvent, _ int) float64 {
		return s.SessionTime.Seconds()
	})
	fillLinear(times,
		func(i int) *float64 { return out[i].Lap },
		func(i int, v float64) { out[i].Lap = &v })
	return compact(out,
		func(s *model.RaceEvent) time.Duration { return s.SessionTime },
		raceEventEqual, raceEventAllNull)
}

// Leaderboard cleans the global leaderboard stream.
func Leaderboard(in []model.LeaderboardEntry) []model.LeaderboardEntry {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b model.LeaderboardEntry) int {
		return cmp.Compare(a.SessionTime, b.SessionTime)
	})
	times := lo.Map(out, func(s model.LeaderboardEntry, _ int) float64 {
		return s.SessionTime.Seconds()
	})
	for _, acc := range leaderboardNumerics {
		acc := acc
		fillLinear(times,
			func(i int) *float64 { return *acc(&out[i]) },
			func(i int, v float64) { *acc(&out[i]) = &v })
	}
	return compact(out,
		func(s *model.LeaderboardEntry) time.Duration { return s.SessionTime },
		leaderboardEntryEqual, leaderboardEntryAllNull)
}

var telemetryNumerics = []func(*model.TelemetrySample) **float64{
	func(s *model.TelemetrySample) **float64 { return &s.X },
	func(s *model.TelemetrySample) **float64 { return &s.Y },
	func(s *model.TelemetrySample) **float64 { return &s.Speed },
	func(s *model.TelemetrySample) **float64 { return &s.Throttle },
	func(s *model.TelemetrySample) **float64 { return &s.Brake },
	func(s *model.TelemetrySample) **float64 { return &s.Gear },
	func(s *model.TelemetrySample) **float64 { return &s.Lap },
}

var pitNumerics = []func(*model.PitSample) **float64{
	func(s *model.PitSample) **float64 { return &s.PitTimeIn },
	func(s *model.PitSample) **float64 { return &s.PitTimeOut },
	func(s *model.PitSample) **float64 { return &s.StopDuration },
	func(s *model.PitSample) **float64 { return &s.Lap },
}

var leaderboardNumerics = []func(*model.LeaderboardEntry) **float64{
	func(s *model.LeaderboardEntry) **float64 { return &s.Position },
	func(s *model.LeaderboardEntry) **float64 { return &s.GapAhead },
	func(s *model.LeaderboardEntry) **float64 { return &s.Interval },
}

// fillLinear fills nil cells strictly between observed samples using a
// time-weighted piecewise linear predictor. Cells before the first or after
// the last observation stay nil; interpolation never extrapolates.
func fillLinear(times []float64, get func(int) *float64, set func(int, float64)) {
	xs := make([]float64, 0, len(times))
	ys := make([]float64, 0, len(times))
	for i := range times {
		v := get(i)
		if v == nil {
			continue
		}
		// the predictor needs strictly increasing x values
		if len(xs) > 0 && times[i] <= xs[len(xs)-1] {
			continue
		}
		xs = append(xs, times[i])
		ys = append(ys, *v)
	}
	if len(xs) < 2 {
		return
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return
	}
	first, last := xs[0], xs[len(xs)-1]
	for i := range times {
		if get(i) != nil {
			continue
		}
		if times[i] < first || times[i] > last {
			continue
		}
		set(i, pl.Predict(times[i]))
	}
}

// compact removes exact-duplicate rows (only rows sharing a timestamp can
// be exact duplicates once sorted) and rows carrying no content at all.
func compact[T any](
	in []T,
	timeOf func(*T) time.Duration,
	equal func(a, b *T) bool,
	allNull func(*T) bool,
) []T {
	out := make([]T, 0, len(in))
	for i := range in {
		if allNull(&in[i]) {
			continue
		}
		dup := false
		for j := len(out) - 1; j >= 0; j-- {
			if timeOf(&out[j]) != timeOf(&in[i]) {
				break
			}
			if equal(&out[j], &in[i]) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, in[i])
		}
	}
	return out
}
