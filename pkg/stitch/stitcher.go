// Package stitch assembles the dense (tick x entity) frame table from the
// normalized source series and the canonical timeline.
package stitch

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/mpapenbr/race-replay-go/log"
	"github.com/mpapenbr/race-replay-go/pkg/model"
	"github.com/mpapenbr/race-replay-go/pkg/normalize"
	"github.com/mpapenbr/race-replay-go/pkg/raw"
	"github.com/mpapenbr/race-replay-go/pkg/timeline"
)

// DefaultTolerance is the maximum offset within which a nearest telemetry
// sample is accepted for a tick. Beyond it positions become the missing
// marker instead of a guess.
const DefaultTolerance = 500 * time.Millisecond

type Stitcher struct {
	store     *raw.Store
	step      time.Duration
	tolerance time.Duration
	workers   int
	l         *log.Logger

	// per-column policies
	positions    nearestPolicy
	carryForward forwardFillPolicy
}

type Option func(*Stitcher)

func WithStep(step time.Duration) Option {
	return func(s *Stitcher) { s.step = step }
}

func WithTolerance(tolerance time.Duration) Option {
	return func(s *Stitcher) { s.tolerance = tolerance }
}

// WithWorkers sets the number of concurrent entity resample workers.
// Entities have no cross-entity data dependency; the output is
// bit-identical for any worker count.
func WithWorkers(n int) Option {
	return func(s *Stitcher) { s.workers = n }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Stitcher) { s.l = l }
}

func New(store *raw.Store, opts ...Option) *Stitcher {
	s := &Stitcher{
		store:     store,
		step:      timeline.DefaultStep,
		tolerance: DefaultTolerance,
		workers:   runtime.NumCPU(),
		l:         log.Default().Named("stitch"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	s.positions = nearestPolicy{tolerance: s.tolerance}
	return s
}

// Timeline builds the canonical timeline from the derived race timings.
func (s *Stitcher) Timeline() timeline.Timeline {
	t := s.store.RaceTimings()
	return timeline.Build(t.Start, t.End, s.step, t.Determined)
}

// entityCols holds the resampled per-entity columns, one value per tick.
type entityCols struct {
	x     []float64
	y     []float64
	inPit []bool
}

// Stitch produces the frame table: the full cross product of canonical
// ticks and starting grid entities. An entity without any telemetry still
// gets one row per tick (missing positions, inPit false). An empty
// timeline or an empty grid yields an empty table, not an error.
func (s *Stitcher) Stitch() *model.FrameTable {
	tl := s.Timeline()
	entities := s.store.Entities()
	ft := model.NewFrameTable(tl.Ticks(), entities)
	ft.SessionID = s.store.SessionID()
	if tl.Empty() || len(entities) == 0 {
		s.l.Info("nothing to stitch",
			log.Int("ticks", tl.Len()),
			log.Int("entities", len(entities)))
		return ft
	}

	ticks := tl.Ticks()
	messages := s.resampleMessages(ticks)

	cols := make([]entityCols, len(entities))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				// disjoint writes, no shared state between entities
				cols[idx] = s.resampleEntity(entities[idx], ticks)
			}
		}()
	}
	for i := range entities {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for ti := range ticks {
		for ei, entity := range entities {
			*ft.At(ti, ei) = model.Frame{
				Entity:  entity,
				X:       cols[ei].x[ti],
				Y:       cols[ei].y[ti],
				InPit:   cols[ei].inPit[ti],
				Message: messages[ti],
			}
		}
	}
	s.l.Info("stitched race",
		log.Int("ticks", len(ticks)),
		log.Int("entities", len(entities)),
		log.Int("frames", ft.Len()))
	return ft
}

func (s *Stitcher) resampleEntity(entity string, ticks []time.Duration) entityCols {
	tele := normalize.Telemetry(s.store.TelemetryFor(entity))
	pits := normalize.Pits(s.store.PitSamplesFor(entity))

	cols := entityCols{
		x:     make([]float64, len(ticks)),
		y:     make([]float64, len(ticks)),
		inPit: s.resamplePitStatus(pits, ticks),
	}
	times := lo.Map(tele, func(t model.TelemetrySample, _ int) time.Duration {
		return t.SessionTime
	})
	picks := s.positions.pick(ticks, times)
	for i, idx := range picks {
		cols.x[i] = math.NaN()
		cols.y[i] = math.NaN()
		if idx < 0 {
			continue
		}
		if v := tele[idx].X; v != nil {
			cols.x[i] = *v
		}
		if v := tele[idx].Y; v != nil {
			cols.y[i] = *v
		}
	}
	return cols
}

// resamplePitStatus derives the boolean pit column, most specific source
// first: an explicit flag column, then explicit enter/exit time pairs,
// then plain row presence (an unresolved pit entry counts as in pit).
//
//nolint:gocognit // the three strategies read better in one place
func (s *Stitcher) resamplePitStatus(pits []model.PitSample, ticks []time.Duration) []bool {
	out := make([]bool, len(ticks))
	if len(pits) == 0 {
		return out
	}

	flagTimes := make([]time.Duration, 0, len(pits))
	flagVals := make([]bool, 0, len(pits))
	for i := range pits {
		if pits[i].InPit != nil {
			flagTimes = append(flagTimes, pits[i].SessionTime)
			flagVals = append(flagVals, *pits[i].InPit)
		}
	}
	if len(flagTimes) > 0 {
		// before the first record the entity is not in pit
		for i, idx := range s.carryForward.pick(ticks, flagTimes) {
			if idx >= 0 {
				out[i] = flagVals[idx]
			}
		}
		return out
	}

	type span struct{ enter, exit time.Duration }
	spans := make([]span, 0, len(pits))
	paired := false
	for i := range pits {
		if pits[i].PitTimeIn == nil {
			continue
		}
		sp := span{
			enter: time.Duration(*pits[i].PitTimeIn * float64(time.Second)),
			exit:  time.Duration(math.MaxInt64), // unresolved entry: in pit until race end
		}
		switch {
		case pits[i].PitTimeOut != nil:
			sp.exit = time.Duration(*pits[i].PitTimeOut * float64(time.Second))
			paired = true
		case pits[i].StopDuration != nil:
			sp.exit = sp.enter +
				time.Duration(*pits[i].StopDuration*float64(time.Second))
			paired = true
		}
		spans = append(spans, sp)
	}
	if paired {
		// in pit within [enter, exit)
		for i, tick := range ticks {
			for _, sp := range spans {
				if tick >= sp.enter && tick < sp.exit {
					out[i] = true
					break
				}
			}
		}
		return out
	}

	// no flag, no pairing: presence of any pit row at or before the tick
	// counts as an unresolved pit stay
	times := lo.Map(pits, func(p model.PitSample, _ int) time.Duration {
		return p.SessionTime
	})
	for i, idx := range s.carryForward.pick(ticks, times) {
		out[i] = idx >= 0
	}
	return out
}

// resampleMessages produces the global race control message per tick, one
// value shared by all entities; before any event the green-flag default
// (empty string) applies.
func (s *Stitcher) resampleMessages(ticks []time.Duration) []string {
	events := normalize.Events(s.store.Events())
	times := lo.Map(events, func(e model.RaceEvent, _ int) time.Duration {
		return e.SessionTime
	})
	out := make([]string, len(ticks))
	for i, idx := range s.carryForward.pick(ticks, times) {
		if idx >= 0 {
			out[i] = events[idx].Message
		}
	}
	return out
}
