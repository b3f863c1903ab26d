package model

import (
	"fmt"
	"math"
	"time"
)

// Frame is one cell of the stitched output: the state of a single entity at
// a single canonical tick. X/Y are NaN when no telemetry sample was within
// tolerance (the missing marker); InPit and Message are always defined.
type Frame struct {
	Entity  string
	X       float64
	Y       float64
	InPit   bool
	Message string
}

// HasPosition reports whether both coordinates carry real values.
// Consumers must check this instead of treating NaN as a location.
func (f *Frame) HasPosition() bool {
	return !math.IsNaN(f.X) && !math.IsNaN(f.Y)
}

// FrameTable is the stitched output: exactly one Frame per
// (canonical tick, grid entity). Rows are stored tick major, entities in
// starting grid order within each tick. Immutable after construction.
type FrameTable struct {
	SessionID string
	ticks     []time.Duration
	entities  []string
	frames    []Frame
}

func NewFrameTable(ticks []time.Duration, entities []string) *FrameTable {
	return &FrameTable{
		ticks:    ticks,
		entities: entities,
		frames:   make([]Frame, len(ticks)*len(entities)),
	}
}

// Ticks returns the ordered canonical ticks. Callers index frames by a
// zero based frame number bounded by len(Ticks()).
func (t *FrameTable) Ticks() []time.Duration { return t.ticks }

// Entities returns the ordered entity ids as declared by the starting grid.
func (t *FrameTable) Entities() []string { return t.entities }

// Len returns the total row count, always len(ticks) * len(entities).
func (t *FrameTable) Len() int { return len(t.frames) }

func (t *FrameTable) Empty() bool { return len(t.frames) == 0 }

// At returns the frame for tick index i and entity index j. Indexes outside
// the published tick/entity lists are a caller contract violation.
func (t *FrameTable) At(i, j int) *Frame {
	if i < 0 || i >= len(t.ticks) || j < 0 || j >= len(t.entities) {
		panic(fmt.Sprintf("frame lookup out of range: tick %d entity %d", i, j))
	}
	return &t.frames[i*len(t.entities)+j]
}

// Row returns all entity frames for tick index i, in starting grid order.
func (t *FrameTable) Row(i int) []Frame {
	n := len(t.entities)
	return t.frames[i*n : (i+1)*n]
}

// LeaderboardRow is one ranked entry of the leaderboard projection.
type LeaderboardRow struct {
	Driver   string  `json:"driver"`
	Position int     `json:"position"`
	GapAhead float64 `json:"gapAhead"`
	Interval float64 `json:"interval"`
}

// LeaderboardTick is the leaderboard state at one canonical tick, the most
// recent snapshot at or before the tick carried forward. Keyed by tick
// alone, not (tick, entity); it feeds the ranking panel, not positions.
type LeaderboardTick struct {
	Tick    time.Duration
	Entries []LeaderboardRow
}
