package stitch

import (
	"cmp"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/mpapenbr/race-replay-go/pkg/model"
	"github.com/mpapenbr/race-replay-go/pkg/normalize"
)

// BuildLeaderboardTimeline projects the leaderboard stream onto the
// canonical timeline: per tick the most recent snapshot at or before it,
// carried forward. The projection is keyed by tick alone, not
// (tick, entity); it feeds the ranking panel. Before the first snapshot
// the entries are empty.
func (s *Stitcher) BuildLeaderboardTimeline() []model.LeaderboardTick {
	tl := s.Timeline()
	if tl.Empty() {
		return []model.LeaderboardTick{}
	}
	rows := normalize.Leaderboard(s.store.Leaderboard())

	// group rows into snapshots by their timestamp
	snapshotTimes := lo.Uniq(lo.Map(rows,
		func(r model.LeaderboardEntry, _ int) time.Duration { return r.SessionTime }))
	byTime := lo.GroupBy(rows,
		func(r model.LeaderboardEntry) time.Duration { return r.SessionTime })

	snapshots := make([][]model.LeaderboardRow, len(snapshotTimes))
	for i, ts := range snapshotTimes {
		entries := lo.Map(byTime[ts],
			func(r model.LeaderboardEntry, _ int) model.LeaderboardRow {
				row := model.LeaderboardRow{Driver: r.Driver}
				if r.Position != nil {
					row.Position = int(*r.Position)
				}
				if r.GapAhead != nil {
					row.GapAhead = *r.GapAhead
				}
				if r.Interval != nil {
					row.Interval = *r.Interval
				}
				return row
			})
		slices.SortStableFunc(entries, func(a, b model.LeaderboardRow) int {
			return cmp.Compare(a.Position, b.Position)
		})
		snapshots[i] = entries
	}

	ticks := tl.Ticks()
	out := make([]model.LeaderboardTick, len(ticks))
	for i, idx := range s.carryForward.pick(ticks, snapshotTimes) {
		out[i] = model.LeaderboardTick{
			Tick:    ticks[i],
			Entries: []model.LeaderboardRow{},
		}
		if idx >= 0 {
			out[i].Entries = snapshots[idx]
		}
	}
	return out
}
