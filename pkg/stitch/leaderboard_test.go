package stitch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/race-replay-go/pkg/ingest"
	"github.com/mpapenbr/race-replay-go/pkg/raw"
	"github.com/mpapenbr/race-replay-go/testsupport/basedata"
)

func TestBuildLeaderboardTimeline(t *testing.T) {
	s := New(loadTiny(t))
	ticks := s.BuildLeaderboardTimeline()

	// one entry list per canonical tick
	require.Len(t, ticks, 11)
	for _, lt := range ticks {
		require.Len(t, lt.Entries, 2)
		assert.Equal(t, "A", lt.Entries[0].Driver)
		assert.Equal(t, 1, lt.Entries[0].Position)
		assert.Equal(t, "B", lt.Entries[1].Driver)
		assert.Equal(t, 2, lt.Entries[1].Position)
	}
}

func TestBuildLeaderboardTimeline_EmptyBeforeFirstSnapshot(t *testing.T) {
	src := basedata.TinySources()
	src.Leaderboard = ingest.NewTable(
		[]string{"SessionTime", "Position", "Driver"},
		[][]string{
			{"0.5", "1", "B"},
			{"0.5", "2", "A"},
		})
	store, err := raw.Load(src)
	require.NoError(t, err)

	ticks := New(store).BuildLeaderboardTimeline()
	require.Len(t, ticks, 11)
	for i := 0; i < 5; i++ {
		assert.Empty(t, ticks[i].Entries)
		assert.NotNil(t, ticks[i].Entries)
	}
	// from 0.5s on the snapshot is carried forward, sorted by position
	for i := 5; i < 11; i++ {
		require.Len(t, ticks[i].Entries, 2)
		assert.Equal(t, "B", ticks[i].Entries[0].Driver)
	}
}

func TestBuildLeaderboardTimeline_SnapshotChanges(t *testing.T) {
	store, err := raw.Load(basedata.SampleSources())
	require.NoError(t, err)

	s := New(store, WithStep(time.Second))
	ticks := s.BuildLeaderboardTimeline()
	require.Len(t, ticks, 51)

	// before 25s Norris runs third, afterwards Sainz takes the spot
	assert.Equal(t, "Norris", ticks[20].Entries[2].Driver)
	assert.Equal(t, "Sainz", ticks[25].Entries[2].Driver)
	assert.Equal(t, "Sainz", ticks[50].Entries[2].Driver)
}
