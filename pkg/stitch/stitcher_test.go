//nolint:funlen // ok for tests
package stitch

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/race-replay-go/pkg/ingest"
	"github.com/mpapenbr/race-replay-go/pkg/raw"
	"github.com/mpapenbr/race-replay-go/testsupport/basedata"
)

func loadTiny(t *testing.T) *raw.Store {
	t.Helper()
	store, err := raw.Load(basedata.TinySources())
	require.NoError(t, err)
	return store
}

func TestStitch_CrossProduct(t *testing.T) {
	s := New(loadTiny(t))
	ft := s.Stitch()

	// one second race at 100ms step: 11 ticks, 2 grid entities
	assert.Equal(t, 11*2, ft.Len())
	assert.Equal(t, []string{"A", "B"}, ft.Entities())
	for i := range ft.Ticks() {
		for j, entity := range ft.Entities() {
			assert.Equal(t, entity, ft.At(i, j).Entity)
		}
	}
}

func TestStitch_EntityWithoutTelemetry(t *testing.T) {
	s := New(loadTiny(t))
	ft := s.Stitch()

	// entity B has no telemetry rows but still gets a full column
	for i := range ft.Ticks() {
		frame := ft.At(i, 1)
		assert.False(t, frame.HasPosition())
		assert.True(t, math.IsNaN(frame.X))
		assert.False(t, frame.InPit)
	}
}

func TestStitch_NearestWithTieBreak(t *testing.T) {
	// entity A has samples at 0s (x=0) and 1s (x=10)
	s := New(loadTiny(t))
	ft := s.Stitch()

	assert.InDelta(t, 0.0, ft.At(0, 0).X, 1e-9)
	// tick 0.5s is equidistant to both samples: the earlier one wins
	assert.InDelta(t, 0.0, ft.At(5, 0).X, 1e-9)
	assert.InDelta(t, 10.0, ft.At(6, 0).X, 1e-9)
	assert.InDelta(t, 10.0, ft.At(10, 0).X, 1e-9)
}

func TestStitch_ToleranceBoundary(t *testing.T) {
	src := basedata.TinySources()
	// single sample at race start only
	src.Telemetry = ingest.NewTable(
		[]string{"SessionTime", "Driver", "X", "Y"},
		[][]string{{"0.0", "A", "1", "2"}})
	store, err := raw.Load(src)
	require.NoError(t, err)

	s := New(store)
	ft := s.Stitch()
	// 500ms away: exactly at tolerance, still accepted
	assert.True(t, ft.At(5, 0).HasPosition())
	// 600ms away: outside
	assert.False(t, ft.At(6, 0).HasPosition())

	tight := New(store, WithTolerance(499*time.Millisecond))
	ft = tight.Stitch()
	assert.False(t, ft.At(5, 0).HasPosition())
}

func TestStitch_MessagesCarryForward(t *testing.T) {
	s := New(loadTiny(t))
	ft := s.Stitch()

	for i := 0; i < 10; i++ {
		assert.Equal(t, "GREEN FLAG", ft.At(i, 0).Message)
		// the message column is global: same value for every entity
		assert.Equal(t, ft.At(i, 0).Message, ft.At(i, 1).Message)
	}
	assert.Equal(t, "END", ft.At(10, 0).Message)
}

func TestStitch_EmptyEventsYieldEmptyOutput(t *testing.T) {
	store, err := raw.Load(basedata.EmptySources())
	require.NoError(t, err)

	s := New(store)
	ft := s.Stitch()
	assert.True(t, ft.Empty())
	assert.Empty(t, s.BuildLeaderboardTimeline())
}

func fiftySecondEvents() *ingest.Table {
	return ingest.NewTable(
		[]string{"SessionTime", "Type", "Message"},
		[][]string{
			{"0.0", "Start", "GREEN FLAG"},
			{"50.0", "End", "END"},
		})
}

func TestStitch_PitStatusFromExplicitFlag(t *testing.T) {
	src := basedata.TinySources()
	src.Events = fiftySecondEvents()
	src.PitStops = ingest.NewTable(
		[]string{"SessionTime", "Driver", "InPit"},
		[][]string{
			{"10.0", "A", "true"},
			{"20.0", "A", "false"},
		})
	store, err := raw.Load(src)
	require.NoError(t, err)

	ft := New(store, WithStep(time.Second)).Stitch()
	assert.False(t, ft.At(9, 0).InPit)
	assert.True(t, ft.At(10, 0).InPit)
	assert.True(t, ft.At(19, 0).InPit)
	assert.False(t, ft.At(20, 0).InPit)
}

func TestStitch_PitStatusFromTimePair(t *testing.T) {
	src := basedata.TinySources()
	src.Events = fiftySecondEvents()
	src.PitStops = ingest.NewTable(
		[]string{"SessionTime", "Driver", "PitTimeIn", "PitTimeOut"},
		[][]string{{"15.0", "A", "15.0", "20.0"}})
	store, err := raw.Load(src)
	require.NoError(t, err)

	ft := New(store, WithStep(time.Second)).Stitch()
	// in pit within [enter, exit)
	assert.False(t, ft.At(14, 0).InPit)
	assert.True(t, ft.At(15, 0).InPit)
	assert.True(t, ft.At(19, 0).InPit)
	assert.False(t, ft.At(20, 0).InPit)
}

func TestStitch_PitStatusFromStopDuration(t *testing.T) {
	src := basedata.TinySources()
	src.Events = fiftySecondEvents()
	src.PitStops = ingest.NewTable(
		[]string{"SessionTime", "Driver", "PitTimeIn", "StopDuration"},
		[][]string{{"15.0", "A", "15.0", "5.0"}})
	store, err := raw.Load(src)
	require.NoError(t, err)

	ft := New(store, WithStep(time.Second)).Stitch()
	assert.True(t, ft.At(15, 0).InPit)
	assert.True(t, ft.At(19, 0).InPit)
	assert.False(t, ft.At(20, 0).InPit)
}

func TestStitch_UnresolvedPitEntryStaysInPit(t *testing.T) {
	src := basedata.TinySources()
	src.Events = fiftySecondEvents()
	// entry without exit time or duration
	src.PitStops = ingest.NewTable(
		[]string{"SessionTime", "Driver", "PitTimeIn", "PitTimeOut", "Lap"},
		[][]string{
			{"15.0", "A", "15.0", "20.0", "2"},
			{"40.0", "A", "40.0", "", "4"},
		})
	store, err := raw.Load(src)
	require.NoError(t, err)

	ft := New(store, WithStep(time.Second)).Stitch()
	assert.False(t, ft.At(39, 0).InPit)
	assert.True(t, ft.At(40, 0).InPit)
	assert.True(t, ft.At(50, 0).InPit)
}

func TestStitch_PitPresenceFallback(t *testing.T) {
	src := basedata.TinySources()
	src.Events = fiftySecondEvents()
	// no flag, no timing columns: row presence is all we have
	src.PitStops = ingest.NewTable(
		[]string{"SessionTime", "Driver", "Lap"},
		[][]string{{"30.0", "A", "3"}})
	store, err := raw.Load(src)
	require.NoError(t, err)

	ft := New(store, WithStep(time.Second)).Stitch()
	assert.False(t, ft.At(29, 0).InPit)
	assert.True(t, ft.At(30, 0).InPit)
	assert.True(t, ft.At(50, 0).InPit)
}

func TestStitch_WorkerCountDoesNotChangeOutput(t *testing.T) {
	store, err := raw.Load(basedata.SampleSources())
	require.NoError(t, err)

	single := New(store, WithWorkers(1)).Stitch()
	many := New(store, WithWorkers(8)).Stitch()

	require.Equal(t, single.Len(), many.Len())
	for i := range single.Ticks() {
		diff := cmp.Diff(single.Row(i), many.Row(i), cmpopts.EquateNaNs())
		if diff != "" {
			t.Fatalf("tick %d differs (-single +many):\n%s", i, diff)
		}
	}
}

func TestStitch_Idempotent(t *testing.T) {
	store, err := raw.Load(basedata.TinySources())
	require.NoError(t, err)

	s := New(store)
	first := s.Stitch()
	second := s.Stitch()

	require.Equal(t, first.Len(), second.Len())
	for i := range first.Ticks() {
		diff := cmp.Diff(first.Row(i), second.Row(i), cmpopts.EquateNaNs())
		if diff != "" {
			t.Fatalf("tick %d differs between runs:\n%s", i, diff)
		}
	}
}

func TestTimeline_FromStore(t *testing.T) {
	s := New(loadTiny(t), WithStep(100*time.Millisecond))
	tl := s.Timeline()
	assert.Equal(t, 11, tl.Len())
	assert.Equal(t, time.Duration(0), tl.At(0))
	assert.Equal(t, time.Second, tl.At(10))
}
