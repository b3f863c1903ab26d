//nolint:funlen // ok for tests
package raw_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/race-replay-go/pkg/ingest"
	"github.com/mpapenbr/race-replay-go/pkg/raw"
	"github.com/mpapenbr/race-replay-go/testsupport/basedata"
)

func TestLoad_EntitiesFollowGridOrder(t *testing.T) {
	src := basedata.TinySources()
	// declare the grid out of order; GridPosition decides
	src.Grid = ingest.NewTable(
		[]string{"Driver", "GridPosition"},
		[][]string{
			{"B", "2"},
			{"A", "1"},
		})
	store, err := raw.Load(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, store.Entities())
}

func TestLoad_SampleRace(t *testing.T) {
	store, err := raw.Load(basedata.SampleSources())
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"Hamilton", "Verstappen", "Norris", "Sainz"},
		store.Entities())
	assert.NotEmpty(t, store.SessionID())
	assert.Len(t, store.TelemetryFor("Hamilton"), 500)
	assert.Len(t, store.PitSamplesFor("Sainz"), 1)
	assert.Len(t, store.Events(), 6)
	assert.NotEmpty(t, store.TrackMap())
}

func TestLoad_MissingSourceFailsAsWhole(t *testing.T) {
	src := basedata.TinySources()
	src.Telemetry = nil

	store, err := raw.Load(src)
	assert.Nil(t, store)

	var loadErr *raw.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "telemetry", loadErr.Source)
}

func TestLoad_MissingTimeColumn(t *testing.T) {
	src := basedata.TinySources()
	src.Events = ingest.NewTable([]string{"Type", "Message"}, [][]string{})

	_, err := raw.Load(src)
	var loadErr *raw.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "race events", loadErr.Source)
}

func TestLoad_DropsRowsWithBadTime(t *testing.T) {
	src := basedata.TinySources()
	src.Telemetry = ingest.NewTable(
		[]string{"SessionTime", "Driver", "X", "Y"},
		[][]string{
			{"0.0", "A", "0", "0"},
			{"bogus", "A", "5", "0"},
			{"1.0", "A", "10", "0"},
			{"2.0", "", "20", "0"},
		})
	store, err := raw.Load(src)
	require.NoError(t, err)
	assert.Len(t, store.TelemetryFor("A"), 2)
}

func TestStore_UnknownEntityYieldsEmpty(t *testing.T) {
	store, err := raw.Load(basedata.TinySources())
	require.NoError(t, err)
	assert.Empty(t, store.TelemetryFor("nope"))
	assert.Empty(t, store.PitSamplesFor("nope"))
}

func TestRaceTimings(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want raw.Timings
	}{
		{
			name: "explicit markers",
			rows: [][]string{
				{"0.0", "Info", "warmup lap"},
				{"5.0", "Start", "GREEN FLAG"},
				{"60.0", "End", "race END"},
				{"65.0", "Info", "podium"},
			},
			want: raw.Timings{
				Duration:   65 * time.Second,
				Start:      5 * time.Second,
				End:        60 * time.Second,
				Determined: true,
			},
		},
		{
			name: "markers match case insensitively",
			rows: [][]string{
				{"1.0", "Start", "green flag"},
				{"9.0", "End", "the end"},
			},
			want: raw.Timings{
				Duration:   8 * time.Second,
				Start:      1 * time.Second,
				End:        9 * time.Second,
				Determined: true,
			},
		},
		{
			name: "no markers falls back to min and max",
			rows: [][]string{
				{"7.0", "Info", "rain"},
				{"3.0", "Info", "sunny"},
			},
			want: raw.Timings{
				Duration:   4 * time.Second,
				Start:      3 * time.Second,
				End:        7 * time.Second,
				Determined: true,
			},
		},
		{
			name: "no events stays undetermined",
			rows: [][]string{},
			want: raw.Timings{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := basedata.TinySources()
			src.Events = ingest.NewTable(
				[]string{"SessionTime", "Type", "Message"}, tt.rows)
			store, err := raw.Load(src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, store.RaceTimings())
		})
	}
}

func TestLoadError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &raw.LoadError{Source: "telemetry", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "telemetry")
}
