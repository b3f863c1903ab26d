// Package basedata provides shared fixtures for package tests: small
// handcrafted tables plus the generated sample race.
package basedata

import (
	"github.com/mpapenbr/race-replay-go/pkg/ingest"
	"github.com/mpapenbr/race-replay-go/pkg/raw"
	"github.com/mpapenbr/race-replay-go/pkg/sample"
)

// SampleSources returns the full generated four-driver sample race.
func SampleSources() raw.Sources {
	return sample.Generate().Sources()
}

// TinyGrid returns a two-entity starting grid (A ahead of B).
func TinyGrid() *ingest.Table {
	return ingest.NewTable(
		[]string{"Driver", "DriverName", "GridPosition"},
		[][]string{
			{"A", "Driver A", "1"},
			{"B", "Driver B", "2"},
		})
}

// TinySources returns a minimal race: two entities, telemetry only for A,
// a one second race. Entity B deliberately has no telemetry rows.
func TinySources() raw.Sources {
	return raw.Sources{
		Grid: TinyGrid(),
		Telemetry: ingest.NewTable(
			[]string{"SessionTime", "Driver", "X", "Y"},
			[][]string{
				{"0.0", "A", "0", "0"},
				{"1.0", "A", "10", "0"},
			}),
		PitStops: ingest.NewTable(
			[]string{"SessionTime", "Driver", "PitTimeIn", "PitTimeOut"},
			[][]string{}),
		Events: ingest.NewTable(
			[]string{"SessionTime", "Type", "Message"},
			[][]string{
				{"0.0", "Start", "GREEN FLAG"},
				{"1.0", "End", "END"},
			}),
		TrackMap: ingest.NewTable(
			[]string{"X", "Y"},
			[][]string{{"0", "0"}, {"10", "0"}, {"10", "10"}}),
		Leaderboard: ingest.NewTable(
			[]string{"SessionTime", "Position", "Driver"},
			[][]string{
				{"0.0", "1", "A"},
				{"0.0", "2", "B"},
			}),
	}
}

// EmptySources returns sources whose event table has no rows; race timings
// stay undetermined and every stitched product must be empty.
func EmptySources() raw.Sources {
	src := TinySources()
	src.Events = ingest.NewTable(
		[]string{"SessionTime", "Type", "Message"}, [][]string{})
	return src
}
