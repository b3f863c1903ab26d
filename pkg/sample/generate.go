// Package sample generates a small deterministic four-driver race: an oval
// track, 50 seconds of telemetry, one pit stop, race control events and
// leaderboard snapshots. It backs the sample subcommand and the test
// fixtures.
package sample

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mpapenbr/race-replay-go/pkg/ingest"
	"github.com/mpapenbr/race-replay-go/pkg/raw"
)

// default file names, matching the loader's DataDir lookup
const (
	GridFile        = "starting_grid.csv"
	TelemetryFile   = "telemetry.csv"
	PitStopsFile    = "pit_stops.csv"
	EventsFile      = "race_events.csv"
	LeaderboardFile = "leaderboard.csv"
	TrackMapFile    = "track_map.csv"
)

type Race struct {
	Grid        *ingest.Table
	Telemetry   *ingest.Table
	PitStops    *ingest.Table
	Events      *ingest.Table
	TrackMap    *ingest.Table
	Leaderboard *ingest.Table
}

func (r *Race) Sources() raw.Sources {
	return raw.Sources{
		Grid:        r.Grid,
		Telemetry:   r.Telemetry,
		PitStops:    r.PitStops,
		Events:      r.Events,
		TrackMap:    r.TrackMap,
		Leaderboard: r.Leaderboard,
	}
}

type waypoint struct{ x, y float64 }

// trackWaypoints builds a closed oval: two straights joined by half turns.
func trackWaypoints() []waypoint {
	wps := make([]waypoint, 0, 81)
	for i := 0; i < 20; i++ {
		t := float64(i) / 20.0
		wps = append(wps, waypoint{x: t * 100, y: 0})
	}
	for i := 0; i < 20; i++ {
		angle := float64(i) / 20.0 * math.Pi
		wps = append(wps, waypoint{
			x: 100 + 30*math.Sin(angle),
			y: 30 * (1 - math.Cos(angle)),
		})
	}
	for i := 0; i < 20; i++ {
		t := float64(i) / 20.0
		wps = append(wps, waypoint{x: 100 - t*100, y: 60})
	}
	for i := 0; i < 20; i++ {
		angle := float64(i) / 20.0 * math.Pi
		wps = append(wps, waypoint{
			x: -30 * math.Sin(angle),
			y: 60 - 30*(1-math.Cos(angle)),
		})
	}
	return append(wps, wps[0])
}

//nolint:funlen,gocognit // data assembly
func Generate() *Race {
	wps := trackWaypoints()

	drivers := []string{"Hamilton", "Verstappen", "Norris", "Sainz"}
	names := []string{
		"Lewis Hamilton", "Max Verstappen", "Lando Norris", "Carlos Sainz",
	}
	teams := []string{"Mercedes", "Red Bull", "McLaren", "Ferrari"}
	tyres := []string{"Medium", "Soft", "Medium", "Soft"}
	speedFactor := map[string]float64{
		"Hamilton": 1.0, "Verstappen": 0.97, "Norris": 0.95, "Sainz": 0.92,
	}
	startPos := map[string]float64{
		"Hamilton": 0, "Verstappen": 10, "Norris": 20, "Sainz": 30,
	}

	gridRows := make([][]string, 0, len(drivers))
	for i, d := range drivers {
		gridRows = append(gridRows, []string{
			d, names[i], teams[i], strconv.Itoa(i + 1), tyres[i],
		})
	}
	grid := ingest.NewTable(
		[]string{"Driver", "DriverName", "Team", "GridPosition", "TyreCompound"},
		gridRows)

	teleRows := make([][]string, 0, 500*len(drivers))
	for frame := 0; frame < 500; frame++ {
		sessionTime := float64(frame) * 0.1
		for _, d := range drivers {
			progress := startPos[d] + sessionTime*2.0*speedFactor[d]
			dist := math.Mod(progress, float64(len(wps)))
			idx := int(dist)
			next := (idx + 1) % len(wps)
			localT := dist - float64(idx)
			x := wps[idx].x + (wps[next].x-wps[idx].x)*localT
			y := wps[idx].y + (wps[next].y-wps[idx].y)*localT

			inPit := d == "Sainz" && frame >= 150 && frame <= 200
			speed, throttle, brake, gear := 210.0, 0.85, 0.0, 5
			if inPit {
				x, y = 10, 5
				speed, throttle, brake, gear = 0, 0, 0.5, 0
			}
			lap := 1 + int(progress/float64(len(wps)))
			teleRows = append(teleRows, []string{
				formatFloat(sessionTime), d, strconv.Itoa(lap),
				formatFloat(x), formatFloat(y),
				formatFloat(speed), formatFloat(throttle), formatFloat(brake),
				strconv.Itoa(gear), strconv.FormatBool(inPit),
			})
		}
	}
	telemetry := ingest.NewTable(
		[]string{
			"SessionTime", "Driver", "Lap", "X", "Y",
			"Speed", "Throttle", "Brake", "Gear", "inPit",
		},
		teleRows)

	pits := ingest.NewTable(
		[]string{
			"SessionTime", "Driver", "Lap", "PitTimeIn", "PitTimeOut",
			"StopDuration", "OldCompound", "NewCompound",
		},
		[][]string{
			{"15.0", "Sainz", "2", "15.0", "20.0", "5.0", "Soft", "Medium"},
		})

	events := ingest.NewTable(
		[]string{"SessionTime", "Lap", "Type", "Message"},
		[][]string{
			{"0.0", "0", "Start", "GREEN FLAG"},
			{"5.0", "1", "Driver", "Hamilton leads"},
			{"15.0", "2", "PitStop", "Sainz pits"},
			{"20.0", "2", "PitStop", "Sainz out"},
			{"30.0", "3", "Race", "GREEN FLAG"},
			{"50.0", "5", "End", "END"},
		})

	lbRows := make([][]string, 0)
	snapshots := []struct {
		time  float64
		order []string
	}{
		{0.0, []string{"Hamilton", "Verstappen", "Norris", "Sainz"}},
		{10.0, []string{"Hamilton", "Verstappen", "Norris", "Sainz"}},
		{15.0, []string{"Hamilton", "Verstappen", "Norris", "Sainz"}},
		{25.0, []string{"Hamilton", "Verstappen", "Sainz", "Norris"}},
		{50.0, []string{"Hamilton", "Verstappen", "Sainz", "Norris"}},
	}
	for _, snap := range snapshots {
		for pos, d := range snap.order {
			gap, interval := 0.0, 0.0
			if pos > 0 {
				gap = float64(pos+1) * 0.5
				interval = 0.5
			}
			lbRows = append(lbRows, []string{
				formatFloat(snap.time), strconv.Itoa(pos + 1), d,
				formatFloat(gap), formatFloat(interval),
			})
		}
	}
	leaderboard := ingest.NewTable(
		[]string{"SessionTime", "Position", "Driver", "GapAhead", "Interval"},
		lbRows)

	trackRows := make([][]string, 0, len(wps))
	for _, wp := range wps {
		trackRows = append(trackRows, []string{
			formatFloat(wp.x), formatFloat(wp.y),
		})
	}
	track := ingest.NewTable([]string{"X", "Y"}, trackRows)

	return &Race{
		Grid:        grid,
		Telemetry:   telemetry,
		PitStops:    pits,
		Events:      events,
		TrackMap:    track,
		Leaderboard: leaderboard,
	}
}

// WriteCSV writes the six race files into dir, creating it if needed.
func (r *Race) WriteCSV(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create %s: %w", dir, err)
	}
	files := []struct {
		name  string
		table *ingest.Table
	}{
		{GridFile, r.Grid},
		{TelemetryFile, r.Telemetry},
		{PitStopsFile, r.PitStops},
		{EventsFile, r.Events},
		{LeaderboardFile, r.Leaderboard},
		{TrackMapFile, r.TrackMap},
	}
	for _, f := range files {
		if err := writeTable(filepath.Join(dir, f.name), f.table); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(path string, t *ingest.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer f.Close()
	cw := csv.NewWriter(f)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
