package raw

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/mpapenbr/race-replay-go/log"
	"github.com/mpapenbr/race-replay-go/pkg/ingest"
	"github.com/mpapenbr/race-replay-go/pkg/model"
	"github.com/mpapenbr/race-replay-go/pkg/normalize"
)

const timeCol = "SessionTime"

// candidate column names seen across telemetry exporters
var (
	xCandidates = []string{"X", "x", "Xpos", "PosX", "Longitude", "Lon"}
	yCandidates = []string{"Y", "y", "Ypos", "PosY", "Latitude", "Lat"}

	pitFlagCandidates = []string{"InPit", "inPit", "Pit", "PitStatus"}
)

func floatCell(t *ingest.Table, row, col int) *float64 {
	if col < 0 {
		return nil
	}
	raw := t.Cell(row, col)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func boolCell(t *ingest.Table, row, col int) *bool {
	if col < 0 {
		return nil
	}
	raw := t.Cell(row, col)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// rowTime parses the time cell; row is dropped by the caller on error.
//
//nolint:whitespace // can't make the linters happy
func rowTime(
	t *ingest.Table, row, col int, l *log.Logger, source string,
) (time.Duration, bool) {
	raw := t.Cell(row, col)
	parsed, err := normalize.ParseSessionTime(raw)
	if err != nil {
		l.Warn("dropping row with unparsable time",
			log.String("source", source),
			log.Int("row", row),
			log.String("value", raw))
		return 0, false
	}
	return parsed, true
}

func parseGrid(t *ingest.Table) ([]model.GridEntry, error) {
	if t == nil {
		return nil, fmt.Errorf("table is missing")
	}
	driverCol := t.Col("Driver")
	nameCol := t.Col("DriverName")
	if driverCol < 0 && nameCol < 0 {
		return nil, fmt.Errorf("neither Driver nor DriverName column present")
	}
	idCol := driverCol
	if idCol < 0 {
		idCol = nameCol
	}
	posCol := t.Col("GridPosition")
	teamCol := t.Col("Team")
	tyreCol := t.Col("TyreCompound")

	entries := make([]model.GridEntry, 0, len(t.Rows))
	for i := range t.Rows {
		id := t.Cell(i, idCol)
		if id == "" {
			continue
		}
		e := model.GridEntry{
			Driver:       id,
			DriverName:   t.Cell(i, nameCol),
			Team:         t.Cell(i, teamCol),
			TyreCompound: t.Cell(i, tyreCol),
		}
		if p := floatCell(t, i, posCol); p != nil {
			pos := int(*p)
			e.GridPosition = &pos
		}
		entries = append(entries, e)
	}
	if posCol >= 0 {
		slices.SortStableFunc(entries, func(a, b model.GridEntry) int {
			if a.GridPosition == nil || b.GridPosition == nil {
				return 0
			}
			return cmp.Compare(*a.GridPosition, *b.GridPosition)
		})
	}
	return entries, nil
}

//nolint:dupl // telemetry and pits resolve different columns
func parseTelemetry(
	t *ingest.Table, l *log.Logger,
) (map[string][]model.TelemetrySample, error) {
	if t == nil {
		return nil, fmt.Errorf("table is missing")
	}
	tCol := t.Col(timeCol)
	if tCol < 0 {
		return nil, fmt.Errorf("no recognizable time column")
	}
	drvCol := t.Col("Driver")
	if drvCol < 0 {
		return nil, fmt.Errorf("no Driver column")
	}
	xCol, _ := t.Resolve(xCandidates...)
	yCol, _ := t.Resolve(yCandidates...)
	speedCol := t.Col("Speed")
	throttleCol := t.Col("Throttle")
	brakeCol := t.Col("Brake")
	gearCol := t.Col("Gear")
	lapCol := t.Col("Lap")
	pitCol := t.Col("inPit")

	out := make(map[string][]model.TelemetrySample)
	for i := range t.Rows {
		ts, ok := rowTime(t, i, tCol, l, "telemetry")
		if !ok {
			continue
		}
		drv := t.Cell(i, drvCol)
		if drv == "" {
			l.Warn("dropping telemetry row without driver", log.Int("row", i))
			continue
		}
		out[drv] = append(out[drv], model.TelemetrySample{
			SessionTime: ts,
			Driver:      drv,
			X:           floatCell(t, i, xCol),
			Y:           floatCell(t, i, yCol),
			Speed:       floatCell(t, i, speedCol),
			Throttle:    floatCell(t, i, throttleCol),
			Brake:       floatCell(t, i, brakeCol),
			Gear:        floatCell(t, i, gearCol),
			Lap:         floatCell(t, i, lapCol),
			InPit:       boolCell(t, i, pitCol),
		})
	}
	return out, nil
}

func parsePits(
	t *ingest.Table, l *log.Logger,
) (map[string][]model.PitSample, error) {
	if t == nil {
		return nil, fmt.Errorf("table is missing")
	}
	tCol := t.Col(timeCol)
	if tCol < 0 {
		return nil, fmt.Errorf("no recognizable time column")
	}
	drvCol := t.Col("Driver")
	if drvCol < 0 {
		return nil, fmt.Errorf("no Driver column")
	}
	flagCol, _ := t.Resolve(pitFlagCandidates...)
	inCol := t.Col("PitTimeIn")
	outCol := t.Col("PitTimeOut")
	durCol := t.Col("StopDuration")
	lapCol := t.Col("Lap")

	out := make(map[string][]model.PitSample)
	for i := range t.Rows {
		ts, ok := rowTime(t, i, tCol, l, "pit stops")
		if !ok {
			continue
		}
		drv := t.Cell(i, drvCol)
		if drv == "" {
			l.Warn("dropping pit row without driver", log.Int("row", i))
			continue
		}
		out[drv] = append(out[drv], model.PitSample{
			SessionTime:  ts,
			Driver:       drv,
			InPit:        boolCell(t, i, flagCol),
			PitTimeIn:    floatCell(t, i, inCol),
			PitTimeOut:   floatCell(t, i, outCol),
			StopDuration: floatCell(t, i, durCol),
			Lap:          floatCell(t, i, lapCol),
		})
	}
	return out, nil
}

func parseEvents(t *ingest.Table, l *log.Logger) ([]model.RaceEvent, error) {
	if t == nil {
		return nil, fmt.Errorf("table is missing")
	}
	tCol := t.Col(timeCol)
	if tCol < 0 {
		return nil, fmt.Errorf("no recognizable time column")
	}
	msgCol := t.Col("Message")
	typeCol := t.Col("Type")
	lapCol := t.Col("Lap")

	out := make([]model.RaceEvent, 0, len(t.Rows))
	for i := range t.Rows {
		ts, ok := rowTime(t, i, tCol, l, "race events")
		if !ok {
			continue
		}
		out = append(out, model.RaceEvent{
			SessionTime: ts,
			Type:        t.Cell(i, typeCol),
			Message:     t.Cell(i, msgCol),
			Lap:         floatCell(t, i, lapCol),
		})
	}
	return out, nil
}

func parseLeaderboard(
	t *ingest.Table, l *log.Logger,
) ([]model.LeaderboardEntry, error) {
	if t == nil {
		return nil, fmt.Errorf("table is missing")
	}
	tCol := t.Col(timeCol)
	if tCol < 0 {
		return nil, fmt.Errorf("no recognizable time column")
	}
	drvCol := t.Col("Driver")
	if drvCol < 0 {
		return nil, fmt.Errorf("no Driver column")
	}
	posCol := t.Col("Position")
	gapCol := t.Col("GapAhead")
	intCol := t.Col("Interval")

	out := make([]model.LeaderboardEntry, 0, len(t.Rows))
	for i := range t.Rows {
		ts, ok := rowTime(t, i, tCol, l, "leaderboard")
		if !ok {
			continue
		}
		drv := t.Cell(i, drvCol)
		if drv == "" {
			l.Warn("dropping leaderboard row without driver", log.Int("row", i))
			continue
		}
		out = append(out, model.LeaderboardEntry{
			SessionTime: ts,
			Driver:      drv,
			Position:    floatCell(t, i, posCol),
			GapAhead:    floatCell(t, i, gapCol),
			Interval:    floatCell(t, i, intCol),
		})
	}
	return out, nil
}

func parseTrack(t *ingest.Table, l *log.Logger) ([]model.TrackPoint, error) {
	if t == nil {
		return nil, fmt.Errorf("table is missing")
	}
	xCol, okX := t.Resolve(xCandidates...)
	yCol, okY := t.Resolve(yCandidates...)
	if !okX || !okY {
		return nil, fmt.Errorf("no X/Y columns")
	}
	out := make([]model.TrackPoint, 0, len(t.Rows))
	for i := range t.Rows {
		x := floatCell(t, i, xCol)
		y := floatCell(t, i, yCol)
		if x == nil || y == nil {
			l.Warn("dropping track point without coordinates", log.Int("row", i))
			continue
		}
		out = append(out, model.TrackPoint{X: *x, Y: *y})
	}
	return out, nil
}
