package normalize

import "github.com/mpapenbr/race-replay-go/pkg/model"

func eqFloatPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqBoolPtr(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func telemetrySampleEqual(a, b *model.TelemetrySample) bool {
	return a.SessionTime == b.SessionTime &&
		a.Driver == b.Driver &&
		eqFloatPtr(a.X, b.X) &&
		eqFloatPtr(a.Y, b.Y) &&
		eqFloatPtr(a.Speed, b.Speed) &&
		eqFloatPtr(a.Throttle, b.Throttle) &&
		eqFloatPtr(a.Brake, b.Brake) &&
		eqFloatPtr(a.Gear, b.Gear) &&
		eqFloatPtr(a.Lap, b.Lap) &&
		eqBoolPtr(a.InPit, b.InPit)
}

func telemetrySampleAllNull(s *model.TelemetrySample) bool {
	return s.X == nil && s.Y == nil && s.Speed == nil && s.Throttle == nil &&
		s.Brake == nil && s.Gear == nil && s.Lap == nil && s.InPit == nil
}

func pitSampleEqual(a, b *model.PitSample) bool {
	return a.SessionTime == b.SessionTime &&
		a.Driver == b.Driver &&
		eqBoolPtr(a.InPit, b.InPit) &&
		eqFloatPtr(a.PitTimeIn, b.PitTimeIn) &&
		eqFloatPtr(a.PitTimeOut, b.PitTimeOut) &&
		eqFloatPtr(a.StopDuration, b.StopDuration) &&
		eqFloatPtr(a.Lap, b.Lap)
}

func pitSampleAllNull(s *model.PitSample) bool {
	return s.InPit == nil && s.PitTimeIn == nil && s.PitTimeOut == nil &&
		s.StopDuration == nil && s.Lap == nil
}

func raceEventEqual(a, b *model.RaceEvent) bool {
	return a.SessionTime == b.SessionTime &&
		a.Type == b.Type &&
		a.Message == b.Message &&
		eqFloatPtr(a.Lap, b.Lap)
}

func raceEventAllNull(s *model.RaceEvent) bool {
	return s.Type == "" && s.Message == "" && s.Lap == nil
}

func leaderboardEntryEqual(a, b *model.LeaderboardEntry) bool {
	return a.SessionTime == b.SessionTime &&
		a.Driver == b.Driver &&
		eqFloatPtr(a.Position, b.Position) &&
		eqFloatPtr(a.GapAhead, b.GapAhead) &&
		eqFloatPtr(a.Interval, b.Interval)
}

func leaderboardEntryAllNull(s *model.LeaderboardEntry) bool {
	return s.Position == nil && s.GapAhead == nil && s.Interval == nil
}
