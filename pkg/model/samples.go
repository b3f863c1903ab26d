package model

import "time"

// GridEntry describes one starting grid row. Driver is the stable entity id
// used throughout the engine (short code preferred over the full name).
type GridEntry struct {
	Driver       string `json:"driver"`
	DriverName   string `json:"driverName,omitempty"`
	Team         string `json:"team,omitempty"`
	GridPosition *int   `json:"gridPosition,omitempty"`
	TyreCompound string `json:"tyreCompound,omitempty"`
}

// TelemetrySample is one telemetry row for a single entity.
// Optional columns are nil when the source never provided them.
type TelemetrySample struct {
	SessionTime time.Duration `json:"sessionTime"`
	Driver      string        `json:"driver"`
	X           *float64      `json:"x,omitempty"`
	Y           *float64      `json:"y,omitempty"`
	Speed       *float64      `json:"speed,omitempty"`
	Throttle    *float64      `json:"throttle,omitempty"`
	Brake       *float64      `json:"brake,omitempty"`
	Gear        *float64      `json:"gear,omitempty"`
	Lap         *float64      `json:"lap,omitempty"`
	InPit       *bool         `json:"inPit,omitempty"`
}

// PitSample is one pit stop row for a single entity. InPit carries an
// explicit flag column when the source has one; PitTimeIn/PitTimeOut carry
// an explicit enter/exit pairing (seconds since race start).
type PitSample struct {
	SessionTime  time.Duration `json:"sessionTime"`
	Driver       string        `json:"driver"`
	InPit        *bool         `json:"inPit,omitempty"`
	PitTimeIn    *float64      `json:"pitTimeIn,omitempty"`
	PitTimeOut   *float64      `json:"pitTimeOut,omitempty"`
	StopDuration *float64      `json:"stopDuration,omitempty"`
	Lap          *float64      `json:"lap,omitempty"`
}

// RaceEvent is one race control row (global stream, not entity keyed).
type RaceEvent struct {
	SessionTime time.Duration `json:"sessionTime"`
	Lap         *float64      `json:"lap,omitempty"`
	Type        string        `json:"type,omitempty"`
	Message     string        `json:"message,omitempty"`
}

// LeaderboardEntry is one leaderboard snapshot row, one per (time, entity).
type LeaderboardEntry struct {
	SessionTime time.Duration `json:"sessionTime"`
	Driver      string        `json:"driver"`
	Position    *float64      `json:"position,omitempty"`
	GapAhead    *float64      `json:"gapAhead,omitempty"`
	Interval    *float64      `json:"interval,omitempty"`
}

// TrackPoint is one track geometry waypoint.
type TrackPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
