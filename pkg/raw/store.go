// Package raw owns the six parsed source tables of a race session and
// provides typed, validated per-entity slices. Candidate column names are
// resolved once at load time; readers only ever see fixed-schema records.
package raw

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/mpapenbr/race-replay-go/log"
	"github.com/mpapenbr/race-replay-go/pkg/ingest"
	"github.com/mpapenbr/race-replay-go/pkg/model"
)

// Sources carries the six already-parsed tables of one race session.
type Sources struct {
	Grid        *ingest.Table
	Telemetry   *ingest.Table
	PitStops    *ingest.Table
	Events      *ingest.Table
	TrackMap    *ingest.Table
	Leaderboard *ingest.Table
}

// LoadError reports a required source that is missing, unreadable or lacks
// a recognizable time column. Load is all-or-nothing: on error no partial
// store exists.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("could not load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store is the immutable result of a successful load. It is replaced as a
// whole on reload; readers never observe a half-loaded state.
type Store struct {
	sessionID   string
	grid        []model.GridEntry
	entities    []string
	telemetry   map[string][]model.TelemetrySample
	pits        map[string][]model.PitSample
	events      []model.RaceEvent
	leaderboard []model.LeaderboardEntry
	track       []model.TrackPoint
}

type Option func(*loadCfg)

type loadCfg struct {
	log *log.Logger
}

func WithLogger(l *log.Logger) Option {
	return func(c *loadCfg) { c.log = l }
}

// Load converts the six source tables into a Store. Row-level issues
// (unparsable time, missing entity id) drop the row with a warning;
// structural issues return a LoadError.
//
//nolint:cyclop // one block per source
func Load(src Sources, opts ...Option) (*Store, error) {
	cfg := &loadCfg{log: log.Default().Named("raw")}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Store{sessionID: uuid.NewString()}

	var err error
	if s.grid, err = parseGrid(src.Grid); err != nil {
		return nil, &LoadError{Source: "starting grid", Err: err}
	}
	s.entities = lo.Uniq(lo.Map(s.grid,
		func(g model.GridEntry, _ int) string { return g.Driver }))

	if s.telemetry, err = parseTelemetry(src.Telemetry, cfg.log); err != nil {
		return nil, &LoadError{Source: "telemetry", Err: err}
	}
	if s.pits, err = parsePits(src.PitStops, cfg.log); err != nil {
		return nil, &LoadError{Source: "pit stops", Err: err}
	}
	if s.events, err = parseEvents(src.Events, cfg.log); err != nil {
		return nil, &LoadError{Source: "race events", Err: err}
	}
	if s.leaderboard, err = parseLeaderboard(src.Leaderboard, cfg.log); err != nil {
		return nil, &LoadError{Source: "leaderboard", Err: err}
	}
	if s.track, err = parseTrack(src.TrackMap, cfg.log); err != nil {
		return nil, &LoadError{Source: "track map", Err: err}
	}

	cfg.log.Info("session loaded",
		log.String("session", s.sessionID),
		log.Int("entities", len(s.entities)),
		log.Int("events", len(s.events)))
	return s, nil
}

// SessionID tags this load; every export derived from the store carries it.
func (s *Store) SessionID() string { return s.sessionID }

// Entities returns the ordered entity ids declared by the starting grid.
// The grid is the single source of truth for which entities exist.
func (s *Store) Entities() []string { return s.entities }

func (s *Store) Grid() []model.GridEntry { return s.grid }

// TelemetryFor returns the telemetry rows of one entity. Unknown entities
// yield an empty slice, never an error.
func (s *Store) TelemetryFor(entity string) []model.TelemetrySample {
	return s.telemetry[entity]
}

// PitSamplesFor returns the pit rows of one entity, empty for unknown ids.
func (s *Store) PitSamplesFor(entity string) []model.PitSample {
	return s.pits[entity]
}

func (s *Store) Events() []model.RaceEvent { return s.events }

func (s *Store) Leaderboard() []model.LeaderboardEntry { return s.leaderboard }

func (s *Store) TrackMap() []model.TrackPoint { return s.track }
