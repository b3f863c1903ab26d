// Package loader resolves the six source csv files from the CLI
// configuration and loads them into a raw.Store.
package loader

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/race-replay-go/log"
	"github.com/mpapenbr/race-replay-go/pkg/config"
	"github.com/mpapenbr/race-replay-go/pkg/ingest"
	"github.com/mpapenbr/race-replay-go/pkg/raw"
	"github.com/mpapenbr/race-replay-go/pkg/sample"
)

// AddSourceFlags registers the shared source file flags on cmd.
func AddSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&config.DataDir,
		"data-dir",
		"sample_race",
		"directory containing the six race csv files (standard names)")
	cmd.Flags().StringVar(&config.GridFile,
		"grid", "", "starting grid csv (overrides data-dir lookup)")
	cmd.Flags().StringVar(&config.TelemetryFile,
		"telemetry", "", "telemetry csv (overrides data-dir lookup)")
	cmd.Flags().StringVar(&config.PitStopsFile,
		"pit-stops", "", "pit stops csv (overrides data-dir lookup)")
	cmd.Flags().StringVar(&config.EventsFile,
		"events", "", "race events csv (overrides data-dir lookup)")
	cmd.Flags().StringVar(&config.TrackMapFile,
		"track-map", "", "track map csv (overrides data-dir lookup)")
	cmd.Flags().StringVar(&config.LeaderboardFile,
		"leaderboard", "", "leaderboard csv (overrides data-dir lookup)")
}

func resolve(override, name string) string {
	if override != "" {
		return override
	}
	return filepath.Join(config.DataDir, name)
}

// Load reads all six tables and performs the all-or-nothing store load.
func Load(ctx context.Context) (*raw.Store, error) {
	logger := log.GetFromContext(ctx).Named("loader")
	read := func(override, name string) (*ingest.Table, error) {
		path := resolve(override, name)
		logger.Debug("reading source", log.String("path", path))
		return ingest.ReadFile(path)
	}

	var src raw.Sources
	var err error
	if src.Grid, err = read(config.GridFile, sample.GridFile); err != nil {
		return nil, &raw.LoadError{Source: "starting grid", Err: err}
	}
	if src.Telemetry, err = read(config.TelemetryFile, sample.TelemetryFile); err != nil {
		return nil, &raw.LoadError{Source: "telemetry", Err: err}
	}
	if src.PitStops, err = read(config.PitStopsFile, sample.PitStopsFile); err != nil {
		return nil, &raw.LoadError{Source: "pit stops", Err: err}
	}
	if src.Events, err = read(config.EventsFile, sample.EventsFile); err != nil {
		return nil, &raw.LoadError{Source: "race events", Err: err}
	}
	if src.TrackMap, err = read(config.TrackMapFile, sample.TrackMapFile); err != nil {
		return nil, &raw.LoadError{Source: "track map", Err: err}
	}
	if src.Leaderboard, err = read(
		config.LeaderboardFile, sample.LeaderboardFile); err != nil {
		return nil, &raw.LoadError{Source: "leaderboard", Err: err}
	}
	return raw.Load(src, raw.WithLogger(log.GetFromContext(ctx).Named("raw")))
}
