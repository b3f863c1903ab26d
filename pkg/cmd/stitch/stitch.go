package stitch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/race-replay-go/log"
	"github.com/mpapenbr/race-replay-go/pkg/cmd/loader"
	"github.com/mpapenbr/race-replay-go/pkg/config"
	"github.com/mpapenbr/race-replay-go/pkg/export"
	"github.com/mpapenbr/race-replay-go/pkg/stitch"
	"github.com/mpapenbr/race-replay-go/pkg/timeline"
)

var (
	framesOut      string
	leaderboardOut string
)

func NewStitchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stitch",
		Short: "stitch the race sources into the frame table and export it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return stitchRace(cmd.Context())
		},
	}
	loader.AddSourceFlags(cmd)
	cmd.Flags().StringVarP(&framesOut,
		"output", "o", "frames.json", "output file for the stitched frames")
	cmd.Flags().StringVar(&leaderboardOut,
		"leaderboard-output", "",
		"optional output file for the leaderboard timeline")
	cmd.Flags().StringVar(&config.TimelineStep,
		"step", "100ms", "canonical timeline step")
	cmd.Flags().StringVar(&config.Tolerance,
		"tolerance", "500ms", "nearest-sample tolerance for positions")
	cmd.Flags().IntVar(&config.Workers,
		"workers", 0, "concurrent entity workers (0: one per cpu)")
	return cmd
}

func stitcherOptions(logger *log.Logger) []stitch.Option {
	opts := []stitch.Option{stitch.WithLogger(logger.Named("stitch"))}
	if step, err := time.ParseDuration(config.TimelineStep); err == nil {
		opts = append(opts, stitch.WithStep(step))
	} else {
		logger.Warn("invalid step, using default",
			log.String("step", config.TimelineStep),
			log.Duration("default", timeline.DefaultStep))
	}
	if tol, err := time.ParseDuration(config.Tolerance); err == nil {
		opts = append(opts, stitch.WithTolerance(tol))
	} else {
		logger.Warn("invalid tolerance, using default",
			log.String("tolerance", config.Tolerance),
			log.Duration("default", stitch.DefaultTolerance))
	}
	if config.Workers > 0 {
		opts = append(opts, stitch.WithWorkers(config.Workers))
	}
	return opts
}

func stitchRace(ctx context.Context) error {
	logger := log.GetFromContext(ctx)
	store, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	stitcher := stitch.New(store, stitcherOptions(logger)...)

	frames := stitcher.Stitch()
	if frames.Empty() {
		logger.Warn("stitched race is empty, writing empty document")
	}
	out, err := os.Create(framesOut)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", framesOut, err)
	}
	defer out.Close()
	if err := export.WriteFrames(out, frames); err != nil {
		return err
	}
	logger.Info("frames written",
		log.String("file", framesOut),
		log.Int("ticks", len(frames.Ticks())),
		log.Int("frames", frames.Len()))

	if leaderboardOut == "" {
		return nil
	}
	lb, err := os.Create(leaderboardOut)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", leaderboardOut, err)
	}
	defer lb.Close()
	if err := export.WriteLeaderboard(
		lb, store.SessionID(), stitcher.BuildLeaderboardTimeline()); err != nil {
		return err
	}
	logger.Info("leaderboard timeline written",
		log.String("file", leaderboardOut))
	return nil
}
