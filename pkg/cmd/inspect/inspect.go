package inspect

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/race-replay-go/log"
	"github.com/mpapenbr/race-replay-go/pkg/cmd/loader"
	"github.com/mpapenbr/race-replay-go/pkg/export"
	"github.com/mpapenbr/race-replay-go/pkg/stitch"
)

var frameIdx int

func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "show race timings, entities and the state at a chosen frame",
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspectRace(cmd.Context())
		},
	}
	loader.AddSourceFlags(cmd)
	cmd.Flags().IntVar(&frameIdx,
		"frame", -1, "show leaderboard and pit state at this frame")
	return cmd
}

//nolint:funlen // sequential report
func inspectRace(ctx context.Context) error {
	logger := log.GetFromContext(ctx)
	store, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	stitcher := stitch.New(store, stitch.WithLogger(logger.Named("stitch")))
	tl := stitcher.Timeline()
	timings := store.RaceTimings()

	fmt.Printf("Session:  %s\n", store.SessionID())
	if timings.Determined {
		fmt.Printf("Race:     %s -> %s (duration %s)\n",
			export.FormatTick(timings.Start),
			export.FormatTick(timings.End),
			timings.Duration)
	} else {
		fmt.Println("Race:     timings undetermined (no events)")
	}
	fmt.Printf("Timeline: %d ticks @ %s\n", tl.Len(), tl.Step())

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Grid", "Driver", "Team", "Tyre", "Telemetry rows"})
	for _, g := range store.Grid() {
		gridPos := ""
		if g.GridPosition != nil {
			gridPos = strconv.Itoa(*g.GridPosition)
		}
		tw.AppendRow(table.Row{
			gridPos, g.Driver, g.Team, g.TyreCompound,
			len(store.TelemetryFor(g.Driver)),
		})
	}
	tw.Render()

	if frameIdx < 0 {
		return nil
	}
	if frameIdx >= tl.Len() {
		return fmt.Errorf("frame %d out of range [0,%d)", frameIdx, tl.Len())
	}

	frames := stitcher.Stitch()
	lb := stitcher.BuildLeaderboardTimeline()
	row := frames.Row(frameIdx)

	fmt.Printf("\nFrame %d, race time %s\n",
		frameIdx, export.FormatTick(tl.At(frameIdx)))
	if row[0].Message != "" {
		fmt.Printf("Race control: %s\n", row[0].Message)
	}

	inPit := make(map[string]bool, len(row))
	for i := range row {
		inPit[row[i].Entity] = row[i].InPit
	}
	fw := table.NewWriter()
	fw.SetOutputMirror(os.Stdout)
	fw.SetStyle(table.StyleRounded)
	fw.AppendHeader(table.Row{"Pos", "Driver", "Gap", "Interval", "Status"})
	fw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	for _, e := range lb[frameIdx].Entries {
		status := "Racing"
		if inPit[e.Driver] {
			status = "PIT"
		}
		fw.AppendRow(table.Row{
			e.Position, e.Driver,
			fmt.Sprintf("%.1f", e.GapAhead),
			fmt.Sprintf("%.1f", e.Interval),
			status,
		})
	}
	fw.Render()
	return nil
}
