// Package render produces a static HTML chart of a single stitched frame:
// the track outline plus every entity position known at that tick.
package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mpapenbr/race-replay-go/pkg/export"
	"github.com/mpapenbr/race-replay-go/pkg/model"
)

//nolint:funlen // chart option plumbing
func Frame(
	w io.Writer,
	track []model.TrackPoint,
	ft *model.FrameTable,
	frameIdx int,
) error {
	if frameIdx < 0 || frameIdx >= len(ft.Ticks()) {
		return fmt.Errorf("frame %d out of range [0,%d)", frameIdx, len(ft.Ticks()))
	}
	tick := ft.Ticks()[frameIdx]

	minX, maxX, minY, maxY := bounds(track)

	trackData := make([]opts.ScatterData, 0, len(track))
	for _, p := range track {
		trackData = append(trackData,
			opts.ScatterData{Value: []interface{}{p.X, p.Y}})
	}

	onTrack := make([]opts.ScatterData, 0)
	inPit := make([]opts.ScatterData, 0)
	for _, f := range ft.Row(frameIdx) {
		if !f.HasPosition() {
			// missing marker: the entity is simply not drawn this frame
			continue
		}
		d := opts.ScatterData{
			Name:  f.Entity,
			Value: []interface{}{f.X, f.Y},
		}
		if f.InPit {
			inPit = append(inPit, d)
		} else {
			onTrack = append(onTrack, d)
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Race Replay Frame",
			Theme:     "dark",
			Width:     "900px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Track Map",
			Subtitle: fmt.Sprintf("frame %d / %d, race time %s",
				frameIdx, len(ft.Ticks()), export.FormatTick(tick)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Min: minX, Max: maxX, Name: "X (m)",
			NameLocation: "middle", NameGap: 25,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Min: minY, Max: maxY, Name: "Y (m)",
			NameLocation: "middle", NameGap: 30,
		}),
	)

	scatter.AddSeries("track", trackData,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ffffff"}))
	scatter.AddSeries("on track", onTrack,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 18}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#3498db"}))
	scatter.AddSeries("in pit", inPit,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 18}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#e74c3c"}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("could not render frame chart: %w", err)
	}
	return nil
}

func bounds(track []model.TrackPoint) (minX, maxX, minY, maxY float64) {
	if len(track) == 0 {
		return -20, 150, -20, 100
	}
	minX, maxX = track[0].X, track[0].X
	minY, maxY = track[0].Y, track[0].Y
	for _, p := range track {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	// padding so edge points stay visible
	return minX - 10, maxX + 10, minY - 10, maxY + 10
}
