package render

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/race-replay-go/log"
	"github.com/mpapenbr/race-replay-go/pkg/cmd/loader"
	"github.com/mpapenbr/race-replay-go/pkg/render"
	"github.com/mpapenbr/race-replay-go/pkg/stitch"
)

var (
	frameIdx int
	output   string
)

func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render one stitched frame as a static HTML chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderFrame(cmd.Context())
		},
	}
	loader.AddSourceFlags(cmd)
	cmd.Flags().IntVar(&frameIdx, "frame", 0, "frame number to render")
	cmd.Flags().StringVarP(&output,
		"output", "o", "frame.html", "output html file")
	return cmd
}

func renderFrame(ctx context.Context) error {
	logger := log.GetFromContext(ctx)
	store, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	frames := stitch.New(store, stitch.WithLogger(logger.Named("stitch"))).Stitch()

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", output, err)
	}
	defer out.Close()
	if err := render.Frame(out, store.TrackMap(), frames, frameIdx); err != nil {
		return err
	}
	logger.Info("frame rendered",
		log.Int("frame", frameIdx),
		log.String("file", output))
	return nil
}
