package sample

import (
	"github.com/spf13/cobra"

	"github.com/mpapenbr/race-replay-go/log"
	"github.com/mpapenbr/race-replay-go/pkg/sample"
)

var outDir string

func NewSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "generate the six sample race csv files",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.GetFromContext(cmd.Context())
			if err := sample.Generate().WriteCSV(outDir); err != nil {
				return err
			}
			logger.Info("sample race written", log.String("dir", outDir))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir,
		"output-dir", "o", "sample_race", "directory for the generated files")
	return cmd
}
