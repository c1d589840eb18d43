package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/batch"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/config"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/report"
)

func newReportCmd(ios streams) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "report [summary-file-or-output-dir]",
		Short: "Print the report of a previous or interrupted run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := output
			if len(args) == 1 {
				path = args[0]
			}
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, batch.SummaryFilename)
			}

			summary, err := batch.LoadSummary(path)
			if err != nil {
				return err
			}
			return report.Render(ios.out, summary)
		},
	}

	cmd.Flags().StringVar(&output, "output", config.DefaultOutput, "Output directory of the run")
	return cmd
}
