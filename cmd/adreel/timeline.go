package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/adreel/internal/report"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the windows, gaps, overlaps and audio of a composition",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, comp, err := loadComposition(cmd)
		if err != nil {
			return err
		}
		return report.Print(os.Stdout, report.Timeline(v.Name, comp))
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)
}
