package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/ivlev/adreel/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play the composition in the terminal",
	Long:  `Plays the composition with half-block cells. Space pauses, arrows step, q or Esc quits.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, comp, err := loadComposition(cmd)
		if err != nil {
			return err
		}

		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()

		var opts []preview.Option
		if loop, _ := cmd.Flags().GetBool("loop"); loop {
			opts = append(opts, preview.Loop())
		}
		start, _ := cmd.Flags().GetInt("start")
		opts = append(opts, preview.StartAt(start))

		return preview.New(screen, comp, opts...).Run(cmd.Context())
	},
}

func init() {
	previewCmd.Flags().Bool("loop", false, "Restart after the last frame")
	previewCmd.Flags().Int("start", 0, "Frame to start at")
	rootCmd.AddCommand(previewCmd)
}
