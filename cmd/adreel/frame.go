package main

import (
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ivlev/adreel/internal/config"
	"github.com/ivlev/adreel/internal/engine"
)

var frameCmd = &cobra.Command{
	Use:   "frame <n>",
	Short: "Export one frame as PNG or as its visual tree in JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("frame number: %w", err)
		}
		_, comp, err := loadComposition(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		asJSON, _ := flags.GetBool("json")
		path, _ := flags.GetString("output")

		if asJSON {
			out, err := comp.Evaluate(n)
			if err != nil {
				return err
			}
			w := os.Stdout
			if path != "" {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		cfg := &config.Config{}
		cfg.Width, _ = flags.GetInt("width")
		cfg.Height, _ = flags.GetInt("height")
		project := engine.NewRenderProject(cfg, comp, nil)
		project.Log = logger(cmd)
		img, err := project.RenderFrame(cmd.Context(), n)
		if err != nil {
			return err
		}

		if path == "" {
			path = fmt.Sprintf("%s_%05d.png", comp.Settings().ID, n)
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		console().Done("Кадр %d сохранен: %s", n, path)
		return nil
	},
}

func init() {
	f := frameCmd.Flags()
	f.StringP("output", "o", "", "Output file (PNG default <composition>_<n>.png, JSON default stdout)")
	f.Bool("json", false, "Write the visual tree instead of pixels")
	f.Int("width", 0, "PNG width (0 = native)")
	f.Int("height", 0, "PNG height when --width is not set")
	rootCmd.AddCommand(frameCmd)
}
