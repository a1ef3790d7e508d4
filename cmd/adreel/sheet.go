package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ivlev/adreel/internal/director"
	"github.com/ivlev/adreel/internal/promo"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Write a timing sheet to edit and render with --sheet",
	Long: `Exports the selected variant as a YAML timing sheet. With --scenes the
sheet is generated instead: the scenes play end to end, sharing --seconds.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		scenes, _ := flags.GetStringSlice("scenes")
		path, _ := flags.GetString("output")

		var sheet *director.Sheet
		if len(scenes) > 0 {
			console().Info("Режим генерации сценария...")
			name, _ := flags.GetString("name")
			seconds, _ := flags.GetFloat64("seconds")
			fps, _ := flags.GetInt("fps")
			vertical, _ := flags.GetBool("vertical")
			w, h := 1920, 1080
			if vertical {
				w, h = h, w
			}
			var err error
			sheet, err = director.NewDirector(fps).GenerateSheet(name, scenes, seconds, w, h, vertical)
			if err != nil {
				return err
			}
			// the sheet has to build before it is worth saving
			v, err := sheet.Variant()
			if err != nil {
				return err
			}
			if _, err := promo.Build(v); err != nil {
				return err
			}
		} else {
			v, err := loadVariant(cmd)
			if err != nil {
				return err
			}
			sheet = director.FromVariant(v)
		}

		if path == "" {
			path = director.SheetPath(director.SheetsDir, sheet.Name)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := director.WriteSheet(sheet, path); err != nil {
			return err
		}
		console().Done("Успех! Сценарий сохранен: %s", path)
		return nil
	},
}

func init() {
	f := sheetCmd.Flags()
	f.StringP("output", "o", "", "Sheet path (default "+director.SheetsDir+"/sheet_<name>_<timestamp>.yaml)")
	f.StringSlice("scenes", nil, "Generate a sheet playing these scenes in order")
	f.String("name", "custom", "Name of a generated sheet")
	f.Float64("seconds", 15, "Total length of a generated sheet")
	f.Int("fps", 30, "Frame rate of a generated sheet")
	rootCmd.AddCommand(sheetCmd)
}
