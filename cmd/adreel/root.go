package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ivlev/adreel/internal/composition"
	"github.com/ivlev/adreel/internal/director"
	"github.com/ivlev/adreel/internal/logging"
	"github.com/ivlev/adreel/internal/promo"
	"github.com/ivlev/adreel/internal/report"
	"github.com/ivlev/adreel/internal/timeline"
)

// BuildVersion is set with -ldflags "-X main.BuildVersion=...".
var BuildVersion = "dev"

var rootCmd = &cobra.Command{
	Use:   "adreel",
	Short: "adreel renders the frame-driven product promo video",
	Long: `adreel evaluates the five-scene promo composition frame by frame and
streams the rasterized frames to ffmpeg. Variants pick the cut and the
orientation; timing sheets (YAML) override them.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "[-] Ошибка:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("variant", "launch", fmt.Sprintf("Variant: %v", promo.Names()))
	rootCmd.PersistentFlags().Bool("vertical", false, "1080x1920 layout (Shorts/TikTok/Reels)")
	rootCmd.PersistentFlags().String("sheet", "", "Timing sheet YAML; \"latest\" picks the newest in "+director.SheetsDir)
	rootCmd.PersistentFlags().Bool("reject-overlaps", false, "Fail when two windows share a frame")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
}

func logger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.New(logging.ParseLevel(level))
}

func console() *report.Console {
	return report.NewConsole(os.Stdout)
}

// loadVariant resolves the persistent flags into a variant: a timing sheet
// when --sheet is set, otherwise a built-in cut.
func loadVariant(cmd *cobra.Command) (promo.Variant, error) {
	flags := cmd.Flags()
	sheetPath, _ := flags.GetString("sheet")
	if sheetPath == "" {
		name, _ := flags.GetString("variant")
		vertical, _ := flags.GetBool("vertical")
		return promo.Lookup(name, vertical)
	}

	if sheetPath == "latest" {
		latest, err := director.FindLatestSheet(director.SheetsDir)
		if err != nil {
			return promo.Variant{}, err
		}
		sheetPath = latest
		console().Info("Используется сценарий: %s", sheetPath)
	}
	sheet, err := director.ReadSheet(sheetPath)
	if err != nil {
		return promo.Variant{}, fmt.Errorf("ошибка чтения сценария: %w", err)
	}
	return sheet.Variant()
}

func loadComposition(cmd *cobra.Command) (promo.Variant, *composition.Composition, error) {
	v, err := loadVariant(cmd)
	if err != nil {
		return v, nil, err
	}
	var opts []timeline.Option
	if reject, _ := cmd.Flags().GetBool("reject-overlaps"); reject {
		opts = append(opts, timeline.RejectOverlaps())
	}
	c, err := promo.Build(v, opts...)
	return v, c, err
}
