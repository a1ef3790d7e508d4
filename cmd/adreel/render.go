package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/adreel/internal/config"
	"github.com/ivlev/adreel/internal/engine"
	"github.com/ivlev/adreel/internal/system"
	"github.com/ivlev/adreel/internal/video"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the composition to a video file",
	Long: `Renders every frame of the selected variant (or the --start/--end range)
in parallel and streams them to ffmpeg, which encodes the video and mixes the
audio tracks.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()
		out := console()

		v, comp, err := loadComposition(cmd)
		if err != nil {
			return err
		}
		s := comp.Settings()

		cfg := &config.Config{Variant: v.Name, Vertical: v.Vertical, BuildVersion: BuildVersion}
		cfg.SheetPath, _ = flags.GetString("sheet")
		cfg.OutputVideo, _ = flags.GetString("output")
		cfg.Width, _ = flags.GetInt("width")
		cfg.Height, _ = flags.GetInt("height")
		cfg.StartFrame, _ = flags.GetInt("start")
		cfg.EndFrame, _ = flags.GetInt("end")
		cfg.Workers, _ = flags.GetInt("workers")
		cfg.AudioPath, _ = flags.GetString("audio")
		cfg.AudioVolume, _ = flags.GetFloat64("audio-volume")
		cfg.VideoEncoder, _ = flags.GetString("encoder")
		cfg.Quality, _ = flags.GetInt("quality")
		cfg.ShowStats, _ = flags.GetBool("stats")
		cfg.MetricsFile, _ = flags.GetString("metrics-file")
		cfg.FPS = s.FPS

		if cfg.OutputVideo == "" {
			timestamp := time.Now().Format("2006-01-02_15-04-05")
			cfg.OutputVideo = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", s.ID, timestamp))
		}
		if err := os.MkdirAll(filepath.Dir(cfg.OutputVideo), 0o755); err != nil {
			return err
		}

		if cfg.AudioPath == "auto" {
			latest, err := system.FindLatestAudio(filepath.Join("input", "audio"))
			if err != nil {
				return err
			}
			cfg.AudioPath = latest
			out.Info("Выбрано аудио: %s", cfg.AudioPath)
		}
		if cfg.AudioPath != "" {
			if d, err := system.GetAudioDuration(ctx, cfg.AudioPath); err != nil {
				out.Warn("Не удалось получить длительность аудио: %v", err)
			} else if d < s.Seconds() {
				out.Warn("Аудио (%.2fs) короче видео (%.2fs)", d, s.Seconds())
			}
		}

		if cfg.VideoEncoder == "" {
			cfg.VideoEncoder = system.GetBestH264Encoder(ctx)
			if cfg.VideoEncoder != "libx264" {
				out.Info("Обнаружено аппаратное ускорение: %s", cfg.VideoEncoder)
			}
		}
		if cfg.Quality == 0 {
			cfg.Quality = defaultQuality(cfg.VideoEncoder)
		}

		project := engine.NewRenderProject(cfg, comp, &video.FFmpegEncoder{})
		project.Log = logger(cmd)
		project.Console = out
		_, err = project.Run(ctx)
		return err
	},
}

func defaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75 // Хорошее качество для VideoToolbox
	case "h264_nvenc":
		return 28 // Эквивалент CRF для NVENC
	default:
		return 23 // Стандартный CRF для x264
	}
}

func init() {
	f := renderCmd.Flags()
	f.StringP("output", "o", "", "Output video (default output/<composition>_<timestamp>.mp4)")
	f.Int("width", 0, "Output width; height follows the aspect ratio (0 = native)")
	f.Int("height", 0, "Output height when --width is not set")
	f.Int("start", 0, "First frame to render")
	f.Int("end", 0, "Frame to stop before (0 = end of the composition)")
	f.Int("workers", 0, "Render workers (0 = sized from CPUs and memory)")
	f.String("audio", "", "Audio file replacing the composition audio; \"auto\" picks the newest in input/audio")
	f.Float64("audio-volume", 1, "Volume of --audio")
	f.String("encoder", "", "ffmpeg video encoder (default: best available H.264)")
	f.Int("quality", 0, "Quality (0 = auto; x264/NVENC: CRF/CQ, VideoToolbox: bitrate = Q*100 kbit/s)")
	f.Bool("stats", false, "Print the performance report")
	f.String("metrics-file", "", "Write Prometheus metrics to this textfile")
	rootCmd.AddCommand(renderCmd)
}
