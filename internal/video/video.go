// Package video streams rendered frames into an external ffmpeg process.
package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/image/draw"
)

// Track is an audio file mixed under the video by ffmpeg.
// Delay shifts the track later; Seek skips its beginning, for renders that
// start mid-composition.
type Track struct {
	Path   string
	Volume float64
	Delay  time.Duration
	Seek   time.Duration
}

// Job describes one output file.
type Job struct {
	Output  string
	Width   int
	Height  int
	FPS     int
	Frames  int
	Encoder string
	Quality int
	Audio   []Track
}

// Duration is the video length; audio is cut to it.
func (j Job) Duration() time.Duration {
	return time.Duration(float64(j.Frames) / float64(j.FPS) * float64(time.Second))
}

// FrameWriter accepts frames in presentation order.
type FrameWriter interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

type Encoder interface {
	Open(ctx context.Context, job Job) (FrameWriter, error)
}

type FFmpegEncoder struct {
	// Binary defaults to "ffmpeg" on PATH.
	Binary string
}

func (e *FFmpegEncoder) Open(ctx context.Context, job Job) (FrameWriter, error) {
	if job.Width <= 0 || job.Height <= 0 || job.FPS <= 0 {
		return nil, fmt.Errorf("invalid job %dx%d@%d", job.Width, job.Height, job.FPS)
	}
	bin := e.Binary
	if bin == "" {
		bin = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, bin, buildFFmpegArgs(job)...)
	w := &ffmpegWriter{cmd: cmd, width: job.Width, height: job.Height}
	cmd.Stderr = &w.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	w.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return w, nil
}

func buildFFmpegArgs(job Job) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", job.Width, job.Height),
		"-framerate", fmt.Sprintf("%d", job.FPS),
		"-i", "-",
	}

	// Аудио микширует ffmpeg: задержка, громкость, затем amix
	if len(job.Audio) > 0 {
		for _, t := range job.Audio {
			if t.Seek > 0 {
				args = append(args, "-ss", fmt.Sprintf("%.3f", t.Seek.Seconds()))
			}
			args = append(args, "-i", t.Path)
		}
		args = append(args,
			"-filter_complex", audioFilter(job.Audio),
			"-map", "0:v",
			"-map", "[aout]",
			"-c:a", "aac",
		)
	}

	args = append(args, "-c:v", encoderName(job.Encoder), "-pix_fmt", "yuv420p")
	args = append(args, qualityArgs(job.Encoder, job.Quality)...)
	if job.Frames > 0 {
		args = append(args, "-t", fmt.Sprintf("%f", job.Duration().Seconds()))
	}
	args = append(args, job.Output)
	return args
}

func audioFilter(tracks []Track) string {
	var graph strings.Builder
	labels := ""
	for i, t := range tracks {
		out := fmt.Sprintf("[a%d]", i)
		if len(tracks) == 1 {
			out = "[aout]"
		}
		fmt.Fprintf(&graph, "[%d:a]adelay=%d:all=1,volume=%f%s;", i+1, t.Delay.Milliseconds(), t.Volume, out)
		labels += out
	}
	if len(tracks) > 1 {
		fmt.Fprintf(&graph, "%samix=inputs=%d:duration=longest:normalize=0[aout]", labels, len(tracks))
	}
	return strings.TrimSuffix(graph.String(), ";")
}

func encoderName(name string) string {
	if name == "" {
		return "libx264"
	}
	return name
}

// Качество в зависимости от энкодера
func qualityArgs(encoder string, quality int) []string {
	switch encoder {
	case "h264_videotoolbox":
		// VideoToolbox не поддерживает -crf, используем битрейт. 75 -> 7.5 Мбит/с
		bitrate := quality * 100
		return []string{"-b:v", fmt.Sprintf("%dk", bitrate)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

type ffmpegWriter struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	width  int
	height int
}

func (w *ffmpegWriter) WriteFrame(img *image.RGBA) error {
	if img.Bounds().Dx() != w.width || img.Bounds().Dy() != w.height {
		return fmt.Errorf("frame is %dx%d, stream is %dx%d", img.Bounds().Dx(), img.Bounds().Dy(), w.width, w.height)
	}
	if err := writeRawRGBA(w.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	return nil
}

func (w *ffmpegWriter) Close() error {
	w.stdin.Close()
	if err := w.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w, output: %s", err, tail(w.stderr.String(), 2000))
	}
	return nil
}

// writeRawRGBA writes tightly packed rows, copying when img is a sub-image.
func writeRawRGBA(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	if img.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		packed := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(packed, packed.Bounds(), img, bounds.Min, draw.Src)
		img = packed
	}
	_, err := w.Write(img.Pix)
	return err
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
