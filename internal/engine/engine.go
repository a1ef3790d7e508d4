// Package engine drives a render: frames are evaluated and rasterized in
// parallel, then streamed to the encoder in presentation order.
package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/adreel/internal/composition"
	"github.com/ivlev/adreel/internal/config"
	"github.com/ivlev/adreel/internal/logging"
	"github.com/ivlev/adreel/internal/metrics"
	"github.com/ivlev/adreel/internal/renderer"
	"github.com/ivlev/adreel/internal/report"
	"github.com/ivlev/adreel/internal/system"
	"github.com/ivlev/adreel/internal/video"
)

type RenderProject struct {
	Config      *config.Config
	Composition *composition.Composition
	Encoder     video.Encoder
	Metrics     *metrics.Recorder
	Log         *slog.Logger
	Console     *report.Console
	// Out receives the performance report; defaults to stdout.
	Out io.Writer

	pool *system.ImagePool
}

func NewRenderProject(cfg *config.Config, comp *composition.Composition, enc video.Encoder) *RenderProject {
	return &RenderProject{
		Config:      cfg,
		Composition: comp,
		Encoder:     enc,
		Metrics:     metrics.New(),
		Log:         logging.NewNop(),
		Console:     report.NewConsole(os.Stdout),
		Out:         os.Stdout,
		pool:        system.NewImagePool(),
	}
}

// Stats summarizes a finished run.
type Stats struct {
	RunID   string
	Frames  int
	Workers int
	Size    image.Point
	Buffers int
	Total   time.Duration
	// Render and Encode are summed over frames, so Render exceeds Total when
	// workers overlap.
	Render  time.Duration
	Encode  time.Duration
}

// EffectiveFPS is frames delivered per wall-clock second.
func (s *Stats) EffectiveFPS() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Total.Seconds()
}

type pendingFrame struct {
	frame int
	img   *image.RGBA
	err   error
	done  chan struct{}
}

// Run renders the configured frame range into the encoder.
func (p *RenderProject) Run(ctx context.Context) (*Stats, error) {
	startTime := time.Now()
	p.defaults()

	cfg := p.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := p.Composition.Settings()
	start, end, err := cfg.FrameRange(s.DurationInFrames)
	if err != nil {
		return nil, err
	}
	r, err := p.renderer()
	if err != nil {
		return nil, err
	}
	size := r.Size()

	budget := system.WorkerBudget(cfg.Workers, size.X, size.Y)
	workers := min(max(budget.Workers, 1), end-start)
	stats := &Stats{RunID: uuid.NewString(), Frames: end - start, Workers: workers, Size: size}
	log := p.Log.With("run_id", stats.RunID, "composition", s.ID)
	p.Metrics.SetWorkers(workers)

	fmt.Fprintln(p.Out, "--- [ADREEL: RENDER ENGINE] ---")
	p.Console.Info("Композиция: %s | Кадры: %d-%d из %d", s.ID, start, end-1, s.DurationInFrames)
	p.Console.Info("Разрешение: %dx%d @ %d FPS | Потоки: %d (CPU %d)", size.X, size.Y, s.FPS, workers, budget.CPUs)
	fmt.Fprintln(p.Out, "-----------------------------")
	log.Debug("worker budget", "workers", workers, "cpus", budget.CPUs, "free_mem", budget.FreeMem, "frame_mem", budget.FrameMem)

	job := video.Job{
		Output:  cfg.OutputVideo,
		Width:   size.X,
		Height:  size.Y,
		FPS:     s.FPS,
		Frames:  end - start,
		Encoder: cfg.VideoEncoder,
		Quality: cfg.Quality,
		Audio:   p.tracks(start),
	}
	writer, err := p.Encoder.Open(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("open encoder: %w", err)
	}

	var renderNanos, encodeNanos atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	pending := make(chan *pendingFrame, workers)

	// producer: queues frames in order and renders them with bounded parallelism
	g.Go(func() error {
		defer close(pending)
		var renders errgroup.Group
		renders.SetLimit(workers)
		for f := start; f < end; f++ {
			pf := &pendingFrame{frame: f, done: make(chan struct{})}
			select {
			case pending <- pf:
			case <-gctx.Done():
				renders.Wait()
				return gctx.Err()
			}
			renders.Go(func() error {
				defer close(pf.done)
				t := time.Now()
				pf.img, pf.err = p.render(gctx, r, pf.frame)
				d := time.Since(t)
				renderNanos.Add(int64(d))
				if pf.err == nil {
					p.Metrics.FrameRendered(s.ID, d)
				}
				return nil
			})
		}
		return renders.Wait()
	})

	// consumer: writes frames in presentation order
	g.Go(func() error {
		written := 0
		for pf := range pending {
			select {
			case <-pf.done:
			case <-gctx.Done():
				return gctx.Err()
			}
			if pf.err != nil {
				return pf.err
			}
			t := time.Now()
			if err := writer.WriteFrame(pf.img); err != nil {
				return fmt.Errorf("frame %d: %w", pf.frame, err)
			}
			d := time.Since(t)
			encodeNanos.Add(int64(d))
			p.Metrics.FrameEncoded(d)
			p.pool.Put(pf.img)

			written++
			if written%s.FPS == 0 || written == stats.Frames {
				p.Console.Step("Готово: %d/%d", written, stats.Frames)
			}
		}
		return nil
	})

	runErr := g.Wait()
	closeErr := writer.Close()
	if runErr != nil {
		log.Error("render failed", "error", runErr)
		return nil, runErr
	}
	if closeErr != nil {
		return nil, fmt.Errorf("close encoder: %w", closeErr)
	}

	stats.Total = time.Since(startTime)
	stats.Render = time.Duration(renderNanos.Load())
	stats.Encode = time.Duration(encodeNanos.Load())
	stats.Buffers = p.pool.Allocated()
	p.Metrics.RunFinished(stats.Total)
	log.Info("render finished", "frames", stats.Frames, "seconds", stats.Total.Seconds())

	if cfg.ShowStats {
		p.printStats(stats)
	}
	if cfg.MetricsFile != "" {
		if err := p.Metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			p.Console.Warn("Не удалось записать метрики %s: %v", cfg.MetricsFile, err)
		}
	}
	if cfg.OutputVideo != "" {
		p.Console.Done("Успех! Видео сохранено: %s", cfg.OutputVideo)
	}
	return stats, nil
}

// RenderFrame rasterizes a single global frame at the configured size.
func (p *RenderProject) RenderFrame(ctx context.Context, frame int) (*image.RGBA, error) {
	p.defaults()
	r, err := p.renderer()
	if err != nil {
		return nil, err
	}
	img, err := p.render(ctx, r, frame)
	if err != nil {
		return nil, err
	}
	// the caller keeps this one, so hand out a copy that is not pooled
	out := r.NewImage()
	copy(out.Pix, img.Pix)
	p.pool.Put(img)
	return out, nil
}

func (p *RenderProject) render(ctx context.Context, r *renderer.Renderer, frame int) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := p.Composition.Evaluate(frame)
	if err != nil {
		return nil, err
	}
	img := p.pool.Get(r.Size())
	if err := r.Render(out.Root, img); err != nil {
		p.pool.Put(img)
		return nil, fmt.Errorf("frame %d: %w", frame, err)
	}
	return img, nil
}

func (p *RenderProject) defaults() {
	if p.Metrics == nil {
		p.Metrics = metrics.New()
	}
	if p.Log == nil {
		p.Log = logging.NewNop()
	}
	if p.Out == nil {
		p.Out = os.Stdout
	}
	if p.Console == nil {
		p.Console = report.NewConsole(p.Out)
	}
	if p.pool == nil {
		p.pool = system.NewImagePool()
	}
}

// renderer scales the composition to the configured width, or height, or
// leaves it at its native size.
func (p *RenderProject) renderer() (*renderer.Renderer, error) {
	s := p.Composition.Settings()
	scale := 1.0
	switch {
	case p.Config.Width > 0:
		scale = float64(p.Config.Width) / float64(s.Width)
	case p.Config.Height > 0:
		scale = float64(p.Config.Height) / float64(s.Height)
	}
	r := renderer.New(s.Width, s.Height, scale)
	size := r.Size()
	if size.X < 2 || size.Y < 2 || size.X%2 != 0 || size.Y%2 != 0 {
		return nil, config.Invalid("output size", "%dx%d (x%.3f of %dx%d) must be even for yuv420p", size.X, size.Y, scale, s.Width, s.Height)
	}
	return r, nil
}

// tracks maps the composition audio, or the override file, onto the
// rendered range. Missing files are skipped with a warning.
func (p *RenderProject) tracks(start int) []video.Track {
	s := p.Composition.Settings()
	at := func(frame int) time.Duration {
		return time.Duration(math.Round(float64(frame) / float64(s.FPS) * float64(time.Second)))
	}

	var in []composition.AudioTrack
	if p.Config.AudioPath != "" {
		vol := p.Config.AudioVolume
		if vol == 0 {
			vol = 1
		}
		in = []composition.AudioTrack{{Src: p.Config.AudioPath, Volume: vol}}
	} else {
		in = p.Composition.Audio()
	}

	var out []video.Track
	for _, a := range in {
		if _, err := os.Stat(a.Src); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				p.Console.Warn("Аудио не найдено, пропускаем: %s", a.Src)
			} else {
				p.Console.Warn("Аудио недоступно (%s): %v", a.Src, err)
			}
			continue
		}
		t := video.Track{Path: a.Src, Volume: a.Volume}
		if a.StartFrame >= start {
			t.Delay = at(a.StartFrame - start)
		} else {
			t.Seek = at(start - a.StartFrame)
		}
		out = append(out, t)
	}
	return out
}

func (p *RenderProject) printStats(st *Stats) {
	fmt.Fprintf(p.Out,
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Run: %s\n"+
			"Frames: %d (%dx%d, %d workers, %d buffers)\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Encoding (pipe): %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, st.RunID, st.Frames, st.Size.X, st.Size.Y, st.Workers, st.Buffers,
		st.Total.Seconds(), st.Render.Seconds(), st.Encode.Seconds(), st.EffectiveFPS(),
	)
}
