package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/adreel/internal/composition"
	"github.com/ivlev/adreel/internal/config"
	"github.com/ivlev/adreel/internal/report"
	"github.com/ivlev/adreel/internal/scene"
	"github.com/ivlev/adreel/internal/timeline"
	"github.com/ivlev/adreel/internal/video"
)

// fakeEncoder keeps the red channel of the centre pixel of every frame,
// which the counting scene sets to frame*10.
type fakeEncoder struct {
	mu      sync.Mutex
	job     video.Job
	reds    []uint8
	sizes   []image.Point
	failAt  int
	closed  bool
	openErr error
}

func (e *fakeEncoder) Open(_ context.Context, job video.Job) (video.FrameWriter, error) {
	if e.openErr != nil {
		return nil, e.openErr
	}
	e.job = job
	return e, nil
}

func (e *fakeEncoder) WriteFrame(img *image.RGBA) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.failAt > 0 && len(e.reds) == e.failAt {
		return errors.New("broken pipe")
	}
	b := img.Bounds()
	e.reds = append(e.reds, img.RGBAAt(b.Dx()/2, b.Dy()/2).R)
	e.sizes = append(e.sizes, b.Size())
	return nil
}

func (e *fakeEncoder) Close() error {
	e.closed = true
	return nil
}

func counting(t *testing.T, audio ...composition.AudioTrack) *composition.Composition {
	t.Helper()
	count := scene.Func("count", func(f scene.Frame) *scene.Node {
		return scene.Rect(0, 0, float64(f.Width), float64(f.Height)).
			WithFill(scene.Solid(fmt.Sprintf("#%02x0000", f.Local*10)))
	})
	c, err := composition.New(
		composition.Settings{ID: "test", Width: 16, Height: 16, FPS: 10, DurationInFrames: 20, Background: "#000000"},
		[]timeline.Window{{Scene: "count", Start: 0, Duration: 20}},
		map[string]scene.Scene{"count": count},
		audio,
	)
	require.NoError(t, err)
	return c
}

func project(cfg *config.Config, c *composition.Composition, enc video.Encoder) (*RenderProject, *bytes.Buffer) {
	var out bytes.Buffer
	p := NewRenderProject(cfg, c, enc)
	p.Out = &out
	p.Console = report.NewConsole(&out)
	return p, &out
}

func expectedReds(from, to int) []uint8 {
	var reds []uint8
	for f := from; f < to; f++ {
		reds = append(reds, uint8(f*10))
	}
	return reds
}

func TestRunWritesFramesInOrder(t *testing.T) {
	enc := &fakeEncoder{}
	p, out := project(&config.Config{Workers: 4, OutputVideo: "out.mp4", ShowStats: true, BuildVersion: "test"}, counting(t), enc)

	stats, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, expectedReds(0, 20), enc.reds)
	assert.True(t, enc.closed)
	assert.Equal(t, 20, stats.Frames)
	assert.Equal(t, 4, stats.Workers)
	assert.NotEmpty(t, stats.RunID)
	assert.Positive(t, stats.Buffers)

	assert.Equal(t, video.Job{Output: "out.mp4", Width: 16, Height: 16, FPS: 10, Frames: 20}, enc.job)
	assert.Contains(t, out.String(), "--- [PERFORMANCE REPORT] ---")
	assert.Contains(t, out.String(), "Build: test")
	assert.Contains(t, out.String(), "[+++]")
}

func TestRunFrameRange(t *testing.T) {
	enc := &fakeEncoder{}
	p, _ := project(&config.Config{Workers: 3, StartFrame: 5, EndFrame: 12}, counting(t), enc)

	stats, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expectedReds(5, 12), enc.reds)
	assert.Equal(t, 7, stats.Frames)
	assert.Equal(t, 7, enc.job.Frames)
}

func TestRunSingleWorker(t *testing.T) {
	enc := &fakeEncoder{}
	p, _ := project(&config.Config{Workers: 1}, counting(t), enc)

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expectedReds(0, 20), enc.reds)
}

func TestRunScalesOutput(t *testing.T) {
	enc := &fakeEncoder{}
	p, _ := project(&config.Config{Workers: 2, Width: 8}, counting(t), enc)

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, enc.job.Width)
	assert.Equal(t, 8, enc.job.Height)
	for _, s := range enc.sizes {
		assert.Equal(t, image.Pt(8, 8), s)
	}
	assert.Equal(t, expectedReds(0, 20), enc.reds)
}

func TestRunRejectsOddSize(t *testing.T) {
	wide, err := composition.New(
		composition.Settings{ID: "wide", Width: 16, Height: 10, FPS: 10, DurationInFrames: 5, Background: "#000000"},
		nil, nil, nil,
	)
	require.NoError(t, err)

	// 8 wide makes the height 5
	p, _ := project(&config.Config{Width: 8}, wide, &fakeEncoder{})
	_, err = p.Run(context.Background())
	assert.ErrorIs(t, err, config.ErrInvalid)

	p, _ = project(&config.Config{Height: 2}, wide, &fakeEncoder{})
	_, err = p.Run(context.Background())
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRunWriterError(t *testing.T) {
	enc := &fakeEncoder{failAt: 3}
	p, _ := project(&config.Config{Workers: 2}, counting(t), enc)

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame 3")
	assert.Contains(t, err.Error(), "broken pipe")
	assert.True(t, enc.closed)
	assert.Len(t, enc.reds, 3)
}

func TestRunOpenError(t *testing.T) {
	p, _ := project(&config.Config{}, counting(t), &fakeEncoder{openErr: errors.New("no ffmpeg")})
	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ffmpeg")
}

func TestRunInvalidRange(t *testing.T) {
	p, _ := project(&config.Config{StartFrame: 5, EndFrame: 40}, counting(t), &fakeEncoder{})
	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	enc := &fakeEncoder{}
	p, _ := project(&config.Config{Workers: 2}, counting(t), enc)

	_, err := p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, enc.closed)
}

func TestRunWritesMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adreel.prom")
	p, _ := project(&config.Config{Workers: 2, MetricsFile: path}, counting(t), &fakeEncoder{})

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `adreel_frames_rendered_total{composition="test"} 20`)
	assert.Contains(t, string(data), "adreel_render_workers 2")
}

func TestRenderFrame(t *testing.T) {
	p, _ := project(&config.Config{}, counting(t), nil)

	img, err := p.RenderFrame(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint8(70), img.RGBAAt(8, 8).R)

	_, err = p.RenderFrame(context.Background(), 20)
	assert.ErrorIs(t, err, scene.ErrFrameOutOfRange)
}

func TestTracks(t *testing.T) {
	dir := t.TempDir()
	music := filepath.Join(dir, "music.mp3")
	require.NoError(t, os.WriteFile(music, []byte("id3"), 0o644))

	c := counting(t,
		composition.AudioTrack{Src: music, Volume: 0.6, StartFrame: 5},
		composition.AudioTrack{Src: filepath.Join(dir, "missing.mp3"), Volume: 1},
	)

	p, out := project(&config.Config{}, c, nil)
	assert.Equal(t, []video.Track{{Path: music, Volume: 0.6, Delay: 500 * time.Millisecond}}, p.tracks(0))
	assert.Contains(t, out.String(), "missing.mp3")

	assert.Equal(t, []video.Track{{Path: music, Volume: 0.6, Seek: time.Second}}, p.tracks(15))

	p, _ = project(&config.Config{AudioPath: music}, c, nil)
	assert.Equal(t, []video.Track{{Path: music, Volume: 1, Seek: 200 * time.Millisecond}}, p.tracks(2))
}
