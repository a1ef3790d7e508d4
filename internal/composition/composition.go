// Package composition sequences scenes on a timeline and evaluates the whole
// video one frame at a time.
package composition

import (
	"fmt"

	"github.com/ivlev/adreel/internal/anim"
	"github.com/ivlev/adreel/internal/config"
	"github.com/ivlev/adreel/internal/scene"
	"github.com/ivlev/adreel/internal/timeline"
)

type Settings struct {
	ID               string
	Width            int
	Height           int
	FPS              int
	DurationInFrames int
	Background       string
}

// Seconds is the composition length in seconds.
func (s Settings) Seconds() float64 {
	return float64(s.DurationInFrames) / float64(s.FPS)
}

// AudioTrack is a reference the host mixes under the video.
type AudioTrack struct {
	Src        string  `yaml:"src"`
	Volume     float64 `yaml:"volume"`
	StartFrame int     `yaml:"start_frame,omitempty"`
}

// Output is the result of evaluating one frame.
type Output struct {
	Frame int         `json:"frame"`
	Root  *scene.Node `json:"root"`
}

type Composition struct {
	settings Settings
	timeline *timeline.Timeline
	scenes   map[string]scene.Scene
	audio    []AudioTrack
}

// New validates the whole composition up front. Any invalid window, scene
// reference or audio track fails the build.
func New(s Settings, windows []timeline.Window, scenes map[string]scene.Scene, audio []AudioTrack, opts ...timeline.Option) (*Composition, error) {
	if s.FPS <= 0 {
		return nil, config.Invalid("composition "+s.ID, "frame rate must be positive, got %d", s.FPS)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, config.Invalid("composition "+s.ID, "size %dx%d", s.Width, s.Height)
	}
	if s.DurationInFrames <= 0 {
		return nil, config.Invalid("composition "+s.ID, "duration must be positive, got %d frames", s.DurationInFrames)
	}
	if s.Background == "" {
		s.Background = "#000000"
	}
	if _, _, err := anim.ParseColor(s.Background); err != nil {
		return nil, config.Invalid("composition "+s.ID, "background: %v", err)
	}

	tl, err := timeline.New(windows, opts...)
	if err != nil {
		return nil, fmt.Errorf("composition %s: %w", s.ID, err)
	}
	for i, w := range tl.Windows() {
		if _, ok := scenes[w.Scene]; !ok {
			return nil, config.Invalid("composition "+s.ID, "window %d references unknown scene %q", i, w.Scene)
		}
		if w.End() > s.DurationInFrames {
			return nil, config.Invalid("composition "+s.ID, "window %d (%s) ends at frame %d after the composition end %d", i, w.Scene, w.End(), s.DurationInFrames)
		}
	}
	for i, a := range audio {
		if a.Src == "" {
			return nil, config.Invalid("composition "+s.ID, "audio track %d has no source", i)
		}
		if a.Volume < 0 || a.StartFrame < 0 {
			return nil, config.Invalid("composition "+s.ID, "audio track %d: volume %.2f, start %d", i, a.Volume, a.StartFrame)
		}
	}

	return &Composition{
		settings: s,
		timeline: tl,
		scenes:   scenes,
		audio:    append([]AudioTrack(nil), audio...),
	}, nil
}

func (c *Composition) Settings() Settings { return c.settings }

func (c *Composition) Timeline() *timeline.Timeline { return c.timeline }

// Audio returns the audio references for the host to mix.
func (c *Composition) Audio() []AudioTrack {
	return append([]AudioTrack(nil), c.audio...)
}

// Evaluate builds the visual tree of one global frame: the background, then
// every active scene in declaration order.
func (c *Composition) Evaluate(frame int) (*Output, error) {
	s := c.settings
	if frame < 0 || frame >= s.DurationInFrames {
		return nil, fmt.Errorf("composition %s: frame %d not in [0,%d): %w", s.ID, frame, s.DurationInFrames, scene.ErrFrameOutOfRange)
	}

	w, h := float64(s.Width), float64(s.Height)
	root := scene.Group(0, 0, w, h,
		scene.Rect(0, 0, w, h).WithID("background").WithFill(scene.Solid(s.Background)),
	).WithID("root")

	for _, slot := range c.timeline.Active(frame) {
		node, err := scene.Compose(c.scenes[slot.Window.Scene], scene.Frame{
			Local:    slot.Local,
			Duration: slot.Window.Duration,
			FPS:      s.FPS,
			Width:    s.Width,
			Height:   s.Height,
		})
		if err != nil {
			return nil, fmt.Errorf("composition %s: window %d: %w", s.ID, slot.Index, err)
		}
		root.Add(node)
	}
	return &Output{Frame: frame, Root: root}, nil
}
