// Package promo holds the five scenes of the product video and the timing
// variants they are sequenced in.
package promo

import (
	"fmt"
	"sort"

	"github.com/ivlev/adreel/internal/composition"
	"github.com/ivlev/adreel/internal/config"
	"github.com/ivlev/adreel/internal/scene"
	"github.com/ivlev/adreel/internal/timeline"
)

// SceneFunc builds a scene for a canvas at a frame rate.
type SceneFunc func(l Layout, fps int) (scene.Scene, error)

var library = map[string]SceneFunc{
	"logo":      Logo,
	"problem":   Problem,
	"solution":  Solution,
	"dashboard": Dashboard,
	"cta":       CTA,
}

// SceneNames lists the scenes a timeline may reference.
func SceneNames() []string {
	names := make([]string, 0, len(library))
	for n := range library {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Variant is one cut of the video: canvas, timing and audio.
type Variant struct {
	Name        string
	Description string
	Vertical    bool
	Settings    composition.Settings
	Windows     []timeline.Window
	Audio       []composition.AudioTrack
}

const (
	fps             = 30
	backgroundTrack = "public/audio/background.mp3"
)

var catalog = map[string]func() Variant{
	"launch": func() Variant {
		return Variant{
			Description: "30 s ad with background music",
			Settings:    composition.Settings{DurationInFrames: 900},
			Windows: []timeline.Window{
				{Scene: "logo", Start: 0, Duration: 150},
				{Scene: "problem", Start: 150, Duration: 210},
				{Scene: "solution", Start: 360, Duration: 240},
				{Scene: "dashboard", Start: 600, Duration: 150},
				{Scene: "cta", Start: 750, Duration: 150},
			},
			Audio: []composition.AudioTrack{{Src: backgroundTrack, Volume: 0.6}},
		}
	},
	"full": func() Variant {
		return Variant{
			Description: "30 s cut with even scene lengths",
			Settings:    composition.Settings{DurationInFrames: 900},
			Windows: []timeline.Window{
				{Scene: "logo", Start: 0, Duration: 150},
				{Scene: "problem", Start: 150, Duration: 180},
				{Scene: "solution", Start: 330, Duration: 180},
				{Scene: "dashboard", Start: 510, Duration: 180},
				{Scene: "cta", Start: 690, Duration: 210},
			},
		}
	},
	"short": func() Variant {
		return Variant{
			Description: "15 s cut without the dashboard",
			Settings:    composition.Settings{DurationInFrames: 450},
			Windows: []timeline.Window{
				{Scene: "logo", Start: 0, Duration: 90},
				{Scene: "problem", Start: 90, Duration: 90},
				{Scene: "solution", Start: 180, Duration: 120},
				{Scene: "cta", Start: 300, Duration: 150},
			},
		}
	},
}

// Names lists the built-in variants.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for n := range catalog {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a built-in variant for landscape 1920x1080 or, when
// vertical, 1080x1920.
func Lookup(name string, vertical bool) (Variant, error) {
	mk, ok := catalog[name]
	if !ok {
		return Variant{}, config.Invalid("variant", "unknown variant %q (have %v)", name, Names())
	}
	v := mk()
	v.Name = name
	v.Vertical = vertical
	v.Settings.ID = name
	v.Settings.FPS = fps
	v.Settings.Width, v.Settings.Height = 1920, 1080
	if vertical {
		v.Settings.ID += "-vertical"
		v.Settings.Width, v.Settings.Height = 1080, 1920
	}
	v.Settings.Background = Darker
	return v, nil
}

// Build lays out the scenes the variant references and validates the whole
// composition.
func Build(v Variant, opts ...timeline.Option) (*composition.Composition, error) {
	l := Layout{Width: v.Settings.Width, Height: v.Settings.Height, Vertical: v.Vertical}
	scenes := make(map[string]scene.Scene)
	for i, w := range v.Windows {
		if _, done := scenes[w.Scene]; done {
			continue
		}
		mk, ok := library[w.Scene]
		if !ok {
			return nil, config.Invalid("variant "+v.Name, "window %d references unknown scene %q (have %v)", i, w.Scene, SceneNames())
		}
		if v.Settings.FPS <= 0 {
			return nil, config.Invalid("variant "+v.Name, "frame rate must be positive, got %d", v.Settings.FPS)
		}
		sc, err := mk(l, v.Settings.FPS)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.Name, err)
		}
		scenes[w.Scene] = sc
	}
	return composition.New(v.Settings, v.Windows, scenes, v.Audio, opts...)
}
