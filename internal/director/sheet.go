package director

import (
	"github.com/ivlev/adreel/internal/composition"
	"github.com/ivlev/adreel/internal/config"
	"github.com/ivlev/adreel/internal/promo"
	"github.com/ivlev/adreel/internal/timeline"
)

// SheetVersion is the timing sheet format this package writes.
const SheetVersion = "1.0"

// Sheet is a timing sheet: a whole composition described as YAML
type Sheet struct {
	Version     string                   `yaml:"version"`
	Name        string                   `yaml:"name"`
	Description string                   `yaml:"description,omitempty"`
	FPS         int                      `yaml:"fps"`
	Width       int                      `yaml:"width"`
	Height      int                      `yaml:"height"`
	Vertical    bool                     `yaml:"vertical,omitempty"`
	Duration    int                      `yaml:"duration"` // Total length in frames
	Background  string                   `yaml:"background,omitempty"`
	Windows     []timeline.Window        `yaml:"windows"`
	Audio       []composition.AudioTrack `yaml:"audio,omitempty"`
}

// FromVariant captures a built-in variant as a sheet
func FromVariant(v promo.Variant) *Sheet {
	return &Sheet{
		Version:     SheetVersion,
		Name:        v.Name,
		Description: v.Description,
		FPS:         v.Settings.FPS,
		Width:       v.Settings.Width,
		Height:      v.Settings.Height,
		Vertical:    v.Vertical,
		Duration:    v.Settings.DurationInFrames,
		Background:  v.Settings.Background,
		Windows:     append([]timeline.Window(nil), v.Windows...),
		Audio:       append([]composition.AudioTrack(nil), v.Audio...),
	}
}

// Variant turns the sheet back into a variant ready for promo.Build
func (s *Sheet) Variant() (promo.Variant, error) {
	if s.Version != "" && s.Version != SheetVersion {
		return promo.Variant{}, config.Invalid("sheet "+s.Name, "unsupported version %q", s.Version)
	}
	name := s.Name
	if name == "" {
		name = "sheet"
	}
	return promo.Variant{
		Name:        name,
		Description: s.Description,
		Vertical:    s.Vertical,
		Settings: composition.Settings{
			ID:               name,
			Width:            s.Width,
			Height:           s.Height,
			FPS:              s.FPS,
			DurationInFrames: s.Duration,
			Background:       s.Background,
		},
		Windows: append([]timeline.Window(nil), s.Windows...),
		Audio:   append([]composition.AudioTrack(nil), s.Audio...),
	}, nil
}
