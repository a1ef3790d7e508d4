package director

import (
	"fmt"
	"math"

	"github.com/ivlev/adreel/internal/timeline"
)

// Director lays scenes end to end to produce a timing sheet
type Director struct {
	FPS      int
	MinDwell float64 // Minimum time per scene (seconds)
	MaxDwell float64 // Maximum time per scene (seconds)
}

// NewDirector creates a new Director with default settings
func NewDirector(fps int) *Director {
	return &Director{
		FPS:      fps,
		MinDwell: 2.0,
		MaxDwell: 8.0,
	}
}

// GenerateSheet creates a sheet that plays scenes in order within roughly
// totalDuration seconds
func (d *Director) GenerateSheet(name string, scenes []string, totalDuration float64, width, height int, vertical bool) (*Sheet, error) {
	if len(scenes) == 0 {
		return nil, fmt.Errorf("no scenes to sequence")
	}
	if d.FPS <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %d", d.FPS)
	}

	dwell := d.calculateDwellFrames(totalDuration, len(scenes))
	windows := make([]timeline.Window, len(scenes))
	start := 0
	for i, s := range scenes {
		windows[i] = timeline.Window{Scene: s, Start: start, Duration: dwell}
		start += dwell
	}

	return &Sheet{
		Version:  SheetVersion,
		Name:     name,
		FPS:      d.FPS,
		Width:    width,
		Height:   height,
		Vertical: vertical,
		Duration: start,
		Windows:  windows,
	}, nil
}

// calculateDwellFrames determines how long each scene stays on screen
func (d *Director) calculateDwellFrames(totalDuration float64, count int) int {
	dwellTime := totalDuration / float64(count)

	// Clamp to min/max
	if dwellTime < d.MinDwell {
		dwellTime = d.MinDwell
	}
	if dwellTime > d.MaxDwell {
		dwellTime = d.MaxDwell
	}

	return int(math.Round(dwellTime * float64(d.FPS)))
}
